package main

import "github.com/azinterface/azdesk/cmd"

func main() {
	cmd.Execute()
}
