package cmd

import (
	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List the registered app definitions",
	Long:  "List every app that can be opened on the desktop, with its default and minimum window sizes.",
	RunE:  runApps,
}

func init() {
	rootCmd.AddCommand(appsCmd)
	appsCmd.Flags().String("apps-file", "", "YAML file with extra app definitions to merge")
}

func runApps(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("apps-file")
	registry, err := loadRegistry(path)
	if err != nil {
		return err
	}
	return printer.Print(registry.List())
}
