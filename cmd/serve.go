package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/azinterface/azdesk/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the desktop tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the desktop as
tools. AI agents can open, arrange, and read windows directly, each client
session on its own desktop.

Supported transports:
  stdio             Standard I/O (default, for Claude Code / MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  azdesk serve
  azdesk serve --transport streamable-http --port 8080
  azdesk serve --session-ttl 10m --screen 2560x1440`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Duration("session-ttl", 30*time.Minute, "Idle time before a session's desktop is discarded (0 to keep forever)")
	serveCmd.Flags().String("screen", "1920x1080", "Desktop size as WIDTHxHEIGHT")
	serveCmd.Flags().String("apps-file", "", "YAML file with extra app definitions to merge")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	sessionTTL, _ := cmd.Flags().GetDuration("session-ttl")
	screenFlag, _ := cmd.Flags().GetString("screen")
	appsFile, _ := cmd.Flags().GetString("apps-file")

	registry, err := loadRegistry(appsFile)
	if err != nil {
		return err
	}
	screen, err := parseScreen(screenFlag)
	if err != nil {
		return err
	}

	cfg := server.Config{
		Transport:  transport,
		Port:       port,
		SessionTTL: sessionTTL,
		Screen:     screen,
		Logger:     logger,
	}
	srv := server.New(registry, cfg)
	return srv.Serve(cfg)
}
