package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/azinterface/azdesk/internal/logging"
	"github.com/azinterface/azdesk/internal/output"
	"github.com/azinterface/azdesk/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "azdesk",
	Short: "Drive a simulated desktop from the command line",
	Long: "A CLI and MCP server for a simulated desktop: open app windows, arrange\n" +
		"them, script whole workflows, and render the result to PNG.",
}

// printer and logger are configured by the root PersistentPreRunE and shared
// by all subcommands.
var (
	printer *output.Printer
	logger  zerolog.Logger
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json (default: yaml)")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error (default: warn)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Use the root persistent flags directly to avoid conflicts with
		// subcommand local flags.
		formatFlag, _ := rootCmd.PersistentFlags().GetString("format")
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		level, _ := rootCmd.PersistentFlags().GetString("log-level")

		format, err := output.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		printer = output.NewPrinter(nil, format, pretty)

		logger, err = logging.New(level)
		return err
	}
}
