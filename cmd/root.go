package cmd

import (
	"fmt"
	"os"

	"hotel-folio/config"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "hotel-folio",
	Short: "Guest folio billing and night audit",
	Long: `hotel-folio prices guest stays, settles checkouts into the ledger and
closes each business day with a night audit.

Run "serve" for the HTTP API, or the one-shot commands from a scheduler.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
		config.SetLogLevel(os.Getenv("LOG_LEVEL"))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		config.GetLogger().WithError(err).Error("command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
