package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "List checkouts with missing ledger entries or unreleased rooms",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		issues, err := a.reconciliation.IncompleteSettlements(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(issues); err != nil {
			return err
		}
		if len(issues) > 0 {
			return fmt.Errorf("%d incomplete settlements", len(issues))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
