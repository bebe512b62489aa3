package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var auditDate string

var nightAuditCmd = &cobra.Command{
	Use:   "night-audit",
	Short: "Close a business day",
	Long: `Close one business day into a night audit record. Without --date the
previous day in HOTEL_TIMEZONE is closed. A date that was already closed
fails and nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		date := auditDate
		if date == "" {
			date = a.audits.PreviousBusinessDate()
		}
		rec, err := a.audits.Run(cmd.Context(), date)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	nightAuditCmd.Flags().StringVar(&auditDate, "date", "", "business date to close (YYYY-MM-DD)")
	rootCmd.AddCommand(nightAuditCmd)
}
