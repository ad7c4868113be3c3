package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akkino69/crypto-scraper/internal/config"
)

var shareRole string

// shareCmd grants spreadsheet access to an email address.
var shareCmd = &cobra.Command{
	Use:   "share <email>",
	Short: "Share the Google Sheet with an email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.ValidateSheets(); err != nil {
			return err
		}

		ctx := cmd.Context()
		st, err := buildSheetStore(ctx, cfg)
		if err != nil {
			return err
		}
		if err := st.Share(ctx, args[0], shareRole); err != nil {
			return err
		}

		fmt.Printf("Shared %q with %s as %s\n", cfg.SpreadsheetName, args[0], shareRole)
		fmt.Println("URL:", st.URL())
		return nil
	},
}

func init() {
	shareCmd.Flags().StringVar(&shareRole, "role", "writer", "access role (reader, writer)")
	rootCmd.AddCommand(shareCmd)
}
