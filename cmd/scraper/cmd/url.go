package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akkino69/crypto-scraper/internal/config"
)

// urlCmd prints the spreadsheet URL.
var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the Google Sheets URL",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		if err := cfg.ValidateSheets(); err != nil {
			return err
		}

		st, err := buildSheetStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		fmt.Println(st.URL())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(urlCmd)
}
