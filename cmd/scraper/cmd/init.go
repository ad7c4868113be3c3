package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akkino69/crypto-scraper/internal/config"
	"github.com/akkino69/crypto-scraper/internal/ingest"
	"github.com/akkino69/crypto-scraper/pkg/store/csvstore"
	"github.com/akkino69/crypto-scraper/pkg/store/sheetstore"
)

var initInput string

// initCmd builds the working data set from a combined CSV export.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Build the 2026 data set from a combined CSV export",
	Long: `Init reads the combined conference export, splits it into 2025 and
2026 sections, creates a 2026 template from the 2025 conferences with the
scraped fields cleared, and merges any pre-existing 2026 values into it by
conference name. The result is written to the configured backend.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		input := cfg.InputCSV
		if initInput != "" {
			input = initInput
		}

		y2025, y2026, err := ingest.Build(input)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if cfg.UseGoogleSheets {
			st, err := buildSheetStore(ctx, cfg)
			if err != nil {
				return err
			}
			if err := st.Upload(ctx, sheetstore.Sheet2025, y2025); err != nil {
				return err
			}
			if err := st.Save(ctx, y2026); err != nil {
				return err
			}
			fmt.Printf("Initialized %q with %d conferences for 2026\n", cfg.SpreadsheetName, y2026.Len())
			fmt.Println("URL:", st.URL())
			return nil
		}

		if err := csvstore.New(cfg.Output2025CSV).Save(ctx, y2025); err != nil {
			return err
		}
		if err := csvstore.New(cfg.Output2026CSV).Save(ctx, y2026); err != nil {
			return err
		}
		fmt.Printf("Initialized %s with %d conferences for 2026\n", cfg.Output2026CSV, y2026.Len())
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initInput, "input", "i", "", "combined CSV export to ingest (default from INPUT_CSV)")
	rootCmd.AddCommand(initCmd)
}
