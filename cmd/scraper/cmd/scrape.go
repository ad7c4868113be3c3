package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akkino69/crypto-scraper/internal/config"
	"github.com/akkino69/crypto-scraper/internal/output"
)

// scrapeCmd runs a single scraping pass.
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run a single scraping pass",
	Long: `Scrape finds every 2026 conference with missing fields, queries the
oracle for each one in rate-limited batches, validates and merges the
answers, and persists the result. It runs exactly once and exits.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		ctx := cmd.Context()

		sched, _, err := buildScheduler(ctx, cfg)
		if err != nil {
			return err
		}

		result, err := sched.RunOnce(ctx)
		if err != nil {
			return err
		}
		if !result.Success {
			fmt.Fprintln(os.Stderr, "Scraping failed:", result.Error)
			os.Exit(1)
		}

		format := output.DetectFormat(outputFormat)
		if format == output.FormatTable {
			fmt.Printf("%s in %.1fs\n", result.Message, result.DurationSeconds)
			return nil
		}
		return output.NewFormatter(format).Format(os.Stdout, result)
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}
