package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akkino69/crypto-scraper/internal/config"
	"github.com/akkino69/crypto-scraper/internal/output"
	"github.com/akkino69/crypto-scraper/pkg/conferences"
	"github.com/akkino69/crypto-scraper/pkg/errors"
)

var previewLimit int

// previewCmd shows the next batch of conferences to be scraped.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the next conferences to be scraped",
	Long: `Preview lists the conferences with missing fields, in the order the
scraper will process them, without querying the oracle.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		ctx := cmd.Context()

		st, err := buildStore(ctx, cfg)
		if err != nil {
			return err
		}

		table, err := st.Load(ctx)
		if err != nil {
			if errors.Is(err, errors.ErrNoData) {
				fmt.Println("No 2026 conference data found. Run 'scraper init' first.")
				return nil
			}
			return err
		}

		items := conferences.Analyze(table)
		limit := previewLimit
		if limit <= 0 {
			limit = 10
		}
		if len(items) > limit {
			items = items[:limit]
		}

		format := output.DetectFormat(outputFormat)
		if format != output.FormatTable {
			return output.NewFormatter(format).Format(os.Stdout, items)
		}

		if len(items) == 0 {
			fmt.Println("All conferences are complete.")
			return nil
		}
		data := output.Data{Headers: []string{"conference", "category", "region", "missing"}}
		for _, item := range items {
			data.Rows = append(data.Rows, []string{
				item.Name,
				item.Category,
				item.Region,
				strings.Join(item.MissingNames(), ", "),
			})
		}
		return output.NewFormatter(format).Format(os.Stdout, data)
	},
}

func init() {
	previewCmd.Flags().IntVarP(&previewLimit, "limit", "n", 10, "maximum number of conferences to show")
	rootCmd.AddCommand(previewCmd)
}
