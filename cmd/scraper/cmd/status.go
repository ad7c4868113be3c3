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

// statusReport is the status command's output payload.
type statusReport struct {
	Total          int      `json:"total_conferences"`
	Incomplete     int      `json:"incomplete_conferences"`
	CompletionRate float64  `json:"completion_rate"`
	NextUp         []string `json:"next_up,omitempty"`
}

// statusCmd reports data set completeness.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show data set completeness",
	Long: `Status loads the 2026 data set, counts conferences with missing
fields, and lists the next few the scraper will work on.`,
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
		report := statusReport{
			Total:          table.Len(),
			Incomplete:     len(items),
			CompletionRate: 100,
		}
		if report.Total > 0 {
			report.CompletionRate = float64(report.Total-report.Incomplete) / float64(report.Total) * 100
		}
		for i := 0; i < len(items) && i < 5; i++ {
			report.NextUp = append(report.NextUp, items[i].Name)
		}

		format := output.DetectFormat(outputFormat)
		if format == output.FormatTable {
			fmt.Printf("Conferences: %d total, %d incomplete (%.1f%% complete)\n",
				report.Total, report.Incomplete, report.CompletionRate)
			if len(report.NextUp) > 0 {
				fmt.Println("Next up:", strings.Join(report.NextUp, ", "))
			}
			return nil
		}
		return output.NewFormatter(format).Format(os.Stdout, report)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
