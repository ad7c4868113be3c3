package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/akkino69/crypto-scraper/internal/config"
	"github.com/akkino69/crypto-scraper/internal/output"
	"github.com/akkino69/crypto-scraper/pkg/errors"
)

var exportFile string

// exportCmd writes a snapshot of the 2026 data set.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the 2026 data set as JSON or YAML",
	Long: `Export writes a snapshot of the 2026 conference data set. The
default file name carries a timestamp; use --file - to write to stdout.`,
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
				return errors.New("no 2026 conference data found, run 'scraper init' first")
			}
			return err
		}

		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		if format == "" || format == output.FormatTable {
			format = output.FormatJSON
		}

		header := table.Header()
		records := make([]map[string]string, 0, table.Len())
		for row := 0; row < table.Len(); row++ {
			record := make(map[string]string, len(header))
			for _, column := range header {
				record[column] = table.Value(row, column)
			}
			records = append(records, record)
		}

		var w io.Writer = os.Stdout
		name := exportFile
		if name == "" {
			name = fmt.Sprintf("conferences_2026_%s.%s", time.Now().Format("20060102_150405"), format)
		}
		if name != "-" {
			f, err := os.Create(name)
			if err != nil {
				return errors.WrapIO("create", name, err)
			}
			defer f.Close()
			w = f
		}

		if err := output.NewFormatter(format).Format(w, records); err != nil {
			return err
		}
		if name != "-" {
			fmt.Printf("Exported %d conferences to %s\n", len(records), name)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "file", "f", "", "output file (- for stdout)")
	rootCmd.AddCommand(exportCmd)
}
