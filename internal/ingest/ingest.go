// Package ingest turns the operator's exported conference CSV into the
// working data set: it splits the combined export into 2025 and 2026
// sections, builds a 2026 template from the 2025 conferences, and merges
// any pre-existing 2026 values into that template by conference name.
package ingest

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/akkino69/crypto-scraper/pkg/conferences"
	"github.com/akkino69/crypto-scraper/pkg/errors"
	"github.com/akkino69/crypto-scraper/pkg/logging"
)

// yearMarker separates the 2025 and 2026 sections in the source export:
// the first row containing this token anywhere starts the 2026 section.
const yearMarker = "2026"

// LoadSource reads the operator's combined CSV export.
func LoadSource(path string) (*conferences.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("ingest", "input CSV file not found: "+path, err)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	if len(records) == 0 {
		return nil, errors.NewConfigError("ingest", "input CSV file is empty: "+path, nil)
	}
	return conferences.NewTable(records[0], records[1:]), nil
}

// SplitYears splits the combined table at the first row containing the
// 2026 marker. The marker row itself is dropped, as are rows with a blank
// conference name on either side. When no marker exists the whole table is
// 2025 data and the 2026 table is empty.
func SplitYears(source *conferences.Table) (y2025, y2026 *conferences.Table) {
	header := source.Header()
	rows := source.Rows()

	markerAt := -1
	for i, row := range rows {
		if strings.Contains(strings.Join(row, " "), yearMarker) {
			markerAt = i
			break
		}
	}

	var rows2025, rows2026 [][]string
	if markerAt < 0 {
		logging.Warn().Msg("No 2026 section found in source CSV")
		rows2025 = rows
	} else {
		rows2025 = rows[:markerAt]
		rows2026 = rows[markerAt+1:]
	}

	y2025 = conferences.NewTable(header, dropBlankNames(header, rows2025))
	y2026 = conferences.NewTable(header, dropBlankNames(header, rows2026))

	logging.Info().Int("count", y2025.Len()).Msg("Loaded conferences for 2025")
	logging.Info().Int("count", y2026.Len()).Msg("Loaded conferences for 2026")
	return y2025, y2026
}

// BuildTemplate creates the 2026 working table: a copy of the 2025
// conferences with every scraped field cleared, ready for the oracle to
// fill in.
func BuildTemplate(y2025 *conferences.Table) *conferences.Table {
	template := y2025.Clone()
	for row := 0; row < template.Len(); row++ {
		for _, field := range conferences.RequiredFields() {
			if !template.HasColumn(string(field)) {
				continue
			}
			// Set can only fail on unknown column or bad row, both
			// excluded here.
			_ = template.Set(row, string(field), "")
		}
	}
	logging.Info().Int("count", template.Len()).Msg("Created 2026 template")
	return template
}

// MergeByName copies non-blank values from an existing 2026 data set into
// the template, matching rows on conference name. The template's row
// order wins; existing rows without a template match are ignored.
func MergeByName(template, existing *conferences.Table) {
	if existing == nil || existing.Len() == 0 {
		return
	}

	byName := make(map[string]int, template.Len())
	for row := 0; row < template.Len(); row++ {
		name := template.Value(row, conferences.ColumnName)
		if name == "" {
			continue
		}
		if _, ok := byName[name]; !ok {
			byName[name] = row
		}
	}

	merged := 0
	for row := 0; row < existing.Len(); row++ {
		name := existing.Value(row, conferences.ColumnName)
		target, ok := byName[name]
		if !ok {
			continue
		}
		for _, column := range existing.Header() {
			value := existing.Value(row, column)
			if value == "" || !template.HasColumn(column) {
				continue
			}
			_ = template.Set(target, column, value)
		}
		merged++
	}
	logging.Info().Int("count", merged).Msg("Merged existing 2026 data into template")
}

// Build runs the full ingest pipeline over the source CSV and returns the
// 2025 reference table and the ready-to-scrape 2026 table.
func Build(path string) (y2025, y2026 *conferences.Table, err error) {
	source, err := LoadSource(path)
	if err != nil {
		return nil, nil, err
	}

	y2025, existing2026 := SplitYears(source)
	y2026 = BuildTemplate(y2025)
	MergeByName(y2026, existing2026)
	return y2025, y2026, nil
}

// dropBlankNames filters out rows whose conference name cell is blank or
// missing.
func dropBlankNames(header []string, rows [][]string) [][]string {
	nameIdx := -1
	for i, h := range header {
		if strings.TrimSpace(h) == conferences.ColumnName {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return rows
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if nameIdx < len(row) && strings.TrimSpace(row[nameIdx]) != "" {
			out = append(out, row)
		}
	}
	return out
}
