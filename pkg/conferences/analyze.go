package conferences

import (
	"github.com/akkino69/crypto-scraper/pkg/logging"
)

// WorkItem describes one incomplete conference: the row it lives in, the
// identifying attributes the oracle prompt needs, and the fields still
// missing. Work items are derived fresh each cycle and never persisted.
type WorkItem struct {
	RowIndex int     `json:"row_index"`
	Name     string  `json:"conference_name"`
	Category string  `json:"category"`
	Region   string  `json:"region"`
	Missing  []Field `json:"missing_fields"`
}

// MissingNames returns the missing fields as plain strings.
func (w WorkItem) MissingNames() []string {
	out := make([]string, len(w.Missing))
	for i, f := range w.Missing {
		out[i] = string(f)
	}
	return out
}

// Analyze scans the table in row order and returns a work item for every
// conference with at least one blank tracked field. A field counts as
// missing when its column is absent or its value trims to empty. Rows with
// a blank name are skipped entirely; they are noise in the sheet, not an
// error. Pure function over the table snapshot: no side effects.
func Analyze(t *Table) []WorkItem {
	var items []WorkItem

	for i := 0; i < t.Len(); i++ {
		rec := t.Record(i)
		if rec.Name == "" {
			logging.Debug().Int("row", i).Msg("Skipping row with blank conference name")
			continue
		}

		var missing []Field
		for _, f := range requiredFields {
			if rec.FieldValue(f) == "" {
				missing = append(missing, f)
			}
		}
		if len(missing) == 0 {
			continue
		}

		items = append(items, WorkItem{
			RowIndex: rec.RowIndex,
			Name:     rec.Name,
			Category: rec.Category,
			Region:   rec.Region,
			Missing:  missing,
		})
	}

	return items
}
