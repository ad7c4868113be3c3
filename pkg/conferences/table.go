package conferences

import (
	"strings"

	"github.com/akkino69/crypto-scraper/pkg/errors"
)

// Table is an in-memory copy of the conference sheet: a header row naming
// the columns and one string row per conference. Row identity is the 0-based
// position at load time; it is not stable across structural edits to the
// backing sheet, which is a known consistency risk inherited from the
// sheet-as-database design.
type Table struct {
	header  []string
	rows    [][]string
	columns map[string]int
}

// NewTable builds a Table from a header row and data rows. Rows shorter
// than the header are padded so every cell is addressable; rows longer than
// the header keep their extra cells but those are unreachable by name.
func NewTable(header []string, rows [][]string) *Table {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}

	padded := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) < len(header) {
			p := make([]string, len(header))
			copy(p, row)
			row = p
		}
		padded[i] = row
	}

	return &Table{header: header, rows: padded, columns: columns}
}

// Header returns the column names in sheet order.
func (t *Table) Header() []string {
	out := make([]string, len(t.header))
	copy(out, t.header)
	return out
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// HasColumn reports whether a column with the given header exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// Value returns the trimmed cell value at (row, column name), or "" if the
// column does not exist.
func (t *Table) Value(row int, column string) string {
	idx, ok := t.columns[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][idx])
}

// Set writes a cell value by row index and column name.
func (t *Table) Set(row int, column, value string) error {
	idx, ok := t.columns[column]
	if !ok {
		return &errors.ValidationError{Field: column, Message: "unknown column"}
	}
	if row < 0 || row >= len(t.rows) {
		return &errors.ValidationError{Field: column, Message: "row index out of range"}
	}
	t.rows[row][idx] = value
	return nil
}

// SetFields applies a validated field map to one row. Columns missing from
// the table are skipped; the sheet schema wins over the oracle's answer.
func (t *Table) SetFields(row int, fields map[Field]string) error {
	for field, value := range fields {
		if !t.HasColumn(string(field)) {
			continue
		}
		if err := t.Set(row, string(field), value); err != nil {
			return err
		}
	}
	return nil
}

// Row returns a copy of the raw cells for one row.
func (t *Table) Row(row int) []string {
	if row < 0 || row >= len(t.rows) {
		return nil
	}
	out := make([]string, len(t.rows[row]))
	copy(out, t.rows[row])
	return out
}

// Rows returns a deep copy of all data rows.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i := range t.rows {
		out[i] = t.Row(i)
	}
	return out
}

// Record returns the conference view of one row.
func (t *Table) Record(row int) Record {
	return Record{
		RowIndex: row,
		Name:     t.Value(row, ColumnName),
		Category: t.Value(row, ColumnCategory),
		Region:   t.Value(row, ColumnRegion),
		table:    t,
	}
}

// Records returns all rows as Record views, including blank-name rows.
// Callers that process conferences use Analyze, which excludes them.
func (t *Table) Records() []Record {
	out := make([]Record, t.Len())
	for i := range out {
		out[i] = t.Record(i)
	}
	return out
}

// Clone returns an independent deep copy of the table. The reconciliation
// job merges into a clone so a failed cycle never dirties the loaded state.
func (t *Table) Clone() *Table {
	return NewTable(t.Header(), t.Rows())
}

// Record is a read-mostly view of one conference row.
type Record struct {
	RowIndex int
	Name     string
	Category string
	Region   string

	table *Table
}

// FieldValue returns the trimmed value of a tracked field for this record.
func (r Record) FieldValue(f Field) string {
	if r.table == nil {
		return ""
	}
	return r.table.Value(r.RowIndex, string(f))
}

// Fields returns the record's tracked fields as a map. Blank values are
// included so callers can distinguish "column exists, empty" from the
// column being absent via Table.HasColumn.
func (r Record) Fields() map[Field]string {
	out := make(map[Field]string, len(requiredFields))
	for _, f := range requiredFields {
		out[f] = r.FieldValue(f)
	}
	return out
}
