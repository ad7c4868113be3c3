// Package csvstore implements the record store contract on top of local
// CSV files. It is the default backend for development and for operators
// who do not want a hosted spreadsheet.
package csvstore

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/akkino69/crypto-scraper/pkg/conferences"
	"github.com/akkino69/crypto-scraper/pkg/errors"
	"github.com/akkino69/crypto-scraper/pkg/logging"
	"github.com/akkino69/crypto-scraper/pkg/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store reads and writes the 2026 conference table as a CSV file.
type Store struct {
	path string
}

// New creates a CSV store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the CSV file into a table. A missing file or a file with only
// a header row maps to errors.ErrNoData so callers can direct the operator
// to run init first.
func (s *Store) Load(_ context.Context) (*conferences.Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrNoData
		}
		return nil, errors.WrapIO("open", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // sheet exports are ragged; pad later

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", s.path, err)
	}
	if len(records) < 2 {
		return nil, errors.ErrNoData
	}

	table := conferences.NewTable(records[0], records[1:])
	logging.Info().
		Int("rows", table.Len()).
		Str("path", s.path).
		Msg("Loaded conference records from CSV")
	return table, nil
}

// Save writes the full table back to the CSV file atomically: write to a
// temp file in the same directory, then rename over the target.
func (s *Store) Save(_ context.Context, table *conferences.Table) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".conferences-*.csv")
	if err != nil {
		return errors.WrapIO("create", s.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(table.Header()); err != nil {
		tmp.Close()
		return errors.WrapIO("write", tmpName, err)
	}
	for _, row := range table.Rows() {
		if err := w.Write(row); err != nil {
			tmp.Close()
			return errors.WrapIO("write", tmpName, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.WrapIO("write", s.path, err)
	}

	logging.Info().
		Int("rows", table.Len()).
		Str("path", s.path).
		Msg("Saved conference records to CSV")
	return nil
}

// UpdateRow loads the current file, applies the field map to one row, and
// writes the whole file back. CSV has no cheaper incremental write.
func (s *Store) UpdateRow(ctx context.Context, rowIndex int, fields map[conferences.Field]string) error {
	table, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := table.SetFields(rowIndex, fields); err != nil {
		return err
	}
	return s.Save(ctx, table)
}
