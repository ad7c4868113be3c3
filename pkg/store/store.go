// Package store defines the record store contract satisfied by both
// conference storage backends: a local CSV file and a hosted Google Sheet.
// Either backend reduces to a tabular row store with a header row; callers
// address rows by their 0-based position at load time.
package store

import (
	"context"

	"github.com/akkino69/crypto-scraper/pkg/conferences"
)

// Store is the record store contract. The reconciliation job is the only
// writer; everything else treats the store as read-only.
type Store interface {
	// Load reads the 2026 conference table. Returns errors.ErrNoData
	// (wrapped) when the table does not exist or has no rows.
	Load(ctx context.Context) (*conferences.Table, error)

	// Save persists the full table, replacing previous contents.
	Save(ctx context.Context, table *conferences.Table) error

	// UpdateRow applies a field map to a single row and persists the
	// change. rowIndex is the 0-based position from the Load that produced
	// the caller's table copy.
	UpdateRow(ctx context.Context, rowIndex int, fields map[conferences.Field]string) error
}

// Sharer is implemented by backends that support access management
// (the Google Sheets backend).
type Sharer interface {
	Share(ctx context.Context, email, role string) error
	URL() string
}
