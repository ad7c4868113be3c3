// Package oracle wraps the Gemini API as the research oracle that fills in
// missing conference fields. Queries run with the Google Search tool enabled
// so answers are grounded in live web results. The wire contract with the
// model is one JSON object keyed by the exact field names, or the literal
// token "false" when nothing was found.
package oracle

import (
	"context"

	"github.com/akkino69/crypto-scraper/pkg/conferences"
)

// Outcome classifies a single oracle query result.
type Outcome int

// Query outcomes.
const (
	// NotFound means the oracle answered but had no usable information.
	NotFound Outcome = iota
	// Found means at least one non-blank field value came back.
	Found
	// Failed means transport or parsing failed; the item stays incomplete
	// and is retried on a later cycle.
	Failed
)

// String returns the outcome name for logging.
func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one oracle query.
type Result struct {
	Outcome Outcome
	Fields  map[conferences.Field]string // non-nil only when Outcome == Found
	Err     error                        // non-nil only when Outcome == Failed
}

// Client is the oracle contract. Implemented by Gemini; tests substitute
// scripted fakes.
type Client interface {
	// Query asks the oracle for the work item's missing fields. Failures
	// are reported in the Result, never returned as an error, so one bad
	// item cannot abort a batch.
	Query(ctx context.Context, item conferences.WorkItem) Result

	// TestConnection issues a minimal canary request. Used as a pre-flight
	// gate before spending a whole cycle's quota.
	TestConnection(ctx context.Context) bool
}
