// Package batch drives the oracle over a work list in fixed-size batches.
// The oracle is an expensive, rate-limited external call, so items run
// sequentially with a pacing delay between queries and a longer delay
// between batches. Nothing here re-queries or parallelizes; if the oracle's
// limits ever loosen, this is the one place to change.
package batch

import (
	"context"
	"time"

	"github.com/akkino69/crypto-scraper/internal/oracle"
	"github.com/akkino69/crypto-scraper/pkg/conferences"
	"github.com/akkino69/crypto-scraper/pkg/logging"
)

// Pacing defaults.
const (
	DefaultBatchSize  = 3
	DefaultItemDelay  = 2 * time.Second
	DefaultBatchDelay = 10 * time.Second
)

// Outcome pairs one work item with its oracle result. The runner's output
// is ordered 1:1 with its input regardless of individual outcomes.
type Outcome struct {
	Item   conferences.WorkItem
	Result oracle.Result
}

// Runner queries the oracle for each work item with rate-limit pacing.
type Runner struct {
	client     oracle.Client
	batchSize  int
	itemDelay  time.Duration
	batchDelay time.Duration
	sleep      func(context.Context, time.Duration)
}

// Option configures a Runner.
type Option func(*Runner)

// WithBatchSize overrides the number of items per batch.
func WithBatchSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// WithDelays overrides the inter-item and inter-batch pacing delays.
func WithDelays(item, batch time.Duration) Option {
	return func(r *Runner) {
		r.itemDelay = item
		r.batchDelay = batch
	}
}

// WithSleep injects the sleep function. Tests use this to run without
// real delays.
func WithSleep(sleep func(context.Context, time.Duration)) Option {
	return func(r *Runner) {
		r.sleep = sleep
	}
}

// NewRunner creates a batch runner over the given oracle client.
func NewRunner(client oracle.Client, opts ...Option) *Runner {
	r := &Runner{
		client:     client,
		batchSize:  DefaultBatchSize,
		itemDelay:  DefaultItemDelay,
		batchDelay: DefaultBatchDelay,
		sleep:      sleepCtx,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run queries the oracle for every work item and returns one outcome per
// item, in input order. A per-item failure is recorded and processing
// continues; only context cancellation stops the run early, in which case
// remaining items are returned with a Failed outcome carrying ctx.Err().
func (r *Runner) Run(ctx context.Context, items []conferences.WorkItem) []Outcome {
	outcomes := make([]Outcome, 0, len(items))
	batches := (len(items) + r.batchSize - 1) / r.batchSize

	for start := 0; start < len(items); start += r.batchSize {
		end := start + r.batchSize
		if end > len(items) {
			end = len(items)
		}

		logging.Info().
			Int("batch", start/r.batchSize+1).
			Int("batches", batches).
			Msg("Processing batch")

		for _, item := range items[start:end] {
			if err := ctx.Err(); err != nil {
				return r.cancelRemaining(outcomes, items, err)
			}

			result := r.client.Query(ctx, item)
			outcomes = append(outcomes, Outcome{Item: item, Result: result})

			// Pace every query to stay under the oracle's rate limits.
			r.sleep(ctx, r.itemDelay)
		}

		if end < len(items) {
			logging.Info().Msg("Waiting between batches")
			r.sleep(ctx, r.batchDelay)
		}
	}

	return outcomes
}

// cancelRemaining pads the outcome list so the 1:1 input/output
// correspondence holds even when the context is cancelled mid-run.
func (r *Runner) cancelRemaining(outcomes []Outcome, items []conferences.WorkItem, err error) []Outcome {
	for i := len(outcomes); i < len(items); i++ {
		outcomes = append(outcomes, Outcome{
			Item:   items[i],
			Result: oracle.Result{Outcome: oracle.Failed, Err: err},
		})
	}
	return outcomes
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
