// Package job implements the reconciliation cycle: connectivity check,
// completeness analysis, batched oracle queries, validation and merge, and
// a single persist. One Run is one cycle; the scheduler decides when cycles
// happen and owns the run statistics.
package job

import (
	"context"
	"time"

	"github.com/akkino69/crypto-scraper/internal/batch"
	"github.com/akkino69/crypto-scraper/internal/oracle"
	"github.com/akkino69/crypto-scraper/pkg/conferences"
	"github.com/akkino69/crypto-scraper/pkg/errors"
	"github.com/akkino69/crypto-scraper/pkg/logging"
	"github.com/akkino69/crypto-scraper/pkg/store"
)

// State names one phase of a reconciliation cycle. States exist for
// logging and status reporting; transitions are linear with Failed
// reachable from anywhere.
type State string

// Cycle states.
const (
	StateIdle              State = "idle"
	StateConnectivityCheck State = "connectivity_check"
	StateAnalyzing         State = "analyzing"
	StateBatching          State = "batching"
	StateMerging           State = "merging"
	StatePersisting        State = "persisting"
	StateDone              State = "done"
	StateFailed            State = "failed"
)

// Report summarizes one completed cycle.
type Report struct {
	Started   time.Time     `json:"started"`
	Duration  time.Duration `json:"duration"`
	Processed int           `json:"records_processed"`
	Updated   int           `json:"updates_made"`
}

// Job runs reconciliation cycles against one store and one oracle.
type Job struct {
	store  store.Store
	client oracle.Client
	runner *batch.Runner

	state State
	now   func() time.Time
}

// New creates a reconciliation job. Batch options configure pacing; the
// production job uses the defaults (batch of 3, 2s/10s delays).
func New(st store.Store, client oracle.Client, opts ...batch.Option) *Job {
	return &Job{
		store:  st,
		client: client,
		runner: batch.NewRunner(client, opts...),
		state:  StateIdle,
		now:    time.Now,
	}
}

// State returns the job's current cycle state.
func (j *Job) State() State { return j.state }

// Run executes one full reconciliation cycle. On any failure the cycle
// aborts with no partial merge persisted and the error is returned to the
// caller; the scheduler decides whether to swallow it (background tick) or
// surface it (manual trigger).
func (j *Job) Run(ctx context.Context) (report Report, err error) {
	started := j.now()
	report = Report{Started: started}
	defer func() {
		report.Duration = j.now().Sub(started)
	}()

	logging.Info().Msg("Starting scraping job")

	// Pre-flight gate: don't spend a cycle's quota against a dead API.
	j.state = StateConnectivityCheck
	if !j.client.TestConnection(ctx) {
		j.state = StateFailed
		return report, errors.ErrOracleUnreachable
	}

	j.state = StateAnalyzing
	table, err := j.store.Load(ctx)
	if err != nil {
		j.state = StateFailed
		return report, err
	}

	items := conferences.Analyze(table)
	if len(items) == 0 {
		j.state = StateDone
		logging.Info().Msg("No conferences with missing information found")
		return report, nil
	}
	logging.Info().Int("count", len(items)).Msg("Found conferences with missing information")

	j.state = StateBatching
	outcomes := j.runner.Run(ctx, items)
	if err := ctx.Err(); err != nil {
		j.state = StateFailed
		return report, err
	}

	j.state = StateMerging
	working := table.Clone()
	for _, outcome := range outcomes {
		report.Processed++
		if outcome.Result.Outcome != oracle.Found {
			continue
		}

		validated := conferences.ValidateFields(outcome.Result.Fields)
		if len(validated) == 0 {
			continue
		}
		if err := working.SetFields(outcome.Item.RowIndex, validated); err != nil {
			j.state = StateFailed
			return report, err
		}
		report.Updated++
		logging.Info().
			Str("conference", outcome.Item.Name).
			Int("fields", len(validated)).
			Msg("Updated conference")
	}

	// Skip the write entirely when nothing changed.
	if report.Updated > 0 {
		j.state = StatePersisting
		if err := j.store.Save(ctx, working); err != nil {
			j.state = StateFailed
			return report, err
		}
		logging.Info().Int("updates", report.Updated).Msg("Saved updates to data storage")
	}

	j.state = StateDone
	logging.Info().
		Int("processed", report.Processed).
		Int("updated", report.Updated).
		Dur("duration", j.now().Sub(started)).
		Msg("Scraping job completed")
	return report, nil
}
