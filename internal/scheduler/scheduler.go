// Package scheduler runs the reconciliation job on a fixed interval and
// exposes the manual-trigger, preview, and status operations used by the
// CLI and HTTP control surfaces. At most one cycle runs at a time:
// manual triggers fail fast with errors.ErrBusy while a cycle is in
// flight, and scheduled ticks skip the overlap.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/akkino69/crypto-scraper/internal/job"
	"github.com/akkino69/crypto-scraper/pkg/conferences"
	"github.com/akkino69/crypto-scraper/pkg/errors"
	"github.com/akkino69/crypto-scraper/pkg/logging"
	"github.com/akkino69/crypto-scraper/pkg/store"
)

// Defaults.
const (
	DefaultIntervalHours  = 12
	DefaultFailureBackoff = 5 * time.Minute
	DefaultPreviewLimit   = 10
)

// Stats is the process-lifetime run statistics snapshot. In-memory only;
// counters reset on restart.
type Stats struct {
	LastRun        *time.Time `json:"last_run"`
	NextRun        time.Time  `json:"next_run"`
	TotalProcessed int        `json:"total_conferences_processed"`
	TotalUpdates   int        `json:"total_updates_made"`
	ScheduledJobs  int        `json:"scheduled_jobs"`
	IntervalHours  int        `json:"interval_hours"`
}

// RunResult is the structured outcome of a manual trigger.
type RunResult struct {
	Success         bool      `json:"success"`
	DurationSeconds float64   `json:"duration_seconds"`
	Timestamp       time.Time `json:"timestamp"`
	Message         string    `json:"message"`
	Error           string    `json:"error,omitempty"`
}

// Scheduler owns the recurring schedule, the cycle lock, and the run
// statistics. Construct with New; all state lives on the instance, never
// in package globals.
type Scheduler struct {
	store store.Store
	job   *job.Job

	intervalHours  int
	failureBackoff time.Duration
	sleep          func(context.Context, time.Duration)
	now            func() time.Time

	// cycleMu serializes reconciliation cycles (scheduled or manual).
	cycleMu sync.Mutex

	// mu guards stats and cron bookkeeping.
	mu             sync.Mutex
	cron           *cron.Cron
	started        bool
	runCtx         context.Context
	lastRun        *time.Time
	totalProcessed int
	totalUpdates   int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithIntervalHours overrides the recurring interval (default 12).
func WithIntervalHours(hours int) Option {
	return func(s *Scheduler) {
		if hours > 0 {
			s.intervalHours = hours
		}
	}
}

// WithFailureBackoff overrides the wait after a failed scheduled tick.
func WithFailureBackoff(d time.Duration) Option {
	return func(s *Scheduler) { s.failureBackoff = d }
}

// WithSleep injects the sleep function used for failure backoff.
func WithSleep(sleep func(context.Context, time.Duration)) Option {
	return func(s *Scheduler) { s.sleep = sleep }
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// New creates a scheduler around the given store and job.
func New(st store.Store, j *job.Job, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:          st,
		job:            j,
		intervalHours:  DefaultIntervalHours,
		failureBackoff: DefaultFailureBackoff,
		sleep:          sleepCtx,
		now:            time.Now,
		cron:           cron.New(),
		runCtx:         context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.scheduleInterval(s.intervalHours); err != nil {
		// The default spec is static; a failure here is a programming error.
		panic(err)
	}
	return s
}

// Start runs one cycle immediately, starts the recurring schedule, and
// blocks until ctx is cancelled. A failure inside a scheduled tick never
// terminates the loop: it is logged, the scheduler backs off, and polling
// resumes.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.runCtx = ctx
	s.started = true
	c := s.cron
	s.mu.Unlock()

	logging.Info().
		Int("interval_hours", s.intervalHours).
		Msg("Starting conference scraper scheduler")

	// Run once immediately so a fresh deployment doesn't wait out the
	// first interval.
	logging.Info().Msg("Running initial scraping job")
	s.tick(ctx)

	c.Start()
	<-ctx.Done()

	// Stop the cron that is current now, not the one captured at startup:
	// SetCustomSchedule may have swapped in a replacement since.
	s.mu.Lock()
	s.started = false
	active := s.cron
	s.mu.Unlock()

	stopCtx := active.Stop()
	// Let an in-flight tick finish before returning.
	<-stopCtx.Done()
	logging.Info().Msg("Scheduler stopped")
	return ctx.Err()
}

// tick is the scheduled entry point for one cycle. Overlapping ticks are
// skipped rather than queued; the next interval re-discovers the same
// incomplete rows anyway.
func (s *Scheduler) tick(ctx context.Context) {
	if !s.cycleMu.TryLock() {
		logging.Warn().Msg("Previous scraping job still running, skipping tick")
		return
	}
	defer s.cycleMu.Unlock()

	if _, err := s.runCycle(ctx); err != nil {
		logging.Error().Err(err).Msg("Error in scraping job")
		s.sleep(ctx, s.failureBackoff)
	}
}

// RunOnce runs exactly one cycle synchronously and returns a structured
// result. It does not touch the recurring schedule. If a cycle is already
// in flight the trigger is rejected with errors.ErrBusy.
func (s *Scheduler) RunOnce(ctx context.Context) (RunResult, error) {
	if !s.cycleMu.TryLock() {
		return RunResult{}, errors.ErrBusy
	}
	defer s.cycleMu.Unlock()

	started := s.now()
	logging.Info().Msg("Running single scraping job manually")

	report, err := s.runCycle(ctx)
	result := RunResult{
		Timestamp:       started,
		DurationSeconds: report.Duration.Seconds(),
	}
	if err != nil {
		result.Success = false
		result.Error = err.Error()
		result.Message = "Scraping job failed"
		return result, nil
	}
	result.Success = true
	result.Message = "Scraping job completed successfully"
	return result, nil
}

// runCycle executes the job and, on success, folds the report into the
// statistics. The caller must hold cycleMu. Failed cycles leave the
// statistics untouched.
func (s *Scheduler) runCycle(ctx context.Context) (job.Report, error) {
	report, err := s.job.Run(ctx)
	if err != nil {
		return report, err
	}

	s.mu.Lock()
	now := s.now()
	s.lastRun = &now
	s.totalProcessed += report.Processed
	s.totalUpdates += report.Updated
	s.mu.Unlock()
	return report, nil
}

// Preview loads the table and returns the first limit work items without
// querying the oracle. Read-only: neither statistics nor the store change.
func (s *Scheduler) Preview(ctx context.Context, limit int) ([]conferences.WorkItem, error) {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}

	table, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	items := conferences.Analyze(table)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// IncompleteCount returns the number of conferences with missing fields.
func (s *Scheduler) IncompleteCount(ctx context.Context) (int, error) {
	table, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrNoData) {
			return 0, nil
		}
		return 0, err
	}
	return len(conferences.Analyze(table)), nil
}

// Status returns the current run statistics plus schedule information.
func (s *Scheduler) Status() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		LastRun:        s.lastRun,
		TotalProcessed: s.totalProcessed,
		TotalUpdates:   s.totalUpdates,
		ScheduledJobs:  len(s.cron.Entries()),
		IntervalHours:  s.intervalHours,
		NextRun:        s.nextRunLocked(),
	}
	return stats
}

// nextRunLocked returns the earliest scheduled run. Before Start the cron
// entries carry no next-run time, so fall back to now, matching the
// original behavior of reporting "about to run".
func (s *Scheduler) nextRunLocked() time.Time {
	next := time.Time{}
	for _, entry := range s.cron.Entries() {
		if entry.Next.IsZero() {
			continue
		}
		if next.IsZero() || entry.Next.Before(next) {
			next = entry.Next
		}
	}
	if next.IsZero() {
		return s.now()
	}
	return next
}

// SetCustomSchedule replaces the recurring schedule. hours > 0 adds an
// every-N-hours entry; each entry of dailyTimes ("15:04" wall clock) adds
// a fixed daily run. Any prior schedule is cleared first. With no
// arguments the default interval is restored.
func (s *Scheduler) SetCustomSchedule(hours int, dailyTimes []string) error {
	s.mu.Lock()

	// cron has no clear operation; swap in a fresh instance.
	old := s.cron
	s.cron = cron.New()

	if hours <= 0 && len(dailyTimes) == 0 {
		hours = s.intervalHours
	}

	if hours > 0 {
		if err := s.scheduleInterval(hours); err != nil {
			s.cron = old
			s.mu.Unlock()
			return err
		}
		s.intervalHours = hours
		logging.Info().Int("hours", hours).Msg("Set custom schedule: interval")
	}

	for _, at := range dailyTimes {
		parsed, err := time.Parse("15:04", at)
		if err != nil {
			s.cron = old
			s.mu.Unlock()
			return &errors.ValidationError{Field: "time", Value: at, Message: "expected HH:MM"}
		}
		spec := fmt.Sprintf("%d %d * * *", parsed.Minute(), parsed.Hour())
		if _, err := s.cron.AddFunc(spec, func() { s.tick(s.currentCtx()) }); err != nil {
			s.cron = old
			s.mu.Unlock()
			return err
		}
		logging.Info().Str("at", at).Msg("Set custom schedule: daily")
	}

	started := s.started
	replacement := s.cron
	s.mu.Unlock()

	// Swap outside the lock: a tick finishing on the old cron may need mu
	// to record its statistics.
	if started {
		<-old.Stop().Done()
		replacement.Start()
	}
	return nil
}

// scheduleInterval registers the every-N-hours entry on the current cron.
// Callers hold mu (or the scheduler is not yet shared).
func (s *Scheduler) scheduleInterval(hours int) error {
	spec := fmt.Sprintf("@every %dh", hours)
	_, err := s.cron.AddFunc(spec, func() { s.tick(s.currentCtx()) })
	return err
}

// currentCtx returns the context scheduled ticks should run under: the
// Start context while the loop is live, Background otherwise.
func (s *Scheduler) currentCtx() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runCtx
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
