package batch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akkino69/crypto-scraper/internal/oracle"
	"github.com/akkino69/crypto-scraper/pkg/conferences"
)

// scriptedOracle returns canned results keyed by conference name and
// records the order of queries.
type scriptedOracle struct {
	results map[string]oracle.Result
	queried []string

	// cancel is called after this many queries, simulating a shutdown
	// mid-run.
	cancelAfter int
	cancel      context.CancelFunc
}

func (s *scriptedOracle) Query(_ context.Context, item conferences.WorkItem) oracle.Result {
	s.queried = append(s.queried, item.Name)
	if s.cancel != nil && len(s.queried) == s.cancelAfter {
		s.cancel()
	}
	if r, ok := s.results[item.Name]; ok {
		return r
	}
	return oracle.Result{Outcome: oracle.NotFound}
}

func (s *scriptedOracle) TestConnection(context.Context) bool { return true }

// recordingSleep captures requested delays without actually sleeping.
type recordingSleep struct {
	delays []time.Duration
}

func (r *recordingSleep) sleep(_ context.Context, d time.Duration) {
	r.delays = append(r.delays, d)
}

func items(names ...string) []conferences.WorkItem {
	out := make([]conferences.WorkItem, len(names))
	for i, name := range names {
		out[i] = conferences.WorkItem{
			RowIndex: i,
			Name:     name,
			Missing:  []conferences.Field{conferences.FieldLocation},
		}
	}
	return out
}

func TestRunPreservesOrderAndCorrespondence(t *testing.T) {
	client := &scriptedOracle{
		results: map[string]oracle.Result{
			"B": {Outcome: oracle.Found, Fields: map[conferences.Field]string{conferences.FieldLocation: "Lisbon"}},
			"C": {Outcome: oracle.Failed, Err: assert.AnError},
		},
	}
	runner := NewRunner(client, WithSleep(func(context.Context, time.Duration) {}))

	work := items("A", "B", "C", "D")
	outcomes := runner.Run(context.Background(), work)

	require.Len(t, outcomes, len(work))
	for i, o := range outcomes {
		assert.Equal(t, work[i].Name, o.Item.Name)
	}
	assert.Equal(t, oracle.NotFound, outcomes[0].Result.Outcome)
	assert.Equal(t, oracle.Found, outcomes[1].Result.Outcome)
	assert.Equal(t, oracle.Failed, outcomes[2].Result.Outcome)
	assert.Equal(t, oracle.NotFound, outcomes[3].Result.Outcome)
}

func TestRunContinuesAfterFailure(t *testing.T) {
	client := &scriptedOracle{
		results: map[string]oracle.Result{
			"A": {Outcome: oracle.Failed, Err: assert.AnError},
		},
	}
	runner := NewRunner(client, WithSleep(func(context.Context, time.Duration) {}))

	outcomes := runner.Run(context.Background(), items("A", "B"))
	require.Len(t, outcomes, 2)
	assert.Equal(t, []string{"A", "B"}, client.queried)
}

func TestRunPacing(t *testing.T) {
	client := &scriptedOracle{}
	sleeper := &recordingSleep{}
	runner := NewRunner(client,
		WithBatchSize(2),
		WithDelays(2*time.Second, 10*time.Second),
		WithSleep(sleeper.sleep),
	)

	runner.Run(context.Background(), items("A", "B", "C", "D", "E"))

	// Item delay after every query, batch delay between the three batches.
	want := []time.Duration{
		2 * time.Second, 2 * time.Second, 10 * time.Second,
		2 * time.Second, 2 * time.Second, 10 * time.Second,
		2 * time.Second,
	}
	assert.Equal(t, want, sleeper.delays)
}

func TestRunCancellationPadsRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &scriptedOracle{cancelAfter: 2, cancel: cancel}
	runner := NewRunner(client, WithSleep(func(context.Context, time.Duration) {}))

	work := items("A", "B", "C", "D")
	outcomes := runner.Run(ctx, work)

	require.Len(t, outcomes, len(work))
	assert.Equal(t, []string{"A", "B"}, client.queried)
	for _, o := range outcomes[2:] {
		assert.Equal(t, oracle.Failed, o.Result.Outcome)
		assert.ErrorIs(t, o.Result.Err, context.Canceled)
	}
}

func TestRunEmptyWorkList(t *testing.T) {
	client := &scriptedOracle{}
	runner := NewRunner(client, WithSleep(func(context.Context, time.Duration) {}))

	outcomes := runner.Run(context.Background(), nil)
	assert.Empty(t, outcomes)
	assert.Empty(t, client.queried)
}
