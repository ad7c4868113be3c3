package job

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akkino69/crypto-scraper/internal/batch"
	"github.com/akkino69/crypto-scraper/internal/oracle"
	"github.com/akkino69/crypto-scraper/pkg/conferences"
	"github.com/akkino69/crypto-scraper/pkg/errors"
)

// memStore is an in-memory Store that records saves.
type memStore struct {
	table   *conferences.Table
	loadErr error
	saveErr error
	saves   int
	saved   *conferences.Table
}

func (m *memStore) Load(context.Context) (*conferences.Table, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.table.Clone(), nil
}

func (m *memStore) Save(_ context.Context, table *conferences.Table) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.saved = table
	return nil
}

func (m *memStore) UpdateRow(_ context.Context, row int, fields map[conferences.Field]string) error {
	return m.table.SetFields(row, fields)
}

// fakeOracle returns canned results keyed by conference name.
type fakeOracle struct {
	connected bool
	results   map[string]oracle.Result
	queries   int
}

func (f *fakeOracle) Query(_ context.Context, item conferences.WorkItem) oracle.Result {
	f.queries++
	if r, ok := f.results[item.Name]; ok {
		return r
	}
	return oracle.Result{Outcome: oracle.NotFound}
}

func (f *fakeOracle) TestConnection(context.Context) bool { return f.connected }

func noSleep() batch.Option {
	return batch.WithSleep(func(context.Context, time.Duration) {})
}

func testTable() *conferences.Table {
	header := []string{
		conferences.ColumnName, conferences.ColumnCategory, conferences.ColumnRegion,
		"Start Date", "End Date", "Location", "Speaker", "Attendees", "Status",
	}
	return conferences.NewTable(header, [][]string{
		{"Consensus", "DeFi", "North America", "05/12", "05/14", "Austin", "Vitalik Buterin", "15000", "Confirmed"},
		{"Token2049", "Web3", "Asia", "", "", "Singapore", "", "20000", ""},
		{"EthCC", "Ethereum", "Europe", "07/08", "", "", "", "", ""},
	})
}

func TestRunConnectivityFailureAborts(t *testing.T) {
	st := &memStore{table: testTable()}
	client := &fakeOracle{connected: false}
	j := New(st, client, noSleep())

	report, err := j.Run(context.Background())
	assert.ErrorIs(t, err, errors.ErrOracleUnreachable)
	assert.Equal(t, StateFailed, j.State())
	assert.Zero(t, report.Processed)
	assert.Zero(t, st.saves)
	assert.Equal(t, 0, client.queries)
}

func TestRunNothingIncomplete(t *testing.T) {
	header := []string{conferences.ColumnName, "Start Date", "End Date", "Location", "Speaker", "Attendees", "Status"}
	st := &memStore{table: conferences.NewTable(header, [][]string{
		{"Consensus", "05/12", "05/14", "Austin", "Vitalik Buterin", "15000", "Confirmed"},
	})}
	client := &fakeOracle{connected: true}
	j := New(st, client, noSleep())

	report, err := j.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, j.State())
	assert.Zero(t, report.Processed)
	assert.Zero(t, st.saves)
	assert.Equal(t, 0, client.queries)
}

func TestRunMergesValidatedFieldsAndSavesOnce(t *testing.T) {
	st := &memStore{table: testTable()}
	client := &fakeOracle{
		connected: true,
		results: map[string]oracle.Result{
			"Token2049": {Outcome: oracle.Found, Fields: map[conferences.Field]string{
				conferences.FieldStartDate: "10/01",
				conferences.FieldEndDate:   "October 2nd", // fails validation
				conferences.FieldSpeaker:   "CZ",
				conferences.FieldStatus:    "Confirmed",
			}},
			"EthCC": {Outcome: oracle.Failed, Err: assert.AnError},
		},
	}
	j := New(st, client, noSleep())

	report, err := j.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, j.State())

	// Both incomplete conferences processed, one updated.
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Updated)
	require.Equal(t, 1, st.saves)

	assert.Equal(t, "10/01", st.saved.Value(1, "Start Date"))
	assert.Equal(t, "", st.saved.Value(1, "End Date"))
	assert.Equal(t, "CZ", st.saved.Value(1, "Speaker"))
	assert.Equal(t, "Confirmed", st.saved.Value(1, "Status"))

	// The failed row is untouched.
	assert.Equal(t, "", st.saved.Value(2, "Location"))
}

func TestRunNotFoundCountsAsProcessed(t *testing.T) {
	st := &memStore{table: testTable()}
	client := &fakeOracle{connected: true}
	j := New(st, client, noSleep())

	report, err := j.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Processed)
	assert.Zero(t, report.Updated)
	assert.Zero(t, st.saves, "no updates means no write")
}

func TestRunLoadError(t *testing.T) {
	st := &memStore{loadErr: errors.ErrNoData}
	client := &fakeOracle{connected: true}
	j := New(st, client, noSleep())

	_, err := j.Run(context.Background())
	assert.ErrorIs(t, err, errors.ErrNoData)
	assert.Equal(t, StateFailed, j.State())
}

func TestRunSaveErrorFailsCycle(t *testing.T) {
	st := &memStore{table: testTable(), saveErr: assert.AnError}
	client := &fakeOracle{
		connected: true,
		results: map[string]oracle.Result{
			"Token2049": {Outcome: oracle.Found, Fields: map[conferences.Field]string{
				conferences.FieldSpeaker: "CZ",
			}},
		},
	}
	j := New(st, client, noSleep())

	_, err := j.Run(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, StateFailed, j.State())
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := &memStore{table: testTable()}
	client := &fakeOracle{connected: true}
	j := New(st, client, noSleep())

	_, err := j.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, st.saves)
}
