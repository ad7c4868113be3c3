package conferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullHeader() []string {
	return []string{
		ColumnName, ColumnCategory, ColumnRegion,
		"Start Date", "End Date", "Location", "Speaker", "Attendees", "Status",
	}
}

func TestAnalyzeCompleteTable(t *testing.T) {
	table := NewTable(fullHeader(), [][]string{
		{"Consensus", "DeFi", "North America", "05/12", "05/14", "Austin", "Vitalik Buterin", "15000", "Confirmed"},
	})

	items := Analyze(table)
	assert.Empty(t, items)
}

func TestAnalyzeFindsMissingFields(t *testing.T) {
	table := NewTable(fullHeader(), [][]string{
		{"Consensus", "DeFi", "North America", "05/12", "05/14", "Austin", "Vitalik Buterin", "15000", "Confirmed"},
		{"Token2049", "Web3", "Asia", "", "", "Singapore", "", "20000", "Confirmed"},
		{"EthCC", "Ethereum", "Europe", "07/08", "07/11", "  ", "TBD", "6000", ""},
	})

	items := Analyze(table)
	require.Len(t, items, 2)

	assert.Equal(t, "Token2049", items[0].Name)
	assert.Equal(t, 1, items[0].RowIndex)
	assert.Equal(t, "Web3", items[0].Category)
	assert.Equal(t, "Asia", items[0].Region)
	assert.Equal(t, []Field{FieldStartDate, FieldEndDate, FieldSpeaker}, items[0].Missing)

	assert.Equal(t, "EthCC", items[1].Name)
	assert.Equal(t, []Field{FieldLocation, FieldStatus}, items[1].Missing)
}

func TestAnalyzeSkipsBlankNames(t *testing.T) {
	table := NewTable(fullHeader(), [][]string{
		{"", "DeFi", "Europe", "", "", "", "", "", ""},
		{"   ", "DeFi", "Europe", "", "", "", "", "", ""},
		{"Devcon", "Ethereum", "Asia", "", "", "", "", "", ""},
	})

	items := Analyze(table)
	require.Len(t, items, 1)
	assert.Equal(t, "Devcon", items[0].Name)
	assert.Equal(t, 2, items[0].RowIndex)
}

func TestAnalyzeMissingColumnCountsAsMissing(t *testing.T) {
	// No Status column at all.
	table := NewTable(
		[]string{ColumnName, "Start Date", "End Date", "Location", "Speaker", "Attendees"},
		[][]string{
			{"Consensus", "05/12", "05/14", "Austin", "Vitalik Buterin", "15000"},
		},
	)

	items := Analyze(table)
	require.Len(t, items, 1)
	assert.Equal(t, []Field{FieldStatus}, items[0].Missing)
}

func TestAnalyzeDoesNotMutateTable(t *testing.T) {
	table := NewTable(fullHeader(), [][]string{
		{"Token2049", "Web3", "Asia", "", "", "", "", "", ""},
	})
	before := table.Row(0)

	_ = Analyze(table)
	assert.Equal(t, before, table.Row(0))
}

func TestWorkItemMissingNames(t *testing.T) {
	item := WorkItem{Missing: []Field{FieldStartDate, FieldLocation}}
	assert.Equal(t, []string{"Start Date", "Location"}, item.MissingNames())
}
