package conferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTablePadsShortRows(t *testing.T) {
	table := NewTable(
		[]string{ColumnName, "Start Date", "Location"},
		[][]string{{"Consensus"}},
	)

	assert.Equal(t, []string{"Consensus", "", ""}, table.Row(0))
	assert.Equal(t, "", table.Value(0, "Location"))
}

func TestTableValueTrimsAndHandlesMissing(t *testing.T) {
	table := NewTable(
		[]string{ColumnName, "Location"},
		[][]string{{"  Consensus  ", " Austin "}},
	)

	assert.Equal(t, "Consensus", table.Value(0, ColumnName))
	assert.Equal(t, "Austin", table.Value(0, "Location"))
	assert.Equal(t, "", table.Value(0, "Nope"))
	assert.Equal(t, "", table.Value(5, ColumnName))
}

func TestTableSet(t *testing.T) {
	table := NewTable(
		[]string{ColumnName, "Location"},
		[][]string{{"Consensus", ""}},
	)

	require.NoError(t, table.Set(0, "Location", "Austin"))
	assert.Equal(t, "Austin", table.Value(0, "Location"))

	assert.Error(t, table.Set(0, "Nope", "x"))
	assert.Error(t, table.Set(9, "Location", "x"))
}

func TestTableSetFieldsSkipsMissingColumns(t *testing.T) {
	table := NewTable(
		[]string{ColumnName, "Location"},
		[][]string{{"Consensus", ""}},
	)

	err := table.SetFields(0, map[Field]string{
		FieldLocation:  "Austin",
		FieldStartDate: "05/12", // no such column
	})
	require.NoError(t, err)
	assert.Equal(t, "Austin", table.Value(0, "Location"))
}

func TestTableCloneIsIndependent(t *testing.T) {
	table := NewTable(
		[]string{ColumnName, "Location"},
		[][]string{{"Consensus", "Austin"}},
	)

	clone := table.Clone()
	require.NoError(t, clone.Set(0, "Location", "Lisbon"))

	assert.Equal(t, "Austin", table.Value(0, "Location"))
	assert.Equal(t, "Lisbon", clone.Value(0, "Location"))
}

func TestRecordFields(t *testing.T) {
	table := NewTable(fullHeader(), [][]string{
		{"Consensus", "DeFi", "North America", "05/12", "", "Austin", "", "15000", "Confirmed"},
	})

	rec := table.Record(0)
	assert.Equal(t, "Consensus", rec.Name)
	assert.Equal(t, "DeFi", rec.Category)
	assert.Equal(t, "05/12", rec.FieldValue(FieldStartDate))

	fields := rec.Fields()
	assert.Len(t, fields, len(RequiredFields()))
	assert.Equal(t, "", fields[FieldEndDate])
}

func TestIsRequiredField(t *testing.T) {
	assert.True(t, IsRequiredField("Start Date"))
	assert.True(t, IsRequiredField("Status"))
	assert.False(t, IsRequiredField("Conference Name"))
	assert.False(t, IsRequiredField("start date"))
}
