package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"table", "json", "yaml", "JSON", ""} {
		_, err := ParseFormat(valid)
		assert.NoError(t, err, "format %q", valid)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON)

	require.NoError(t, f.Format(&buf, map[string]int{"count": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["count"])
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatYAML)

	require.NoError(t, f.Format(&buf, map[string]string{"status": "Confirmed"}))
	assert.Contains(t, buf.String(), "status: Confirmed")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTable)

	err := f.Format(&buf, Data{
		Headers: []string{"conference", "missing"},
		Rows: [][]string{
			{"Token2049", "Start Date, End Date"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Token2049")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatTable)

	require.NoError(t, f.Format(&buf, map[string]string{"k": "v"}))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "v", decoded["k"])
}

func TestDetectFormatExplicitWins(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("yaml"))
	assert.Equal(t, FormatTable, DetectFormat("TABLE"))
}
