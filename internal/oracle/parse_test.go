package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akkino69/crypto-scraper/pkg/conferences"
)

func TestParseResponseFound(t *testing.T) {
	raw := `{"Start Date": "05/15", "End Date": "05/17", "Location": "Convention Center, Miami", "Speaker": "Vitalik Buterin", "Attendees": "5000+", "Status": "Confirmed"}`

	result := parseResponse("Bitcoin Miami", raw)
	require.Equal(t, Found, result.Outcome)
	require.NoError(t, result.Err)
	assert.Equal(t, map[conferences.Field]string{
		conferences.FieldStartDate: "05/15",
		conferences.FieldEndDate:   "05/17",
		conferences.FieldLocation:  "Convention Center, Miami",
		conferences.FieldSpeaker:   "Vitalik Buterin",
		conferences.FieldAttendees: "5000+",
		conferences.FieldStatus:    "Confirmed",
	}, result.Fields)
}

func TestParseResponseFalseLiteral(t *testing.T) {
	for _, raw := range []string{"false", "False", "FALSE", "  false  ", "```\nfalse\n```"} {
		result := parseResponse("Unknown Conf", raw)
		assert.Equal(t, NotFound, result.Outcome, "input %q", raw)
		assert.NoError(t, result.Err)
	}
}

func TestParseResponseStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"Location\": \"Singapore\"}\n```"

	result := parseResponse("Token2049", raw)
	require.Equal(t, Found, result.Outcome)
	assert.Equal(t, "Singapore", result.Fields[conferences.FieldLocation])
}

func TestParseResponseDropsNullBlankAndUnknownKeys(t *testing.T) {
	raw := `{"Start Date": null, "Location": "   ", "Website": "https://example.com", "Status": "Confirmed"}`

	result := parseResponse("EthCC", raw)
	require.Equal(t, Found, result.Outcome)
	assert.Equal(t, map[conferences.Field]string{
		conferences.FieldStatus: "Confirmed",
	}, result.Fields)
}

func TestParseResponseCoercesScalarValues(t *testing.T) {
	raw := `{"Attendees": 5000, "Status": "Confirmed"}`

	result := parseResponse("Consensus", raw)
	require.Equal(t, Found, result.Outcome)
	require.NoError(t, result.Err)
	assert.Equal(t, map[conferences.Field]string{
		conferences.FieldAttendees: "5000",
		conferences.FieldStatus:    "Confirmed",
	}, result.Fields)
}

func TestParseResponseKeepsNumberLiterals(t *testing.T) {
	raw := `{"Attendees": 5000.5}`

	result := parseResponse("Consensus", raw)
	require.Equal(t, Found, result.Outcome)
	assert.Equal(t, "5000.5", result.Fields[conferences.FieldAttendees])
}

func TestParseResponseAllDroppedIsNotFound(t *testing.T) {
	raw := `{"Start Date": null, "Website": "x"}`

	result := parseResponse("EthCC", raw)
	assert.Equal(t, NotFound, result.Outcome)
	assert.NoError(t, result.Err)
}

func TestParseResponseMalformedJSON(t *testing.T) {
	result := parseResponse("EthCC", "I could not find anything, sorry.")
	assert.Equal(t, Failed, result.Outcome)
	assert.Error(t, result.Err)
}

func TestParseResponseTrimsValues(t *testing.T) {
	raw := `{"Location": "  Lisbon  "}`

	result := parseResponse("NearCon", raw)
	require.Equal(t, Found, result.Outcome)
	assert.Equal(t, "Lisbon", result.Fields[conferences.FieldLocation])
}

func TestSearchPromptContainsContract(t *testing.T) {
	item := conferences.WorkItem{
		Name:     "Token2049",
		Category: "Web3",
		Region:   "Asia",
		Missing:  []conferences.Field{conferences.FieldStartDate, conferences.FieldSpeaker},
	}

	prompt := searchPrompt(item)
	assert.Contains(t, prompt, `"Token2049"`)
	assert.Contains(t, prompt, "Category: Web3")
	assert.Contains(t, prompt, "Start Date, Speaker")
	assert.Contains(t, prompt, "return false")
	assert.Contains(t, prompt, `"Start Date": "MM/DD" format`)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "not_found", NotFound.String())
	assert.Equal(t, "found", Found.String())
	assert.Equal(t, "failed", Failed.String())
}
