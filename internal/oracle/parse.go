package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akkino69/crypto-scraper/pkg/conferences"
	"github.com/akkino69/crypto-scraper/pkg/errors"
	"github.com/akkino69/crypto-scraper/pkg/logging"
)

// parseResponse interprets the oracle's raw text per the wire contract:
// code fences are stripped, a bare "false" means nothing found, otherwise
// the text must be a JSON object keyed by field names. Values are coerced
// to strings, so a model answering with a bare number still counts. Null,
// blank, and unknown keys are dropped; an object with nothing left is
// treated as NotFound. Malformed JSON is a per-item failure, logged and
// absorbed.
func parseResponse(name, raw string) Result {
	text := stripFences(strings.TrimSpace(raw))

	if strings.EqualFold(text, "false") {
		return Result{Outcome: NotFound}
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		perr := errors.NewParseError("json", name, "oracle returned unparseable payload", err)
		logging.Error().
			Err(perr).
			Str("conference", name).
			Msg("Failed to parse oracle response")
		logging.Debug().Str("response", raw).Msg("Unparseable oracle payload")
		return Result{Outcome: Failed, Err: perr}
	}

	fields := make(map[conferences.Field]string, len(payload))
	for key, value := range payload {
		if value == nil {
			continue
		}
		trimmed := strings.TrimSpace(fmt.Sprint(value))
		if trimmed == "" {
			continue
		}
		if !conferences.IsRequiredField(key) {
			logging.Debug().
				Str("conference", name).
				Str("key", key).
				Msg("Dropping unknown field from oracle response")
			continue
		}
		fields[conferences.Field(key)] = trimmed
	}

	if len(fields) == 0 {
		return Result{Outcome: NotFound}
	}
	return Result{Outcome: Found, Fields: fields}
}

// stripFences removes surrounding markdown code-fence markup, with or
// without a language tag.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
