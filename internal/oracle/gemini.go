package oracle

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/akkino69/crypto-scraper/pkg/conferences"
	"github.com/akkino69/crypto-scraper/pkg/errors"
	"github.com/akkino69/crypto-scraper/pkg/logging"
)

// DefaultModel is the Gemini model used when none is configured. Flash is
// cheap enough to run every 12 hours against the whole incomplete set.
const DefaultModel = "gemini-2.5-flash"

// Compile-time interface check.
var _ Client = (*Gemini)(nil)

// Gemini is the production oracle: Gemini with the Google Search tool.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates the Gemini oracle client.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.NewConfigError("oracle", "GEMINI_API_KEY is not set", errors.ErrAPIKeyRequired)
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.WrapAPI("gemini", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Query asks Gemini for the work item's missing fields with web search
// grounding enabled. Transport and parse failures are absorbed into the
// Result so the batch runner can keep going.
func (g *Gemini) Query(ctx context.Context, item conferences.WorkItem) Result {
	logging.Info().
		Str("conference", item.Name).
		Strs("missing", item.MissingNames()).
		Msg("Searching for conference information")

	text, err := g.generate(ctx, searchPrompt(item))
	if err != nil {
		apiErr := errors.WrapAPI("gemini", err)
		logging.Error().
			Err(apiErr).
			Str("conference", item.Name).
			Msg("Oracle query failed")
		return Result{Outcome: Failed, Err: apiErr}
	}

	result := parseResponse(item.Name, text)
	switch result.Outcome {
	case Found:
		logging.Info().
			Str("conference", item.Name).
			Strs("fields", fieldNames(result.Fields)).
			Msg("Found conference information")
	case NotFound:
		logging.Info().
			Str("conference", item.Name).
			Msg("No information found for conference")
	}
	return result
}

// TestConnection sends the canary prompt and checks for the expected
// token in the reply.
func (g *Gemini) TestConnection(ctx context.Context) bool {
	text, err := g.generate(ctx, canaryPrompt)
	if err != nil {
		logging.Error().Err(err).Msg("Oracle connection test failed")
		return false
	}
	if !strings.Contains(strings.ToLower(text), canaryToken) {
		logging.Error().Msg("Oracle connection test failed: unexpected response")
		return false
	}
	logging.Info().Msg("Oracle connection test successful")
	return true
}

// generate performs one grounded completion and returns the raw text.
func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func fieldNames(fields map[conferences.Field]string) []string {
	out := make([]string, 0, len(fields))
	for f := range fields {
		out = append(out, string(f))
	}
	return out
}
