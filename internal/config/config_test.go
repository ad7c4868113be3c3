package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		EnvGeminiAPIKey, EnvGeminiModel, EnvUseGoogleSheets, EnvSpreadsheetName,
		EnvInputCSV, Env2025CSV, Env2026CSV,
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, DefaultSpreadsheetName, cfg.SpreadsheetName)
	assert.Equal(t, DefaultInputCSV, cfg.InputCSV)
	assert.Equal(t, Default2025CSV, cfg.Output2025CSV)
	assert.Equal(t, Default2026CSV, cfg.Output2026CSV)
	assert.Equal(t, DefaultIntervalHours, cfg.IntervalHours)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.False(t, cfg.UseGoogleSheets)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "test-key")
	t.Setenv(EnvUseGoogleSheets, "true")
	t.Setenv(EnvSpreadsheetName, "My Sheet")

	cfg := Load()
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.True(t, cfg.UseGoogleSheets)
	assert.Equal(t, "My Sheet", cfg.SpreadsheetName)
}

func TestValidateOracle(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.ValidateOracle())

	cfg.GeminiAPIKey = "key"
	assert.NoError(t, cfg.ValidateOracle())
}

func TestValidateSheets(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.ValidateSheets())

	cfg.UseGoogleSheets = true
	assert.NoError(t, cfg.ValidateSheets())
}

func TestParseBool(t *testing.T) {
	for _, truthy := range []string{"true", "TRUE", "1", "yes", "on", " true "} {
		assert.True(t, parseBool(truthy), "value %q", truthy)
	}
	for _, falsy := range []string{"", "false", "0", "no", "off", "banana"} {
		assert.False(t, parseBool(falsy), "value %q", falsy)
	}
}
