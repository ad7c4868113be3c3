// Package config centralizes environment-driven configuration for the
// scraper. All settings come from environment variables (optionally via a
// .env file loaded by the CLI) and are resolved through Viper so flags and
// config files can override them.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/akkino69/crypto-scraper/pkg/errors"
)

// Environment variable names.
const (
	EnvGeminiAPIKey       = "GEMINI_API_KEY"
	EnvGeminiModel        = "GEMINI_MODEL"
	EnvUseGoogleSheets    = "USE_GOOGLE_SHEETS"
	EnvSpreadsheetName    = "GOOGLE_SPREADSHEET_NAME"
	EnvServiceAccountFile = "GOOGLE_SERVICE_ACCOUNT_FILE"
	EnvInputCSV           = "INPUT_CSV"
	Env2025CSV            = "OUTPUT_2025_CSV"
	Env2026CSV            = "OUTPUT_2026_CSV"
	EnvIntervalHours      = "SCRAPING_INTERVAL_HOURS"
	EnvPort               = "PORT"
)

// Defaults.
const (
	DefaultSpreadsheetName = "Crypto Conferences 2026"
	DefaultInputCSV        = "conferences.csv"
	Default2025CSV         = "conferences_2025.csv"
	Default2026CSV         = "conferences_2026.csv"
	DefaultIntervalHours   = 12
	DefaultPort            = 8080
)

// Config holds all scraper settings.
type Config struct {
	// GeminiAPIKey authenticates the oracle client. Required for any
	// operation that queries the model.
	GeminiAPIKey string

	// GeminiModel overrides the default model when non-empty.
	GeminiModel string

	// UseGoogleSheets selects the Sheets backend over local CSV files.
	UseGoogleSheets bool

	// SpreadsheetName is the title of the spreadsheet to find or create.
	SpreadsheetName string

	// ServiceAccountFile is the path to the Google service account JSON
	// credentials. Empty means application default credentials.
	ServiceAccountFile string

	// InputCSV is the combined source file consumed by init.
	InputCSV string

	// Output2025CSV and Output2026CSV are the per-year store files used
	// when the Sheets backend is disabled.
	Output2025CSV string
	Output2026CSV string

	// IntervalHours is the gap between scheduled scraping runs.
	IntervalHours int

	// Port for the HTTP control server.
	Port int
}

// GetString resolves a key through Viper, falling back to the OS
// environment when Viper has no binding for it.
func GetString(key string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return os.Getenv(key)
}

// Load resolves the full configuration from the environment.
func Load() *Config {
	cfg := &Config{
		GeminiAPIKey:       GetString(EnvGeminiAPIKey),
		GeminiModel:        GetString(EnvGeminiModel),
		UseGoogleSheets:    parseBool(GetString(EnvUseGoogleSheets)),
		SpreadsheetName:    GetString(EnvSpreadsheetName),
		ServiceAccountFile: GetString(EnvServiceAccountFile),
		InputCSV:           GetString(EnvInputCSV),
		Output2025CSV:      GetString(Env2025CSV),
		Output2026CSV:      GetString(Env2026CSV),
		IntervalHours:      viper.GetInt(EnvIntervalHours),
		Port:               viper.GetInt(EnvPort),
	}

	if cfg.SpreadsheetName == "" {
		cfg.SpreadsheetName = DefaultSpreadsheetName
	}
	if cfg.InputCSV == "" {
		cfg.InputCSV = DefaultInputCSV
	}
	if cfg.Output2025CSV == "" {
		cfg.Output2025CSV = Default2025CSV
	}
	if cfg.Output2026CSV == "" {
		cfg.Output2026CSV = Default2026CSV
	}
	if cfg.IntervalHours <= 0 {
		cfg.IntervalHours = DefaultIntervalHours
	}
	if cfg.Port <= 0 {
		cfg.Port = DefaultPort
	}

	return cfg
}

// ValidateOracle checks that the oracle client can be constructed.
func (c *Config) ValidateOracle() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return &errors.ConfigError{
			Component: "oracle",
			Message:   EnvGeminiAPIKey + " is not set",
			Err:       errors.ErrAPIKeyRequired,
		}
	}
	return nil
}

// ValidateSheets checks that the Sheets backend can be constructed.
func (c *Config) ValidateSheets() error {
	if !c.UseGoogleSheets {
		return errors.ErrSheetsDisabled
	}
	return nil
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
