// Package cmd implements the scraper CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/akkino69/crypto-scraper/internal/config"
	"github.com/akkino69/crypto-scraper/pkg/logging"
)

var (
	configFile   string
	outputFormat string
	verbose      bool
	quiet        bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scraper",
	Short: "Crypto conference information scraper",
	Long: `Scraper keeps a 2026 crypto conference data set complete. It finds
conferences with missing dates, locations, speakers, attendance, or status,
asks a web-search-grounded Gemini model to fill them in, validates the
answers, and writes them back to a local CSV file or a Google Sheet.

Run 'scraper init' once to build the 2026 data set from a combined CSV
export, then 'scraper start' to run the recurring schedule, or 'scraper
scrape' for a single pass.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is ./.scraper.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".scraper")
	}

	// Load .env files before Viper env binding so both see the values
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	bindEnvVars()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// configureLogging sets up the logging system based on flags and environment.
func configureLogging() {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}
	logging.SetLevel(level)
}

// loadEnvFiles loads environment variables from .env files. Variables
// already set in the environment are never overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		if err := godotenv.Load(envFile); err == nil && verbose {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
		}
	}
}

// bindEnvVars explicitly binds the scraper's environment variables to Viper
// so they resolve even without a config file entry.
func bindEnvVars() {
	keys := []string{
		config.EnvGeminiAPIKey,
		config.EnvGeminiModel,
		config.EnvUseGoogleSheets,
		config.EnvSpreadsheetName,
		config.EnvServiceAccountFile,
		config.EnvInputCSV,
		config.Env2025CSV,
		config.Env2026CSV,
		config.EnvIntervalHours,
		config.EnvPort,
	}
	for _, key := range keys {
		if err := viper.BindEnv(key); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", key, err)
		}
	}
}
