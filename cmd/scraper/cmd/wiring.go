package cmd

import (
	"context"

	"github.com/akkino69/crypto-scraper/internal/config"
	"github.com/akkino69/crypto-scraper/internal/job"
	"github.com/akkino69/crypto-scraper/internal/oracle"
	"github.com/akkino69/crypto-scraper/internal/scheduler"
	"github.com/akkino69/crypto-scraper/pkg/store"
	"github.com/akkino69/crypto-scraper/pkg/store/csvstore"
	"github.com/akkino69/crypto-scraper/pkg/store/sheetstore"
)

// buildStore constructs the configured record store backend. The sheets
// backend finds or creates the spreadsheet as part of construction.
func buildStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.UseGoogleSheets {
		return buildSheetStore(ctx, cfg)
	}
	return csvstore.New(cfg.Output2026CSV), nil
}

func buildSheetStore(ctx context.Context, cfg *config.Config) (*sheetstore.Store, error) {
	st, err := sheetstore.New(ctx, cfg.SpreadsheetName, cfg.ServiceAccountFile)
	if err != nil {
		return nil, err
	}
	if err := st.Ensure(ctx); err != nil {
		return nil, err
	}
	return st, nil
}

// buildOracle constructs the Gemini client from configuration.
func buildOracle(ctx context.Context, cfg *config.Config) (oracle.Client, error) {
	if err := cfg.ValidateOracle(); err != nil {
		return nil, err
	}
	return oracle.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
}

// buildScheduler wires store, oracle, job, and scheduler together.
func buildScheduler(ctx context.Context, cfg *config.Config) (*scheduler.Scheduler, store.Store, error) {
	st, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	client, err := buildOracle(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	j := job.New(st, client)
	sched := scheduler.New(st, j, scheduler.WithIntervalHours(cfg.IntervalHours))
	return sched, st, nil
}
