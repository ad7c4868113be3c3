package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/akkino69/crypto-scraper/internal/config"
	"github.com/akkino69/crypto-scraper/internal/server"
	"github.com/akkino69/crypto-scraper/pkg/logging"
)

var (
	startServe bool
	startPort  int
)

// startCmd runs the recurring scraping schedule until interrupted.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the recurring scraping schedule",
	Long: `Start runs one scraping pass immediately, then repeats every
SCRAPING_INTERVAL_HOURS (default 12) until interrupted. With --serve the
HTTP control server runs alongside, exposing health, status, manual
trigger, and preview endpoints.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		if startPort > 0 {
			cfg.Port = startPort
		}

		ctx := cmd.Context()
		sched, st, err := buildScheduler(ctx, cfg)
		if err != nil {
			return err
		}

		if !startServe {
			err := sched.Start(ctx)
			if err == context.Canceled {
				return nil
			}
			return err
		}

		srv := server.New(sched, st, logging.Default(), server.Config{
			Port:            cfg.Port,
			SpreadsheetName: cfg.SpreadsheetName,
		})

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return sched.Start(gctx) })
		g.Go(func() error { return srv.ListenAndServe(gctx) })

		if err := g.Wait(); err != nil && err != context.Canceled {
			return err
		}
		return nil
	},
}

func init() {
	startCmd.Flags().BoolVar(&startServe, "serve", false, "run the HTTP control server alongside the scheduler")
	startCmd.Flags().IntVarP(&startPort, "port", "p", 0, "HTTP control server port (default from PORT)")
	rootCmd.AddCommand(startCmd)
}
