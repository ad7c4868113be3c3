// Package server provides the HTTP control surface for the scraper:
// health and status probes, manual scrape triggering, and batch preview.
// It mirrors the CLI operations over HTTP for cloud deployments.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/akkino69/crypto-scraper/internal/scheduler"
	"github.com/akkino69/crypto-scraper/pkg/store"
)

// Config holds server settings.
type Config struct {
	Host string
	Port int

	// SpreadsheetName is reported by /sheets-url when the sheets backend
	// is active.
	SpreadsheetName string
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	scheduler *scheduler.Scheduler
	store     store.Store
	logger    *zerolog.Logger
	config    Config
	httpSrv   *http.Server
	startTime time.Time
}

// New creates a new control server around a scheduler. The scheduler may
// be nil (initialization failed); endpoints then report 500 until restart,
// while /health stays green so the platform doesn't kill the instance
// during operator debugging.
func New(sched *scheduler.Scheduler, st store.Store, logger *zerolog.Logger, cfg Config) *Server {
	s := &Server{
		scheduler: sched,
		store:     st,
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpSrv.Addr).Msg("Starting control server")
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}

// routes builds the handler with all endpoints and middleware applied.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/trigger-scrape", s.handleTrigger)
	mux.HandleFunc("/preview", s.handlePreview)
	mux.HandleFunc("/sheets-url", s.handleSheetsURL)

	return Chain(
		Recovery(s.logger),
		Logger(s.logger),
	)(mux)
}
