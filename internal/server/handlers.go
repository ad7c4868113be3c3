package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akkino69/crypto-scraper/internal/server/response"
	"github.com/akkino69/crypto-scraper/pkg/errors"
	"github.com/akkino69/crypto-scraper/pkg/store"
)

// handleHome serves service information at GET /.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		response.JSON(w, http.StatusNotFound, response.Fail("NOT_FOUND", "Not found", ""))
		return
	}
	response.OK(w, map[string]any{
		"service":     "crypto-conference-scraper",
		"description": "Automatically scrapes 2026 crypto conference information",
		"endpoints": map[string]string{
			"/health":         "Health check",
			"/status":         "Get scraper status",
			"/trigger-scrape": "Trigger manual scrape (POST)",
			"/preview":        "Preview next batch",
			"/sheets-url":     "Get Google Sheets URL",
		},
		"timestamp": time.Now().UTC(),
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":    "healthy",
		"service":   "crypto-conference-scraper",
		"uptime":    time.Since(s.startTime).String(),
		"timestamp": time.Now().UTC(),
	})
}

// handleStatus reports run statistics and the incomplete-record count.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if s.scheduler == nil {
		response.InternalError(w, "Scheduler not initialized")
		return
	}

	incomplete, err := s.scheduler.IncompleteCount(r.Context())
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to count incomplete conferences")
	}

	response.OK(w, map[string]any{
		"scheduler_status":       s.scheduler.Status(),
		"incomplete_conferences": incomplete,
		"timestamp":              time.Now().UTC(),
	})
}

// handleTrigger runs a single scraping job synchronously. Accepts POST
// (and GET, kept for parity with simple cron pingers).
func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		response.MethodNotAllowed(w, r.Method)
		return
	}
	if s.scheduler == nil {
		response.InternalError(w, "Scheduler not initialized")
		return
	}

	result, err := s.scheduler.RunOnce(r.Context())
	if err != nil {
		if errors.IsBusy(err) {
			response.Conflict(w, "A scraping job is already running")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"message": "Scraping job triggered",
		"result":  result,
	})
}

// handlePreview returns the next batch of conferences to be scraped
// without querying the oracle. A missing or malformed limit defaults to
// 10 rather than erroring.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if s.scheduler == nil {
		response.InternalError(w, "Scheduler not initialized")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	items, err := s.scheduler.Preview(r.Context(), limit)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, map[string]any{
		"next_batch": items,
		"count":      len(items),
		"timestamp":  time.Now().UTC(),
	})
}

// handleSheetsURL reports the spreadsheet URL when the sheets backend is
// active.
func (s *Server) handleSheetsURL(w http.ResponseWriter, _ *http.Request) {
	sharer, ok := s.store.(store.Sharer)
	if !ok {
		response.BadRequest(w, "Google Sheets not enabled", "")
		return
	}

	response.OK(w, map[string]any{
		"google_sheets_url": sharer.URL(),
		"spreadsheet_name":  s.config.SpreadsheetName,
		"timestamp":         time.Now().UTC(),
	})
}
