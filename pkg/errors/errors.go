// Package errors provides custom error types for the conference scraper.
// These errors enable programmatic error checking at the scheduler and HTTP
// boundaries and keep per-item oracle failures distinguishable from
// cycle-level failures.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
var As = errors.As

// Common sentinel errors for the scraper.
var (
	// ErrBusy indicates a reconciliation cycle is already running and a
	// concurrent trigger was rejected.
	ErrBusy = errors.New("scrape cycle already running")

	// ErrOracleUnreachable indicates the research oracle failed its
	// pre-flight connectivity check.
	ErrOracleUnreachable = errors.New("oracle unreachable")

	// ErrNoData indicates the 2026 table is empty or missing; the system
	// needs to be initialized before scraping.
	ErrNoData = errors.New("no 2026 conference data found")

	// ErrAPIKeyRequired indicates that an API key is required but not set.
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrSheetsDisabled indicates a Google Sheets operation was requested
	// while the CSV backend is configured.
	ErrSheetsDisabled = errors.New("google sheets backend not enabled")
)

// ConfigError represents a configuration error: a missing required setting
// or input file. Fatal at startup, never during a cycle.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ValidationError represents invalid input to an operation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// ParseError represents an unparseable payload from the oracle or a data
// file. Per-item and non-fatal: the item is counted as not-found and the
// cycle continues.
type ParseError struct {
	Format  string // "json", "csv"
	Subject string // conference name or file path
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("%s parse error for %s: %s", e.Format, e.Subject, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(format, subject, message string, err error) *ParseError {
	return &ParseError{Format: format, Subject: subject, Message: message, Err: err}
}

// IOError represents a store read/write failure. A write failure during
// Persisting fails the whole cycle and leaves statistics untouched.
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Err       error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// APIError represents a transport or service failure talking to an external
// API (the Gemini oracle or the Sheets service).
type APIError struct {
	Service    string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Service, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Helper wrapping functions for common patterns.

// WrapIO wraps an error as an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapParse wraps an error as a ParseError.
func WrapParse(format, subject string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, subject, err.Error(), err)
}

// WrapAPI wraps an error as an APIError.
func WrapAPI(service string, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{Service: service, Message: err.Error(), Err: err}
}

// IsBusy checks if an error means a cycle was already in flight.
func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}
