package model

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrShowNotFound    = errors.New("show not found")
	ErrEpisodeNotFound = errors.New("episode not found")
)

// APIError is returned for any failed exchange with the Radio France API:
// transport failures, HTTP statuses >= 400 and application-level error
// payloads. StatusCode is 0 when no HTTP response was received.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return "api error: " + e.Message
}

// AuthError indicates an invalid or missing API key (HTTP 401).
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "invalid or missing API key"
	}
	return "authentication failed: " + e.Message
}

// DownloadError is returned when fetching or writing episode audio fails.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ScrapeError is returned when a page could not be fetched or yielded
// no usable episode data.
type ScrapeError struct {
	URL     string
	Message string
}

func (e *ScrapeError) Error() string {
	if e.URL == "" {
		return "scrape: " + e.Message
	}
	return fmt.Sprintf("scrape %s: %s", e.URL, e.Message)
}

// ConfigError is returned when the config file cannot be read or written.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
