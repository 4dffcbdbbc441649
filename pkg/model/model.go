package model

import (
	"time"
)

// Show is a podcast show in the Radio France catalog.
type Show struct {
	ID          string
	Title       string
	Description string
	URL         string
	Station     *Station
	ImageURL    string
}

// Episode is a single broadcast (a "diffusion" upstream).
//
// ID is opaque and source specific: the API, RSS feeds and the scraper
// each hand out their own identifiers and no reconciliation is attempted.
// AudioURL may be empty when upstream exposes no playable media,
// callers must check before downloading.
type Episode struct {
	ID          string
	Title       string
	Description string
	ShowID      string
	ShowTitle   string
	PublishedAt *time.Time
	Duration    int // seconds
	AudioURL    string
	PageURL     string
	ImageURL    string
}

// DownloadResult is the outcome of a single download attempt.
// It is produced once per attempt and never persisted.
type DownloadResult struct {
	Episode        Episode
	FilePath       string
	FileSize       int64
	AlreadyExisted bool
	Success        bool
	Err            string
}
