package service

import (
	"time"

	"go.klb.dev/clipkeep/internal/history"
	"go.klb.dev/clipkeep/internal/hub"
)

// CopyRequest restores an item to the clipboard. Index selects a recent
// capture (0 is the newest); otherwise Representations are written as given.
type CopyRequest struct {
	Representations  []history.Representation `json:"representations,omitempty"`
	Index            *int                     `json:"index,omitempty"`
	RemoveFormatting bool                     `json:"remove_formatting,omitempty"`
}

// PasteRequest synthesizes a paste into the focused application, optionally
// copying the recent capture at Index first.
type PasteRequest struct {
	Index            *int `json:"index,omitempty"`
	RemoveFormatting bool `json:"remove_formatting,omitempty"`
}

type PasteResponse struct {
	// Permission is the gate state: "granted" or "denied".
	Permission string        `json:"permission"`
	Item       *history.Item `json:"item,omitempty"`
}

// WatchRequest subscribes to captures. Accepts limits the representation
// types delivered (empty = all). MetadataOnly strips payloads.
type WatchRequest struct {
	Accepts      []string `json:"accepts,omitempty"`
	MetadataOnly bool     `json:"metadata_only,omitempty"`
}

type RecentRequest struct {
	// Limit caps the number of items returned; 0 returns everything held.
	Limit int `json:"limit,omitempty"`
}

type RecentResponse struct {
	Items []history.Item `json:"items"`
}

type StatusResponse struct {
	Version     string         `json:"version"`
	Backend     string         `json:"backend"`
	StartedAt   time.Time      `json:"started_at"`
	ChangeCount int64          `json:"change_count"`
	Capturing   bool           `json:"capturing"`
	Paused      bool           `json:"paused"`
	Permission  string         `json:"permission"`
	Observers   int            `json:"observers"`
	Recent      int            `json:"recent"`
	Peers       []hub.PeerInfo `json:"peers"`
}
