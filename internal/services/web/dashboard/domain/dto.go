// Package domain holds the dashboard view model and service contract
package domain

import (
	"datamonitor/internal/core/histogram"
	"datamonitor/internal/core/summary"
)

// Title is the page heading
const Title = "Landing Page Dashboard"

// Source reports whether the upstream answered
const (
	SourceLive        = "live"
	SourceUnavailable = "unavailable"
)

// Row is one line of the records table
type Row struct {
	Fecha   string `json:"fecha"   example:"05/01/2024 15:30"`
	Mensaje string `json:"mensaje" example:"Hola, quisiera saber precios"`
	Motivo  string `json:"motivo"  example:"cotización"`
	Nombre  string `json:"nombre"  example:"Ana"`
}

// View is everything the page and the summary endpoint render
type View struct {
	Title     string              `json:"title"`
	Source    string              `json:"source"`
	FetchedAt string              `json:"fetched_at"`
	Summary   summary.Summary     `json:"summary"`
	Histogram histogram.Histogram `json:"histogram"`
	Stats     histogram.Stats     `json:"stats"`
	ByMotivo  []histogram.Bucket  `json:"by_motivo"`

	Rows          []Row `json:"rows"`
	RowsTruncated bool  `json:"rows_truncated"`
}

// Degraded reports whether the figures come from an empty fallback
func (v View) Degraded() bool { return v.Source != SourceLive }
