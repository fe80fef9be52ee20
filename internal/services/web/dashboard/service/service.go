// Package service runs the fetch, normalize and aggregate flow for one page view
package service

import (
	"context"
	"time"

	"datamonitor/internal/core/histogram"
	"datamonitor/internal/core/records"
	"datamonitor/internal/core/summary"
	"datamonitor/internal/core/timefmt"
	"datamonitor/internal/platform/logger"
	"datamonitor/internal/services/web/dashboard/domain"
)

// DefaultTableLimit caps the records table when nothing else is configured
const DefaultTableLimit = 200

// Source yields the records for one page view, ok is false when the
// upstream could not be read
type Source interface {
	FetchRecords(ctx context.Context) (recs []records.Record, ok bool)
}

// RecordsObserver receives the record count of each view
type RecordsObserver interface {
	ObserveRecords(n int)
}

// Service defines the dashboard service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the dashboard service
type Svc struct {
	src   Source
	obs   RecordsObserver
	limit int
	now   func() time.Time
}

// Option configures a Svc
type Option func(*Svc)

// WithTableLimit sets the default records table size
func WithTableLimit(n int) Option {
	return func(s *Svc) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithObserver reports record counts, typically to metrics
func WithObserver(o RecordsObserver) Option { return func(s *Svc) { s.obs = o } }

// WithClock overrides the clock used for FetchedAt
func WithClock(now func() time.Time) Option { return func(s *Svc) { s.now = now } }

// New constructs a dashboard service
func New(src Source, opts ...Option) *Svc {
	if src == nil {
		panic("dashboard.Service requires a non nil Source")
	}
	s := &Svc{src: src, limit: DefaultTableLimit, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Dashboard implements domain.ServicePort
func (s *Svc) Dashboard(ctx context.Context, limit int) domain.View {
	recs, ok := s.src.FetchRecords(ctx)
	source := domain.SourceLive
	if !ok {
		source = domain.SourceUnavailable
	}
	if s.obs != nil {
		s.obs.ObserveRecords(len(recs))
	}

	h := histogram.Build(recs)
	v := domain.View{
		Title:     domain.Title,
		Source:    source,
		FetchedAt: s.now().Format(timefmt.DisplayLayout),
		Summary:   summary.Compute(recs),
		Histogram: h,
		Stats:     h.Stats(),
		ByMotivo:  histogram.ByMotivo(recs),
	}
	v.Rows, v.RowsTruncated = rows(recs, s.tableLimit(limit))

	logger.C(ctx).Debug().
		Str("source", source).
		Int("records", v.Summary.Total).
		Int("days", len(h.Labels)).
		Int("skipped", h.Skipped).
		Msg("dashboard computed")
	return v
}

func (s *Svc) tableLimit(limit int) int {
	if limit > 0 {
		return limit
	}
	return s.limit
}

// rows projects the first limit records into table rows in payload order
func rows(recs []records.Record, limit int) ([]domain.Row, bool) {
	n := len(recs)
	if n > limit {
		n = limit
	}
	out := make([]domain.Row, 0, n)
	for _, r := range recs[:n] {
		out = append(out, domain.Row{
			Fecha:   r.TableDate(),
			Mensaje: r.Str(records.FieldMensaje),
			Motivo:  r.Str(records.FieldMotivo),
			Nombre:  r.Str(records.FieldNombre),
		})
	}
	return out, len(recs) > limit
}
