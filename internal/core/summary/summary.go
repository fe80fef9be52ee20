// Package summary computes the headline dashboard figures over a record set
package summary

import (
	"strings"
	"sync"

	"datamonitor/internal/core/records"
	"datamonitor/internal/core/timefmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NotAvailable is the last timestamp when no record carries one
const NotAvailable = "N/A"

// Summary holds the headline figures
type Summary struct {
	Total         int `json:"total"`
	UniqueNames   int `json:"unique_names"`
	WantsMoreInfo int `json:"wants_more_info"`
	UniqueMotivos int `json:"unique_motivos"`
	// LastTimestamp is the display form, LastTimestampRaw what the record held
	LastTimestamp    string `json:"last_timestamp"`
	LastTimestampRaw string `json:"last_timestamp_raw,omitempty"`
}

// moreInfoMotivos are the lower-cased motivos asking for follow up
var moreInfoMotivos = map[string]struct{}{
	"consulta":   {},
	"cotización": {},
	"cotizacion": {},
}

// lowerPool holds NFC + Spanish lower-casing chains; cases.Caser is stateful
var lowerPool = sync.Pool{
	New: func() any { return transform.Chain(norm.NFC, cases.Lower(language.Spanish)) },
}

// FoldMotivo lower-cases a motivo in composed form so "COTIZACIÓN" and a
// decomposed "cotización" both compare equal to "cotización"
func FoldMotivo(s string) string {
	if s == "" {
		return ""
	}
	tr := lowerPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	lowerPool.Put(tr)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// WantsMoreInfo reports whether a motivo asks for a follow up
func WantsMoreInfo(motivo string) bool {
	_, ok := moreInfoMotivos[FoldMotivo(motivo)]
	return ok
}

// Compute walks recs once. Distinct counts are exact and case-sensitive
// over non-empty values
func Compute(recs []records.Record) Summary {
	names := map[string]struct{}{}
	motivos := map[string]struct{}{}
	stamps := make([]string, 0, len(recs))

	s := Summary{Total: len(recs)}
	for _, r := range recs {
		if n := r.Str(records.FieldNombre); n != "" {
			names[n] = struct{}{}
		}
		m := r.Str(records.FieldMotivo)
		if m != "" {
			motivos[m] = struct{}{}
		}
		if WantsMoreInfo(m) {
			s.WantsMoreInfo++
		}
		if ts := r.Timestamp(); ts != "" {
			stamps = append(stamps, ts)
		}
	}
	s.UniqueNames = len(names)
	s.UniqueMotivos = len(motivos)

	raw, ok := Latest(stamps)
	if !ok {
		s.LastTimestamp = NotAvailable
		return s
	}
	s.LastTimestampRaw = raw
	s.LastTimestamp = timefmt.Display(raw)
	return s
}

// Latest picks the most recent timestamp. When every candidate resolves to
// an instant the chronological maximum wins, ties going to the larger
// string. Otherwise mixed or unknown spellings cannot be compared and the
// plain string maximum is used
func Latest(stamps []string) (string, bool) {
	if len(stamps) == 0 {
		return "", false
	}

	best := stamps[0]
	bestT, chrono := timefmt.Chrono(best)
	for _, s := range stamps[1:] {
		if !chrono {
			break
		}
		t, ok := timefmt.Chrono(s)
		if !ok {
			chrono = false
			break
		}
		if t.After(bestT) || (t.Equal(bestT) && s > best) {
			best, bestT = s, t
		}
	}
	if chrono {
		return best, true
	}

	best = stamps[0]
	for _, s := range stamps[1:] {
		if s > best {
			best = s
		}
	}
	return best, true
}
