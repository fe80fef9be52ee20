// Package histogram buckets records per calendar day and per motivo
package histogram

import (
	"fmt"
	"sort"
	"time"

	"datamonitor/internal/core/records"
	"datamonitor/internal/core/timefmt"
)

// Placeholder labels
const (
	NoData    = "Sin datos"
	NoMotivo  = "Sin motivo"
	NoPeakDay = "N/A"
)

// Histogram is a day histogram as two parallel slices
type Histogram struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
	// Skipped counts records whose timestamp matched no known shape
	Skipped int `json:"skipped"`
}

// Bucket is one labelled count
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Stats are the figures shown under the line chart
type Stats struct {
	DaysWithResponses int     `json:"days_with_responses"`
	AveragePerDay     float64 `json:"average_per_day"`
	PeakDay           string  `json:"peak_day"`
}

// Build counts records per day/month/year key. Keys are ordered by date;
// if any key is not a valid date the first-seen order is kept instead.
// With no buckets the result is the single placeholder NoData with count 0
func Build(recs []records.Record) Histogram {
	counts := map[string]int{}
	var order []string
	skipped := 0

	for _, r := range recs {
		key, ok := timefmt.DayKey(r.Timestamp())
		if !ok {
			skipped++
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	if len(order) == 0 {
		return Histogram{Labels: []string{NoData}, Counts: []int{0}, Skipped: skipped}
	}

	labels := sortChrono(order)
	h := Histogram{
		Labels:  labels,
		Counts:  make([]int, len(labels)),
		Skipped: skipped,
	}
	for i, l := range labels {
		h.Counts[i] = counts[l]
	}
	return h
}

// sortChrono returns keys in date order, or a copy of keys as given when any
// key fails to parse
func sortChrono(keys []string) []string {
	out := append([]string(nil), keys...)
	at := make(map[string]time.Time, len(keys))
	for _, k := range keys {
		t, err := timefmt.ParseDayKey(k)
		if err != nil {
			return out
		}
		at[k] = t
	}
	// stable keeps "5/1/2024" and "05/01/2024" in first-seen order
	sort.SliceStable(out, func(i, j int) bool { return at[out[i]].Before(at[out[j]]) })
	return out
}

// Empty reports the placeholder histogram
func (h Histogram) Empty() bool {
	return len(h.Labels) == 1 && h.Labels[0] == NoData && h.Counts[0] == 0
}

// Total is the number of bucketed records
func (h Histogram) Total() int {
	n := 0
	for _, c := range h.Counts {
		n += c
	}
	return n
}

// Buckets zips labels and counts
func (h Histogram) Buckets() []Bucket {
	out := make([]Bucket, len(h.Labels))
	for i := range h.Labels {
		out[i] = Bucket{Label: h.Labels[i], Count: h.Counts[i]}
	}
	return out
}

// Stats derives the chart footer figures. The peak is the first day
// holding the maximum count
func (h Histogram) Stats() Stats {
	if h.Empty() {
		return Stats{PeakDay: NoPeakDay}
	}
	s := Stats{DaysWithResponses: len(h.Labels)}
	peak := 0
	for i, c := range h.Counts {
		if c > h.Counts[peak] {
			peak = i
		}
	}
	s.AveragePerDay = float64(h.Total()) / float64(s.DaysWithResponses)
	s.PeakDay = fmt.Sprintf("%s (%d)", h.Labels[peak], h.Counts[peak])
	return s
}

// ByMotivo counts records per motivo in first-seen order. Records without
// a motivo are counted under NoMotivo
func ByMotivo(recs []records.Record) []Bucket {
	idx := map[string]int{}
	out := []Bucket{}
	for _, r := range recs {
		m := r.Str(records.FieldMotivo)
		if m == "" {
			m = NoMotivo
		}
		i, ok := idx[m]
		if !ok {
			i = len(out)
			idx[m] = i
			out = append(out, Bucket{Label: m})
		}
		out[i].Count++
	}
	return out
}
