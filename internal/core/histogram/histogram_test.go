package histogram

import (
	"reflect"
	"testing"

	"datamonitor/internal/core/records"
)

func ts(vals ...string) []records.Record {
	out := make([]records.Record, 0, len(vals))
	for _, v := range vals {
		out = append(out, records.Record{"timestamp": v})
	}
	return out
}

func TestBuild_SameDayISO(t *testing.T) {
	h := Build(ts("2024-01-05T10:00:00Z", "2024-01-05T15:30:00Z"))
	if !reflect.DeepEqual(h.Labels, []string{"05/01/2024"}) || !reflect.DeepEqual(h.Counts, []int{2}) {
		t.Fatalf("got %+v", h)
	}
}

func TestBuild_SkipsUnrecognized(t *testing.T) {
	h := Build(ts("ayer", "2024-01-05", "", "2024-13-40", "xTy"))
	if !reflect.DeepEqual(h.Labels, []string{"05/01/2024"}) || !reflect.DeepEqual(h.Counts, []int{1}) {
		t.Fatalf("got %+v", h)
	}
	if h.Skipped != 4 {
		t.Fatalf("skipped = %d, want 4", h.Skipped)
	}
}

func TestBuild_AllShapesSortedChronologically(t *testing.T) {
	recs := []records.Record{
		{"fecha": "28/07/2025, 03:47:51 p. m."},
		{"timestamp": "2025-07-01 08:00:00"},
		{"timestamp": "2024-12-31"},
		{"timestamp": "2025-07-28T20:00:00Z"},
		{"timestamp": "", "fecha": "2025-07-01"},
	}
	h := Build(recs)
	wantLabels := []string{"31/12/2024", "01/07/2025", "28/07/2025"}
	wantCounts := []int{1, 2, 2}
	if !reflect.DeepEqual(h.Labels, wantLabels) || !reflect.DeepEqual(h.Counts, wantCounts) {
		t.Fatalf("got %v %v, want %v %v", h.Labels, h.Counts, wantLabels, wantCounts)
	}
}

func TestBuild_UnsortableKeepsInsertionOrder(t *testing.T) {
	// a localized date part that is not day/month/year
	recs := []records.Record{
		{"timestamp": "2025-07-28"},
		{"timestamp": "julio/28, 10:00:00 a. m."},
		{"timestamp": "2025-07-01"},
	}
	h := Build(recs)
	want := []string{"28/07/2025", "julio/28", "01/07/2025"}
	if !reflect.DeepEqual(h.Labels, want) {
		t.Fatalf("labels = %v, want %v", h.Labels, want)
	}
}

func TestBuild_EmptyPlaceholder(t *testing.T) {
	for _, in := range [][]records.Record{nil, ts("nope")} {
		h := Build(in)
		if !reflect.DeepEqual(h.Labels, []string{NoData}) || !reflect.DeepEqual(h.Counts, []int{0}) {
			t.Fatalf("got %+v", h)
		}
		if !h.Empty() {
			t.Fatal("Empty() = false for placeholder")
		}
		if s := h.Stats(); s.PeakDay != NoPeakDay || s.DaysWithResponses != 0 || s.AveragePerDay != 0 {
			t.Fatalf("stats = %+v", s)
		}
	}
}

func TestStats(t *testing.T) {
	h := Histogram{Labels: []string{"01/07/2025", "02/07/2025", "03/07/2025"}, Counts: []int{1, 3, 3}}
	s := h.Stats()
	if s.DaysWithResponses != 3 {
		t.Fatalf("days = %d", s.DaysWithResponses)
	}
	if s.AveragePerDay < 2.33 || s.AveragePerDay > 2.34 {
		t.Fatalf("avg = %v", s.AveragePerDay)
	}
	if s.PeakDay != "02/07/2025 (3)" {
		t.Fatalf("peak = %q", s.PeakDay)
	}
	if h.Total() != 7 || len(h.Buckets()) != 3 || h.Buckets()[1].Count != 3 {
		t.Fatalf("total/buckets mismatch: %d %v", h.Total(), h.Buckets())
	}
}

func TestByMotivo(t *testing.T) {
	recs := []records.Record{
		{"motivo": "consulta"},
		{"motivo": "otro"},
		{},
		{"motivo": "consulta"},
		{"motivo": ""},
	}
	want := []Bucket{{"consulta", 2}, {"otro", 1}, {NoMotivo, 2}}
	if got := ByMotivo(recs); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := ByMotivo(nil); len(got) != 0 || got == nil {
		t.Fatalf("empty input should give an empty non-nil slice, got %#v", got)
	}
}
