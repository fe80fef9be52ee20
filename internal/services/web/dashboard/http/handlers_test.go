package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"datamonitor/internal/core/histogram"
	"datamonitor/internal/core/summary"
	phttp "datamonitor/internal/platform/net/http"
	kit "datamonitor/internal/platform/testkit"
	"datamonitor/internal/services/web/dashboard/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	view      domain.View
	lastLimit int
}

func (f *fakeSvc) Dashboard(_ context.Context, limit int) domain.View {
	f.lastLimit = limit
	return f.view
}

func liveView() domain.View {
	return domain.View{
		Title:  domain.Title,
		Source: domain.SourceLive,
		Summary: summary.Summary{
			Total: 1234, UniqueNames: 2, WantsMoreInfo: 1, UniqueMotivos: 2,
			LastTimestamp: "05/01/2024 15:30",
		},
		Histogram: histogram.Histogram{Labels: []string{"04/01/2024", "05/01/2024"}, Counts: []int{1, 2}},
		Stats:     histogram.Stats{DaysWithResponses: 2, AveragePerDay: 1.5, PeakDay: "05/01/2024 (2)"},
		ByMotivo:  []histogram.Bucket{{Label: "consulta", Count: 1}},
		Rows:      []domain.Row{{Fecha: "05/01/2024 15:30", Nombre: "<Ana>", Motivo: "consulta"}},
	}
}

func serve(t *testing.T, svc domain.ServicePort, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	RegisterPage(r, svc)
	r.Route("/dashboard", func(rr phttp.Router) { RegisterAPI(rr, svc) })
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestIndex_RendersFigures(t *testing.T) {
	rec := serve(t, &fakeSvc{view: liveView()}, stdhttp.MethodGet, "/")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	kit.MustContain(t, body, "<title>Landing Page Dashboard</title>")
	kit.MustContain(t, body, "1,234")
	kit.MustContain(t, body, "05/01/2024 15:30")
	kit.MustContain(t, body, "Promedio por día: 1.5")
	kit.MustContain(t, body, "width:50%")
	kit.MustContain(t, body, "&lt;Ana&gt;")
}

func TestIndex_DegradedBanner(t *testing.T) {
	v := domain.View{
		Title:     domain.Title,
		Source:    domain.SourceUnavailable,
		Summary:   summary.Summary{LastTimestamp: summary.NotAvailable},
		Histogram: histogram.Histogram{Labels: []string{histogram.NoData}, Counts: []int{0}},
		Stats:     histogram.Stats{PeakDay: histogram.NoPeakDay},
		Rows:      []domain.Row{},
	}
	rec := serve(t, &fakeSvc{view: v}, stdhttp.MethodGet, "/")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	kit.MustContain(t, body, `class="banner"`)
	kit.MustContain(t, body, histogram.NoData)
	kit.MustContain(t, body, "Sin registros")
}

func TestIndex_Head(t *testing.T) {
	rec := serve(t, &fakeSvc{view: liveView()}, stdhttp.MethodHead, "/")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSummary_Envelope(t *testing.T) {
	svc := &fakeSvc{view: liveView()}
	rec := serve(t, svc, stdhttp.MethodGet, "/dashboard/summary?limit=5")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	env := kit.DecodeJSON[struct {
		StatusCode int         `json:"status_code"`
		Data       domain.View `json:"data"`
	}](t, rec)
	if env.StatusCode != 200 || env.Data.Summary.Total != 1234 || env.Data.Source != domain.SourceLive {
		t.Fatalf("envelope = %+v", env)
	}
	if svc.lastLimit != 5 {
		t.Fatalf("limit = %d", svc.lastLimit)
	}
}

func TestSummary_BadLimit(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want int
	}{
		{"not a number", "abc", stdhttp.StatusUnprocessableEntity},
		{"negative", "-1", stdhttp.StatusBadRequest},
		{"too large", "1001", stdhttp.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, &fakeSvc{view: liveView()}, stdhttp.MethodGet, "/dashboard/summary?limit="+tc.q)
			if rec.Code != tc.want {
				t.Fatalf("status = %d want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestPct(t *testing.T) {
	if pct(1, 0) != 0 || pct(1, 2) != 50 || pct(3, 3) != 100 {
		t.Fatal("pct")
	}
	if maxCount(nil) != 0 || maxCount([]int{1, 4, 2}) != 4 {
		t.Fatal("maxCount")
	}
}
