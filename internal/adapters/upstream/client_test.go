package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"datamonitor/internal/core/records"
	perr "datamonitor/internal/platform/errors"
	"datamonitor/internal/platform/metrics"
	pnet "datamonitor/internal/platform/net"
	kit "datamonitor/internal/platform/testkit"
)

type fakeObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (f *fakeObserver) ObserveFetch(_ string, outcome string, _ time.Duration) {
	f.mu.Lock()
	f.outcomes = append(f.outcomes, outcome)
	f.mu.Unlock()
}

func newClient(t *testing.T, url string, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(Options{Name: "records", URL: url}, opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClient_ValidatesAndDefaults(t *testing.T) {
	if _, err := NewClient(Options{Name: "records", URL: "not a url"}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	if _, err := NewClient(Options{URL: "http://x.test"}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error for missing name, got %v", err)
	}
	c := newClient(t, "http://x.test/api")
	if c.http.Timeout != defaultTimeout || c.opts.MaxBytes != defaultMaxBytes || c.opts.UserAgent != defaultUA {
		t.Fatalf("defaults not applied: %+v timeout %v", c.opts, c.http.Timeout)
	}
	if c.URL() != "http://x.test/api" || c.Name() != "records" {
		t.Fatalf("accessors: %q %q", c.URL(), c.Name())
	}
}

func TestFetchRecords_NormalizesPayload(t *testing.T) {
	up := kit.NewUpstream(t, http.StatusOK, `{"data":[{"nombre":"Ana"},{"nombre":"Luis"}]}`)
	obs := &fakeObserver{}
	c := newClient(t, up.URL, WithObserver(obs))

	recs, ok := c.FetchRecords(context.Background())
	if !ok || len(recs) != 2 || recs[1].Str("nombre") != "Luis" {
		t.Fatalf("got %v ok=%v", recs, ok)
	}
	if up.Hits() != 1 {
		t.Fatalf("expected exactly one request, got %d", up.Hits())
	}
	if len(obs.outcomes) != 1 || obs.outcomes[0] != metrics.OutcomeOK {
		t.Fatalf("outcomes = %v", obs.outcomes)
	}
}

func TestFetchRecords_ConnectionFailureIsEmpty(t *testing.T) {
	obs := &fakeObserver{}
	c := newClient(t, kit.DeadURL(t), WithObserver(obs))

	recs, ok := c.FetchRecords(context.Background())
	if ok {
		t.Fatal("expected ok=false on connection failure")
	}
	if recs == nil || len(recs) != 0 {
		t.Fatalf("expected empty non-nil records, got %#v", recs)
	}
	if obs.outcomes[0] != metrics.OutcomeTransport {
		t.Fatalf("outcome = %v", obs.outcomes)
	}
}

func TestFetchRecords_FailOpen(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		outcome string
	}{
		{"server error", http.StatusInternalServerError, `{"detail":"boom"}`, metrics.OutcomeStatus},
		{"not found", http.StatusNotFound, `<html>nope</html>`, metrics.OutcomeStatus},
		{"html body", http.StatusOK, `<html>login</html>`, metrics.OutcomeDecode},
		{"truncated json", http.StatusOK, `[{"nombre":`, metrics.OutcomeDecode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			up := kit.NewUpstream(t, tc.status, tc.body)
			obs := &fakeObserver{}
			recs, ok := newClient(t, up.URL, WithObserver(obs)).FetchRecords(context.Background())
			if ok || len(recs) != 0 {
				t.Fatalf("got %v ok=%v", recs, ok)
			}
			if obs.outcomes[0] != tc.outcome {
				t.Fatalf("outcome = %v, want %s", obs.outcomes, tc.outcome)
			}
		})
	}
}

func TestFetchJSON_StatusErrorCarriesDetails(t *testing.T) {
	up := kit.NewUpstream(t, http.StatusBadGateway, `upstream exploded`)
	_, err := newClient(t, up.URL).FetchJSON(context.Background())

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("want *StatusError, got %T %v", err, err)
	}
	if se.HTTPStatus() != http.StatusBadGateway || !strings.Contains(se.Body, "exploded") {
		t.Fatalf("status error = %+v", se)
	}
	if !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
}

func TestFetchJSON_KeepsObjectOrder(t *testing.T) {
	up := kit.NewUpstream(t, http.StatusOK, `{"b":{"nombre":"1"},"a":{"nombre":"2"}}`)
	v, err := newClient(t, up.URL).FetchJSON(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	recs := records.Normalize(v)
	if recs[0].Str("nombre") != "1" || recs[1].Str("nombre") != "2" {
		t.Fatalf("order lost: %v", recs)
	}
}

func TestFetchRaw_Verbatim(t *testing.T) {
	body := `{"z": 1,  "a": [1.50, "x"]}`
	up := kit.NewUpstream(t, http.StatusOK, body)
	raw, err := newClient(t, up.URL).FetchRaw(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != body {
		t.Fatalf("raw = %s, want %s", raw, body)
	}

	bad := kit.NewUpstream(t, http.StatusOK, `not json`)
	if _, err := newClient(t, bad.URL).FetchRaw(context.Background()); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want JSON error, got %v", err)
	}
}

func TestFetch_MaxBytes(t *testing.T) {
	up := kit.NewUpstream(t, http.StatusOK, `["`+strings.Repeat("x", 64)+`"]`)
	obs := &fakeObserver{}
	c, err := NewClient(Options{Name: "records", URL: up.URL, MaxBytes: 16}, WithObserver(obs))
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.FetchRaw(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeUpstream) || !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("want upstream too large error, got %v", err)
	}
	kit.MustContain(t, err.Error(), "exceeds 16 B")
	if len(obs.outcomes) != 1 || obs.outcomes[0] != metrics.OutcomeTooLarge {
		t.Fatalf("outcomes = %v", obs.outcomes)
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Options{Name: "records", URL: srv.URL, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.FetchJSON(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestFetch_Headers(t *testing.T) {
	up := kit.NewUpstream(t, http.StatusOK, `[]`)
	c := newClient(t, up.URL)
	c.newID = func() string { return "minted-id" }

	_, _ = c.FetchRaw(context.Background())
	if got := up.Last().Header.Get("X-Request-ID"); got != "minted-id" {
		t.Fatalf("minted id = %q", got)
	}
	if got := up.Last().Header.Get("User-Agent"); got != defaultUA {
		t.Fatalf("user agent = %q", got)
	}

	ctx := pnet.WithRequest(context.Background(), "inbound-7")
	_, _ = c.FetchRaw(ctx)
	if got := up.Last().Header.Get("X-Request-ID"); got != "inbound-7" {
		t.Fatalf("propagated id = %q", got)
	}
}

func TestOutcome(t *testing.T) {
	cases := map[string]error{
		metrics.OutcomeOK:        nil,
		metrics.OutcomeTransport: errors.New("dial"),
		metrics.OutcomeStatus:    perr.Upstreamf("503"),
		metrics.OutcomeDecode:    perr.JSONErrf("bad"),
	}
	for want, err := range cases {
		if got := Outcome(err); got != want {
			t.Fatalf("Outcome(%v) = %q, want %q", err, got, want)
		}
	}
	if got := Outcome(perr.Unavailablef("down")); got != metrics.OutcomeTransport {
		t.Fatalf("unavailable -> %q", got)
	}
}
