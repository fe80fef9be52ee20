// Package http serves the meta endpoints: liveness, build info and what
// this instance talks to
package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"datamonitor/internal/core/version"
	"datamonitor/internal/modkit/httpkit"

	"github.com/dustin/go-humanize"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// Upstreams maps a client role to the URL it fetches. Only scheme and
	// host are served, paths and query strings may carry API keys
	Upstreams map[string]string
	Now       func() time.Time
}

// Register mounts /health, /version and /service on r
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	httpkit.Get(r, "/health", func(*http.Request) (any, error) { return d.health(), nil })
	httpkit.Get(r, "/version", func(*http.Request) (any, error) { return version.Info(), nil })
	httpkit.Get(r, "/service", func(*http.Request) (any, error) { return d.service(), nil })
}

// HealthResponse answers /health. The process is healthy while it serves;
// upstream reachability is reported by the dashboard itself
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ServiceResponse answers /service
type ServiceResponse struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	// Uptime is in whole seconds, UptimeText the same for people
	Uptime     int64             `json:"uptime"`
	UptimeText string            `json:"uptime_text"`
	Upstreams  map[string]string `json:"upstreams"`
}

func (d Deps) health() HealthResponse {
	return HealthResponse{
		OK:      true,
		Service: d.ServiceName,
		Started: d.StartedAt.UTC().Format(time.RFC3339),
		Now:     d.Now().UTC().Format(time.RFC3339),
	}
}

func (d Deps) service() ServiceResponse {
	now := d.Now()
	return ServiceResponse{
		Name:       d.ServiceName,
		Started:    d.StartedAt.UTC().Format(time.RFC3339),
		Uptime:     int64(now.Sub(d.StartedAt) / time.Second),
		UptimeText: strings.TrimSpace(humanize.RelTime(d.StartedAt, now, "", "")),
		Upstreams:  origins(d.Upstreams),
	}
}

func origins(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for role, raw := range in {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			out[role] = ""
			continue
		}
		out[role] = (&url.URL{Scheme: u.Scheme, Host: u.Host}).String()
	}
	return out
}
