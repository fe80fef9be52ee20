package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"datamonitor/internal/platform/config"
	kit "datamonitor/internal/platform/testkit"
)

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "datamonitor-web ") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestNewClients(t *testing.T) {
	t.Setenv("WEB_API_URL", "http://forms.test/api")
	t.Setenv("WEB_PROXY_URL", "not a url")

	recs, proxy, err := newClients(config.New().Prefix(envPrefix), nil)
	if err != nil {
		t.Fatal(err)
	}
	if recs.URL() != "http://forms.test/api" || recs.Name() != "records" {
		t.Fatalf("records = %s %s", recs.Name(), recs.URL())
	}
	if proxy.URL() != defaultProxyURL {
		t.Fatalf("invalid proxy url should fall back, got %s", proxy.URL())
	}
}

func TestNewClients_APIURLRequired(t *testing.T) {
	t.Setenv("WEB_API_URL", "")
	kit.MustPanic(t, func() { _, _, _ = newClients(config.New().Prefix(envPrefix), nil) })
}

func TestAuthPort(t *testing.T) {
	t.Setenv("WEB_AUTH_TOKEN", "")
	t.Setenv("WEB_AUTH_JWT_SECRET", "")
	if p := authPort(config.New().Prefix(envPrefix)); p != nil {
		t.Fatalf("no secrets should leave the dashboard open, got %T", p)
	}

	t.Setenv("WEB_AUTH_TOKEN", "s3cret")
	p := authPort(config.New().Prefix(envPrefix))
	if p == nil {
		t.Fatal("expected an auth port")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	if uid, err := p.Parse(req); err != nil || uid != "dashboard" {
		t.Fatalf("uid = %q err %v", uid, err)
	}
	if _, err := p.Parse(httptest.NewRequest(http.MethodGet, "/", nil)); err == nil {
		t.Fatal("missing token accepted")
	}
}
