package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "datamonitor/internal/platform/testkit"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warn", "warn"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"", "info"},
		{"  loud  ", "info"},
	}
	for _, c := range cases {
		if got := parseLevel(c.in).String(); got != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestInit_Named_C(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "datamonitor-test",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})

	Get().Info().Msg("root-msg")
	Named("upstream").Info().Msg("named-msg")
	C(WithRequest(context.Background(), "req-123")).Info().Msg("ctx-msg")
	C(context.Background()).Debug().Msg("ctx-empty")

	out := buf.String()
	kit.MustContain(t, out, `"message":"root-msg"`)
	kit.MustContain(t, out, `"component":"upstream"`)
	kit.MustContain(t, out, `"request_id":"req-123"`)
	kit.MustContain(t, out, `"service":"datamonitor-test"`)
	kit.MustContain(t, out, `"build":"test"`)
	kit.MustContain(t, out, "ctx-empty")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_CALLER", "true")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "svc-b" || !opt.WithCaller {
		t.Fatalf("FromEnv mismatch: %+v", opt)
	}
}

func TestWithRequest_Empty(t *testing.T) {
	ctx := WithRequest(context.Background(), "")
	if RequestID(ctx) != "" {
		t.Fatalf("empty id should not be stored")
	}
	if !strings.EqualFold(RequestID(WithRequest(ctx, "abc")), "abc") {
		t.Fatalf("request id not stored")
	}
}
