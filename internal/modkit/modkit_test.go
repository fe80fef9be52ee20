package modkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"datamonitor/internal/platform/logger"
	phttp "datamonitor/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestBuild_Defaults(t *testing.T) {
	b := Build()
	if b.Name != "" || b.Prefix != "" || b.PortSet != nil || len(b.Mw) != 0 {
		t.Fatalf("unexpected defaults %+v", b)
	}
}

func TestBuild_OptionsCopyMiddlewares(t *testing.T) {
	mw := func(next http.Handler) http.Handler { return next }
	src := []phttp.Middleware{mw}
	type ports struct{ N int }

	b := Build(WithName("dashboard"), WithPrefix("/dashboard"), WithMiddlewares(src...), WithPorts(ports{N: 2}))
	src[0] = nil

	if b.Name != "dashboard" || b.Prefix != "/dashboard" {
		t.Fatalf("name/prefix = %q %q", b.Name, b.Prefix)
	}
	if len(b.Mw) != 1 || b.Mw[0] == nil {
		t.Fatal("middlewares should be copied")
	}
	if p, ok := b.PortSet.(ports); !ok || p.N != 2 {
		t.Fatalf("ports = %#v", b.PortSet)
	}
}

func mountAndServe(t *testing.T, m Module, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestBase_MountsUnderPrefixWithMiddleware(t *testing.T) {
	var order []string
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "mw")
			next.ServeHTTP(w, r)
		})
	}
	b := Build(WithName("meta"), WithPrefix("meta/"), WithMiddlewares(mw))
	m := NewBase(b, func(r phttp.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			order = append(order, "handler")
			_, _ = w.Write([]byte("ok"))
		})
		r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
	})

	if rr := mountAndServe(t, m, "/meta/health"); rr.Body.String() != "ok" {
		t.Fatalf("body = %q", rr.Body.String())
	}
	if strings.Join(order, ",") != "mw,handler" {
		t.Fatalf("order = %v", order)
	}
	if rr := mountAndServe(t, m, "/meta/extra"); rr.Code != http.StatusAccepted {
		t.Fatalf("extra status = %d", rr.Code)
	}
	if m.Name() != "meta" || m.Ports() != nil {
		t.Fatalf("name/ports = %q %v", m.Name(), m.Ports())
	}
}

func TestBase_EmptyPrefixMountsAtRoot(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusForbidden) })
	}
	m := NewBase(Build(WithName("page"), WithMiddlewares(deny)), func(r phttp.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("root")) })
	})

	mux := chi.NewRouter()
	root := phttp.AdaptChi(mux)
	m.MountRoutes(root)
	root.Get("/open", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("open")) })

	for path, want := range map[string]int{"/": http.StatusForbidden, "/open": http.StatusOK} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != want {
			t.Fatalf("GET %s = %d, want %d", path, rr.Code, want)
		}
	}
}

func TestDeps_LoggerFallsBackToRoot(t *testing.T) {
	var d Deps
	if d.Logger() != logger.Get() {
		t.Fatal("zero Deps should use the root logger")
	}
	l := logger.Named("x")
	if (Deps{Log: l}).Logger() != l {
		t.Fatal("explicit logger ignored")
	}
}
