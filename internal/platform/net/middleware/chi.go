// Package middleware holds the HTTP middleware of the web service. chi and
// go-chi/cors do the work; callers never see their types
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	pstrings "datamonitor/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Func is a net/http middleware
type Func = func(http.Handler) http.Handler

// DefaultTimeout bounds a request when Defaults is given zero
const DefaultTimeout = 60 * time.Second

// compressible lists what the dashboard serves in volume
var compressible = []string{"text/html", "application/json", "text/css", "application/javascript"}

// Thin renames of chi middleware

func RequestID() Func { return chimw.RequestID }
func RealIP() Func { return chimw.RealIP }
func NoCache() Func { return chimw.NoCache }
func StripSlashes() Func { return chimw.StripSlashes }
func Timeout(d time.Duration) Func { return chimw.Timeout(d) }

// Heartbeat answers GET path with 200 before routing, for load balancer checks
func Heartbeat(path string) Func { return chimw.Heartbeat(path) }

// Compress gzips/deflates the compressible types at level
func Compress(level int) Func {
	return chimw.NewCompressor(level, compressible...).Handler
}

// CORSOptions is the subset of go-chi/cors the API exposes
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS defaults to read only methods and lets browsers send a bearer token
// and read back X-Request-ID
func CORS(o CORSOptions) Func {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodHead, http.MethodOptions}),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Authorization", "X-Request-ID"}),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-ID"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}

// Defaults is the outer stack every route shares. timeout should exceed the
// upstream fetch timeout so a slow remote API fails open instead of being cut.
// observe runs after the request id is set and outside RecoverJSON, so access
// logs and metrics see the 500 a recovered panic turns into
func Defaults(timeout time.Duration, observe ...Func) []Func {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	stack := []Func{
		RealIP(),
		RequestID(),
		RequestLogger,
	}
	stack = append(stack, observe...)
	return append(stack,
		RecoverJSON,
		Timeout(timeout),
		Compress(flate.DefaultCompression),
		NoCache(),
	)
}
