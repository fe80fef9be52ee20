package middleware

import (
	"net/http"
	"time"

	"datamonitor/internal/platform/logger"
	pnet "datamonitor/internal/platform/net"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// AccessLogOptions configures AccessLogZerolog
type AccessLogOptions struct {
	// Slow logs requests at warn once they take this long, 0 never does
	Slow time.Duration
	// Skip lists exact paths left out of the log, e.g. /metrics
	Skip []string
	// Log overrides the request scoped logger
	Log *logger.Logger
}

// RequestLogger copies the chi request id into the logger context so
// logger.C tags every line written while serving the request
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := pnet.RequestID(r.Context())
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequest(r.Context(), id)))
	})
}

// AccessLogZerolog writes one line per request once it is served. 5xx are
// errors, slow requests warnings, everything else info. Mount it outside
// RecoverJSON so panics are logged with their 500
func AccessLogZerolog(opt AccessLogOptions) Func {
	skip := make(map[string]bool, len(opt.Skip))
	for _, p := range opt.Skip {
		skip[p] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			// the auth gate sits further in; the slot carries its identity back out
			r = r.WithContext(pnet.WithUserSlot(r.Context()))
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			log := logger.C(r.Context())
			if opt.Log != nil {
				log = opt.Log
				if id := pnet.RequestID(r.Context()); id != "" {
					l := opt.Log.With().Str("request_id", id).Logger()
					log = &l
				}
			}
			var evt *zerolog.Event
			switch {
			case status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn()
			default:
				evt = log.Info()
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				evt = evt.Str("route", rc.RoutePattern())
			}
			if uid := pnet.UserID(r.Context()); uid != "" {
				evt = evt.Str("user", uid)
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Msg("request done")
		})
	}
}
