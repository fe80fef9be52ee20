package middleware

import (
	"net/http"

	pnet "datamonitor/internal/platform/net"
)

// AuthPort resolves the caller identity for a request
type AuthPort interface {
	// Parse returns an identity or an error when the request is not allowed
	Parse(r *http.Request) (userID string, err error)
}

// Auth gates next behind the port. A nil port lets every request through
func Auth(p AuthPort, write func(w http.ResponseWriter, r *http.Request, err error)) Func {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, err := p.Parse(r)
			if err != nil {
				write(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithUser(r.Context(), uid)))
		})
	}
}
