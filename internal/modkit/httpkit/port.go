package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perrs "datamonitor/internal/platform/errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenFunc validates a bearer token and returns the caller identity
type TokenFunc func(token string) (userID string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse extracts the identity from an Authorization Bearer token, or from
// the access_token query parameter so a browser can open the dashboard link.
// Missing, malformed or rejected tokens are unauthorized
func (p *Port) Parse(r *http.Request) (string, error) {
	raw := bearer(r.Header.Get("Authorization"))
	if raw == "" {
		raw = strings.TrimSpace(r.URL.Query().Get("access_token"))
	}
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	uid, err := p.parse(raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return uid, nil
}

// bearer returns the token after a case-insensitive Bearer scheme, or ""
func bearer(header string) string {
	s := strings.TrimSpace(header)
	const prefix = "bearer"
	if len(s) <= len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(s[len(prefix):])
}

// StaticToken accepts exactly token, compared in constant time
func StaticToken(token, userID string) TokenFunc {
	want := []byte(token)
	return func(got string) (string, error) {
		if token == "" || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			return "", perrs.Unauthorizedf("token mismatch")
		}
		return userID, nil
	}
}

// HMACJWT accepts HS256 tokens signed with secret and returns their subject
func HMACJWT(secret []byte) TokenFunc {
	return func(raw string) (string, error) {
		tok, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !tok.Valid {
			return "", perrs.Wrapf(err, perrs.ErrorCodeUnauthorized, "invalid jwt")
		}
		sub, err := tok.Claims.GetSubject()
		if err != nil || sub == "" {
			return "", perrs.Unauthorizedf("jwt without subject")
		}
		return sub, nil
	}
}

// AnyOf tries each TokenFunc in order and returns the first success
func AnyOf(fns ...TokenFunc) TokenFunc {
	return func(raw string) (string, error) {
		err := perrs.Unauthorizedf("no token validator configured")
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			var uid string
			if uid, err = fn(raw); err == nil {
				return uid, nil
			}
		}
		return "", err
	}
}
