// Package httpkit is the handler and routing toolkit modules build on.
// Modules import it instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "datamonitor/internal/platform/net/http"
)

type (
	Router     = phttp.Router
	Handler    = phttp.Handler
	Middleware = phttp.Middleware
	Response   = phttp.Response
)

// APIV1 is the prefix of the versioned JSON API
const APIV1 = "/api/v1"

// MountAPIV1 opens a subrouter at APIV1, applies mw to it and lets mount
// register routes there
//
//	httpkit.MountAPIV1(r, httpkit.CommonStack(nil), func(api httpkit.Router) {
//		dash.MountRoutes(api)
//	})
func MountAPIV1(r Router, mw []Middleware, mount func(Router)) {
	r.Route(APIV1, func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}

// Call adapts fn to the envelope writer. A returned Response is written as
// is, any other value becomes the data of a 200
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Get registers fn as an enveloped GET route
func Get(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, Call(fn))
}

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error returns a response that maps err to status and envelope
func Error(err error) Response { return phttp.Error(err) }
