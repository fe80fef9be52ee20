package httpkit

import (
	phttp "datamonitor/internal/platform/net/http"
	"datamonitor/internal/platform/net/middleware"
)

// CommonStack is the per API middleware. Request id, recovery, timeouts and
// compression sit on the root stack, see middleware.Defaults
func CommonStack(origins []string) []Middleware {
	stack := []Middleware{middleware.StripSlashes()}
	if len(origins) > 0 {
		stack = append(stack, middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: origins,
			MaxAge:         300,
		}))
	}
	return stack
}

// Auth wires the auth middleware to the platform envelope writer
func Auth(p middleware.AuthPort) Middleware {
	return middleware.Auth(p, phttp.RespondError)
}

// Gate is the middleware slice for routes behind p, empty when p is nil
func Gate(p middleware.AuthPort) []Middleware {
	if p == nil {
		return nil
	}
	return []Middleware{Auth(p)}
}

// Protected groups routes behind p. A nil port mounts them open
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	gate := Gate(p)
	if len(gate) == 0 {
		fn(r)
		return
	}
	r.Group(func(gr Router) {
		gr.Use(gate...)
		fn(gr)
	})
}
