package modkit

import (
	phttp "datamonitor/internal/platform/net/http"
	pstrings "datamonitor/internal/platform/strings"
)

// Built is the result of applying Options
type Built struct {
	Name    string
	Prefix  string
	Mw      []phttp.Middleware
	PortSet any
}

// Build applies opts in order. The middleware slice never aliases a caller's
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Mw = append([]phttp.Middleware(nil), b.Mw...)
	return b
}

// Base implements Module over a Built and a route registration func.
// Modules embed it and only supply their own routes
type Base struct {
	Built
	routes func(phttp.Router)
}

// NewBase pairs build output with the module's routes
func NewBase(b Built, routes func(phttp.Router)) Base {
	return Base{Built: b, routes: routes}
}

// MountRoutes mounts the module under its prefix, or as a group at the
// parent root when the prefix is empty. Middleware only wraps the module's
// own routes either way
func (m Base) MountRoutes(r phttp.Router) {
	mount := func(rr phttp.Router) {
		if len(m.Mw) > 0 {
			rr.Use(m.Mw...)
		}
		if m.routes != nil {
			m.routes(rr)
		}
	}
	if m.Prefix == "" {
		r.Group(mount)
		return
	}
	r.Route(pstrings.MustPrefix(m.Prefix), mount)
}

// Name implements Module
func (m Base) Name() string { return m.Built.Name }

// Ports implements Module
func (m Base) Ports() any { return m.PortSet }
