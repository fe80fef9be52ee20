// Package modkit wires web modules: shared Deps in, a mountable Module out
package modkit

import (
	phttp "datamonitor/internal/platform/net/http"
)

// Module is what web.Mount needs from a module
type Module interface {
	MountRoutes(r phttp.Router)
	// Ports is the module's port set for sibling wiring, may be nil
	Ports() any
	Name() string
}

var _ Module = Base{}
