// Package module wires the dashboard page and summary API using modkit
package module

import (
	modkit "datamonitor/internal/modkit"
	"datamonitor/internal/modkit/httpkit"
	"datamonitor/internal/platform/metrics"
	dashhttp "datamonitor/internal/services/web/dashboard/http"
	dashsvc "datamonitor/internal/services/web/dashboard/service"
)

// Module implements the dashboard module. The JSON routes mount under its
// prefix via MountRoutes, the HTML page via MountPage
type Module struct {
	modkit.Base
	deps modkit.Deps
	svc  dashsvc.Service
}

// Ports is what the dashboard exposes to sibling modules
type Ports struct {
	Service dashsvc.Service
}

// New constructs the dashboard module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	if deps.Records == nil {
		panic("dashboard module requires a records client")
	}

	// ObserveRecords is nil safe, a nil *Metrics is fine here
	svc := dashsvc.New(deps.Records,
		dashsvc.WithTableLimit(deps.Cfg.MayInt("DASHBOARD_TABLE_LIMIT", dashsvc.DefaultTableLimit)),
		dashsvc.WithObserver(deps.Metrics),
	)

	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("dashboard"),
		modkit.WithPrefix("/dashboard"),
		modkit.WithPorts(Ports{Service: svc}),
		modkit.WithMiddlewares(httpkit.Gate(deps.Auth)...),
	}, opts...)...)

	m := &Module{deps: deps, svc: svc}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { dashhttp.RegisterAPI(r, svc) })
	return m
}

// MountPage mounts the HTML dashboard at the root of r behind the auth gate
func (m *Module) MountPage(r httpkit.Router) {
	httpkit.Protected(r, m.deps.Auth, func(pr httpkit.Router) {
		dashhttp.RegisterPage(pr, m.svc)
	})
}

var _ modkit.Module = (*Module)(nil)

var _ dashsvc.RecordsObserver = (*metrics.Metrics)(nil)
