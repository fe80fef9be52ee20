// Package module wires the pass-through proxy using modkit
package module

import (
	modkit "datamonitor/internal/modkit"
	"datamonitor/internal/modkit/httpkit"
	proxyhttp "datamonitor/internal/services/web/proxy/http"
	proxysvc "datamonitor/internal/services/web/proxy/service"
)

// New constructs the proxy module. It mounts at the parent root and is
// never behind the auth gate
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	if deps.Proxy == nil {
		panic("proxy module requires a proxy client")
	}
	svc := proxysvc.New(deps.Proxy)

	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("proxy"),
	}, opts...)...)

	return modkit.NewBase(b, func(r httpkit.Router) {
		proxyhttp.Register(r, svc)
	})
}
