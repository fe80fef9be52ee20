// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"datamonitor/internal/core/version"
	modkit "datamonitor/internal/modkit"
	"datamonitor/internal/modkit/httpkit"

	metahttp "datamonitor/internal/services/web/meta/http"
)

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	upstreams := map[string]string{}
	if deps.Records != nil {
		upstreams[deps.Records.Name()] = deps.Records.URL()
	}
	if deps.Proxy != nil {
		upstreams[deps.Proxy.Name()] = deps.Proxy.URL()
	}

	startedAt := time.Now()
	return modkit.NewBase(b, func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   startedAt,
			Upstreams:   upstreams,
		})
	})
}
