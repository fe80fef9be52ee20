// Package web mounts the dashboard service onto a router
package web

import (
	"time"

	"datamonitor/internal/adapters/upstream"
	"datamonitor/internal/platform/config"
	"datamonitor/internal/platform/logger"
	"datamonitor/internal/platform/metrics"
	phttp "datamonitor/internal/platform/net/http"
	"datamonitor/internal/platform/net/middleware"

	"datamonitor/internal/modkit"
	"datamonitor/internal/modkit/httpkit"
	"datamonitor/internal/modkit/swaggerkit"

	dashmod "datamonitor/internal/services/web/dashboard/module"
	metamod "datamonitor/internal/services/web/meta/module"
	proxymod "datamonitor/internal/services/web/proxy/module"
)

// Options are the web service options
type Options struct {
	Config  config.Conf
	Logger  *logger.Logger
	Records *upstream.Client
	Proxy   *upstream.Client
	Metrics *metrics.Metrics
	// Auth gates the dashboard page and summary API, nil leaves them open
	Auth middleware.AuthPort

	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
	// RequestTimeout bounds a whole request, 0 picks the middleware default
	RequestTimeout time.Duration
	// SlowRequest logs requests at warn once they take this long
	SlowRequest time.Duration
}

// Mount installs the root middleware stack and every module on r.
// r must be fresh, chi rejects Use after routes are registered
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Log:     opt.Logger,
		Cfg:     opt.Config,
		Records: opt.Records,
		Proxy:   opt.Proxy,
		Metrics: opt.Metrics,
		Auth:    opt.Auth,
	}
	log := deps.Logger()

	// observers sit outside RecoverJSON so a recovered panic is logged and
	// counted as the 500 it becomes
	observe := []middleware.Func{
		middleware.AccessLogZerolog(middleware.AccessLogOptions{
			Slow: opt.SlowRequest,
			Skip: []string{"/metrics", "/ping"},
			Log:  opt.Logger,
		}),
	}
	if opt.Metrics != nil {
		observe = append(observe, opt.Metrics.Middleware)
	}
	root := append(middleware.Defaults(opt.RequestTimeout, observe...), middleware.Heartbeat("/ping"))
	r.Use(root...)

	dashboard := dashmod.New(deps)
	proxy := proxymod.New(deps)
	versioned := []modkit.Module{
		metamod.New(deps),
		dashboard,
	}

	// HTML page at / and the browser facing proxy at /api/proxy
	dashboard.MountPage(r)
	proxy.MountRoutes(r)

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.CORSOrigins), func(v1 httpkit.Router) {
		for _, m := range versioned {
			m.MountRoutes(v1)
			log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})

	if opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
}
