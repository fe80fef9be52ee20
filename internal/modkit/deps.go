package modkit

import (
	"datamonitor/internal/adapters/upstream"
	"datamonitor/internal/platform/config"
	"datamonitor/internal/platform/logger"
	"datamonitor/internal/platform/metrics"
	"datamonitor/internal/platform/net/middleware"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf

	// Records is the client for the form backend the dashboard aggregates
	Records *upstream.Client
	// Proxy is the client for the pass-through endpoint
	Proxy *upstream.Client

	Metrics *metrics.Metrics
	// Auth gates the dashboard, nil leaves it open
	Auth middleware.AuthPort
}

// Logger returns d.Log or the root logger
func (d Deps) Logger() *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Get()
}
