package main

import (
	"context"
	"fmt"
	"time"

	"datamonitor/internal/adapters/upstream"
	"datamonitor/internal/core/version"
	"datamonitor/internal/modkit/httpkit"
	"datamonitor/internal/platform/config"
	"datamonitor/internal/platform/logger"
	"datamonitor/internal/platform/metrics"
	phttp "datamonitor/internal/platform/net/http"
	"datamonitor/internal/platform/net/middleware"

	"datamonitor/internal/services/web"

	"github.com/spf13/cobra"
)

// envPrefix scopes every service setting, e.g. WEB_PORT
const envPrefix = "WEB_"

// defaultProxyURL is the landing API the browser charts read through /api/proxy
const defaultProxyURL = "http://mtorresg.pythonanywhere.com/landing/api/index/?format=json"

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "datamonitor-web",
		Short:         "Form submission dashboard",
		Long:          "Serves an HTML dashboard over a remote form submission API and proxies the landing API for the browser charts.",
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SilenceUsage = true
			opt := logger.FromEnv()
			if logLevel != "" {
				opt.Level = logLevel
			}
			logger.Init(opt)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), config.New().Prefix(envPrefix))
		},
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context(), config.New().Prefix(envPrefix))
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version and exit",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.Info().String())
			},
		},
	)
	return root
}

// serve wires the service from cfg and blocks until ctx is cancelled
func serve(ctx context.Context, cfg config.Conf) error {
	l := logger.Get()
	m := metrics.New()

	recs, proxy, err := newClients(cfg, m)
	if err != nil {
		return err
	}

	srv := phttp.NewServer(cfg)
	web.Mount(srv.Router(), web.Options{
		Config:         cfg,
		Logger:         l,
		Records:        recs,
		Proxy:          proxy,
		Metrics:        m,
		Auth:           authPort(cfg),
		EnableSwagger:  cfg.MayBool("SWAGGER", false),
		EnableProfiler: cfg.MayBool("PROFILER", false),
		CORSOrigins:    cfg.MayCSV("CORS_ORIGINS", nil),
		RequestTimeout: cfg.MayDuration("REQUEST_TIMEOUT", 60*time.Second),
		SlowRequest:    cfg.MayDuration("SLOW_REQUEST", 2*time.Second),
	})

	l.Info().
		Str("records", recs.URL()).
		Str("proxy", proxy.URL()).
		Str("version", version.Info().Version).
		Msg("datamonitor-web starting")
	return srv.Run(ctx)
}

// newClients builds the records and proxy clients; they share timeouts and limits
func newClients(cfg config.Conf, obs upstream.Observer) (*upstream.Client, *upstream.Client, error) {
	base := upstream.Options{
		UserAgent: cfg.MayString("UPSTREAM_USER_AGENT", "datamonitor-web/"+version.Info().Version),
		Timeout:   cfg.MayDuration("UPSTREAM_TIMEOUT", 30*time.Second),
		MaxBytes:  cfg.MayInt64("UPSTREAM_MAX_BYTES", 8<<20),
	}

	ro := base
	ro.Name = "records"
	ro.URL = cfg.MustURL("API_URL").String()
	recs, err := upstream.NewClient(ro, upstream.WithObserver(obs))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", cfg.Key("API_URL"), err)
	}

	po := base
	po.Name = "proxy"
	po.URL = cfg.MayURL("PROXY_URL", defaultProxyURL)
	proxy, err := upstream.NewClient(po, upstream.WithObserver(obs))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", cfg.Key("PROXY_URL"), err)
	}
	return recs, proxy, nil
}

// authPort returns nil, leaving the dashboard open, when neither a static
// token nor a JWT secret is configured
func authPort(cfg config.Conf) middleware.AuthPort {
	var fns []httpkit.TokenFunc
	if tok := cfg.MayString("AUTH_TOKEN", ""); tok != "" {
		fns = append(fns, httpkit.StaticToken(tok, cfg.MayString("AUTH_USER", "dashboard")))
	}
	if secret := cfg.MayString("AUTH_JWT_SECRET", ""); secret != "" {
		fns = append(fns, httpkit.HMACJWT([]byte(secret)))
	}
	if len(fns) == 0 {
		return nil
	}
	return httpkit.NewPortFunc(httpkit.AnyOf(fns...))
}
