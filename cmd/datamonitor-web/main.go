// @title         datamonitor web
// @version       0.1.0
// @description   Form submission dashboard and pass-through proxy

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"datamonitor/internal/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Get().Error().Err(err).Msg("datamonitor-web failed")
		stop()
		os.Exit(1)
	}
}
