// Package service forwards a fixed remote JSON document
package service

import (
	"context"
	"encoding/json"

	perr "datamonitor/internal/platform/errors"
	"datamonitor/internal/platform/logger"
)

// Fetcher reads one remote JSON document without re-encoding it
type Fetcher interface {
	FetchRaw(ctx context.Context) (json.RawMessage, error)
}

// Service defines the proxy contract
type Service interface {
	Forward(ctx context.Context) (json.RawMessage, error)
}

// Svc implements the proxy service
type Svc struct {
	src Fetcher
}

// New constructs a proxy service
func New(src Fetcher) *Svc {
	if src == nil {
		panic("proxy.Service requires a non nil Fetcher")
	}
	return &Svc{src: src}
}

// Forward returns the remote body verbatim
func (s *Svc) Forward(ctx context.Context) (json.RawMessage, error) {
	raw, err := s.src.FetchRaw(ctx)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Stringer("code", perr.CodeOf(err)).Msg("proxy fetch failed")
		return nil, err
	}
	return raw, nil
}
