// Package net holds what every transport shares: request scoped context
// values and the JSON envelope
package net

import (
	"context"
	"sync/atomic"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const (
	keyUserID   ctxKey = "user_id"
	keyUserSlot ctxKey = "user_slot"
)

// WithRequest stores reqID where chimw.GetReqID will find it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// WithUserSlot returns a context that records the identity set by any
// WithUser further down the handler chain. Middleware that runs before the
// auth gate reads it back with UserID once the request is served
func WithUserSlot(ctx context.Context) context.Context {
	if _, ok := ctx.Value(keyUserSlot).(*atomic.Value); ok {
		return ctx
	}
	return context.WithValue(ctx, keyUserSlot, new(atomic.Value))
}

// WithUser annotates context with the identity that passed the auth gate
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	if slot, ok := ctx.Value(keyUserSlot).(*atomic.Value); ok {
		slot.Store(userID)
	}
	return context.WithValue(ctx, keyUserID, userID)
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// UserID returns the authenticated identity on the context, or the one
// recorded in its user slot, if any
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(keyUserID).(string); ok {
		return v
	}
	if slot, ok := ctx.Value(keyUserSlot).(*atomic.Value); ok {
		v, _ := slot.Load().(string)
		return v
	}
	return ""
}
