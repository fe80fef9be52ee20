package modkit

import (
	phttp "datamonitor/internal/platform/net/http"
)

// Option adjusts how a module is built
type Option func(*Built)

// WithName sets the module name used in logs
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix mounts a module under a path prefix, empty mounts at the parent root
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares appends per module middleware, applied in order
func WithMiddlewares(mw ...phttp.Middleware) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts sets the port set a module exposes to its siblings
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.PortSet = p }
}
