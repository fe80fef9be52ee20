package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiRouter satisfies Router for the root mux, groups and subroutes alike
type chiRouter struct{ r chi.Router }

// AdaptChi wraps m as a Router
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m} }

func (c chiRouter) method(m, p string, h Handler) { c.r.Method(m, p, http.HandlerFunc(h)) }

func (c chiRouter) Get(p string, h Handler)  { c.method(http.MethodGet, p, h) }
func (c chiRouter) Head(p string, h Handler) { c.method(http.MethodHead, p, h) }

func (c chiRouter) GetHead(p string, h Handler) {
	c.method(http.MethodGet, p, h)
	c.method(http.MethodHead, p, h)
}

func (c chiRouter) Handle(p string, h http.Handler) { c.r.Handle(p, h) }
func (c chiRouter) Use(mw ...Middleware)            { c.r.Use(mw...) }

func (c chiRouter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

// Mux exposes the chi router as a plain http.Handler
func (c chiRouter) Mux() http.Handler { return c.r }
