package http

import "net/http"

// Handler is the function shape every route registers
type Handler = func(http.ResponseWriter, *http.Request)

// Middleware wraps a handler
type Middleware = func(http.Handler) http.Handler

// Router is what modules mount against. Every surface of this service is
// read only, so the seam only knows GET and HEAD plus raw handlers for
// mounted sub-apps such as pprof and the docs UI
type Router interface {
	Get(path string, h Handler)
	Head(path string, h Handler)
	// GetHead registers h for both methods. net/http drops HEAD bodies
	GetHead(path string, h Handler)
	Handle(path string, h http.Handler)

	Use(mw ...Middleware)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}
