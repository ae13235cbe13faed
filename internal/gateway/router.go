package gateway

import (
	"net/http"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Router wraps http.ServeMux and applies per-route middleware chains.
type Router struct {
	mux *http.ServeMux
}

func NewRouter() *Router {
	return &Router{
		mux: http.NewServeMux(),
	}
}

// Mux returns the underlying http.ServeMux
func (r *Router) Mux() *http.ServeMux {
	return r.mux
}

// Handle registers handler for pattern. The first middleware is outermost.
func (r *Router) Handle(pattern string, handler http.Handler, mws ...Middleware) {
	r.mux.Handle(pattern, chain(handler, mws...))
}

// HandleFunc registers a handler function for pattern.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc, mws ...Middleware) {
	r.Handle(pattern, handler, mws...)
}

func chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
