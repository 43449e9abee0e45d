package botx

import (
	"context"
)

// Router returns a multiplexer for handlers.
type Router struct {
	notFound    Handler
	handlers    map[string]Handler
	middlewares []Middleware
}

// NewRouter returns a multiplexer for handlers.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]Handler),
		notFound: NotFound,
	}
}

// Add adds a handler for the command, e.g. "/start".
func (r *Router) Add(command string, h Handler) {
	r.handlers[command] = h
}

// Use applies middleware to all handlers.
func (r *Router) Use(mws ...Middleware) *Router {
	r.middlewares = append(r.middlewares, mws...)
	return r
}

// With returns a new router with middleware applied.
func (r *Router) With(mws ...Middleware) *Router {
	return r.Clone().Use(mws...)
}

// Clone returns a copy of the router.
func (r *Router) Clone() *Router {
	rtr := NewRouter()
	rtr.notFound = r.notFound

	rtr.handlers = make(map[string]Handler, len(r.handlers))
	for cmd, h := range r.handlers {
		rtr.Add(cmd, h)
	}

	rtr.middlewares = make([]Middleware, len(r.middlewares))
	copy(rtr.middlewares, r.middlewares)

	return rtr
}

// Group groups handlers, middlewares of the group are applied only
// to its handlers.
func (r *Router) Group(f func(rtr *Router)) {
	nested := NewRouter()
	f(nested)

	for cmd, h := range nested.handlers {
		r.Add(cmd, h.With(nested.middlewares...))
	}
}

// NotFound sets a not found handler to the router.
func (r *Router) NotFound(h Handler) {
	r.notFound = h
}

// Handle handles request.
func (r *Router) Handle(ctx context.Context, req Request) ([]Response, error) {
	if req.Text == "" {
		return nil, nil
	}

	h, ok := r.handlers[req.Command()]
	if !ok {
		h = r.notFound
	}

	return h.With(r.middlewares...)(ctx, req)
}
