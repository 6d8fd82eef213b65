package middleware

import (
	"net/http"
	"slices"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes mws into one Middleware. The first entry is outermost, so
// Chain(a, b)(h) runs a, then b, then h. nil entries are skipped, which
// lets optional middleware such as a disabled rate limiter be passed inline.
func Chain(mws ...Middleware) Middleware {
	active := slices.DeleteFunc(slices.Clone(mws), func(mw Middleware) bool { return mw == nil })
	return func(h http.Handler) http.Handler {
		for _, mw := range slices.Backward(active) {
			h = mw(h)
		}
		return h
	}
}

// Group is the middleware shared by a family of routes, e.g. every console
// API route behind the role guard. Groups are values; With never modifies
// the receiver.
type Group []Middleware

// With returns a Group that runs g first and then mws.
func (g Group) With(mws ...Middleware) Group {
	return append(slices.Clip(g), mws...)
}

// Then wraps h in the group's middleware.
func (g Group) Then(h http.Handler) http.Handler {
	return Chain(g...)(h)
}
