// Package middleware provides the HTTP middleware shared by the API, app,
// and docs modules: request logging, panic recovery, body limits, and CORS.
package middleware

import "net/http"

// Func wraps a handler with additional behavior.
type Func func(http.Handler) http.Handler

// Stack is an ordered list of middleware. The first registered
// middleware is the outermost when applied.
type Stack struct {
	fns []Func
}

// Use appends middleware to the stack.
func (s *Stack) Use(fns ...Func) {
	s.fns = append(s.fns, fns...)
}

// Len reports the number of registered middleware.
func (s *Stack) Len() int {
	return len(s.fns)
}

// Apply wraps handler with every middleware in the stack.
func (s *Stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.fns) - 1; i >= 0; i-- {
		handler = s.fns[i](handler)
	}
	return handler
}
