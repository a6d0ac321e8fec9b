package middleware

import "net/http"

// Chain wraps h so the middlewares run in the order given, the first one
// outermost. RequestLogging goes before Recover so panics are logged with
// the request id and counted as 500s.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
