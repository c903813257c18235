// Package internal holds the HTTP application core behind the folio package.
//
// Import "github.com/dmitrymomot/folio" instead; it re-exports the public API.
//
// App wraps a chi router. Handlers declare routes through the Router
// interface and receive a Context, which embeds context.Context and adds
// response helpers, JSON binding and request-scoped logging. A handler that
// returns an error hands it to the app's ErrorHandler; DefaultErrorHandler
// renders an *HTTPError as plain text with its status code and anything else
// as a bare 500.
//
// Run binds the listener, runs startup hooks, serves until SIGINT/SIGTERM or
// cancellation of the base context, then shuts down within the configured
// timeout and runs shutdown hooks.
package internal
