// Package middlewares provides the HTTP middleware folio installs in front of
// its routes.
//
// RequestID tags each request with an upstream or generated ID; pair it with
// RequestIDExtractor so every log line made with the request context carries
// request_id:
//
//	app := folio.New(
//	    folio.WithLogger("folio", middlewares.RequestIDExtractor()),
//	    folio.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Logger(),
//	        middlewares.Recover(),
//	        middlewares.CORS(middlewares.WithAllowOrigins("https://*.example.com")),
//	    ),
//	)
//
// Logger writes one access log line per request. Recover converts panics into
// *PanicError values handled by the app's error handler. CORS answers
// browser preflights for the contact endpoint.
package middlewares
