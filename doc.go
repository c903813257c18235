// Package folio is the backend of a single-page portfolio site.
//
// It exposes one endpoint, POST /api/contact, which relays a visitor's
// contact-form submission to a transactional-email provider (SendGrid or
// Resend), plus liveness/readiness probes and an optional static mount for
// the built site.
//
// The package re-exports a small HTTP application core built on chi:
//
//	app := folio.New(
//	    folio.WithLogger("folio", middlewares.RequestIDExtractor()),
//	    folio.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Logger(),
//	        middlewares.Recover(),
//	    ),
//	    folio.WithHandlers(handlers.NewContactHandler(svc)),
//	    folio.WithHealthChecks(folio.WithReadinessCheck("mailer", svc.Healthcheck())),
//	)
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// Handlers return errors instead of writing failure responses themselves.
// An *HTTPError is rendered as plain text with its status and message;
// anything else becomes a 500 without internal detail.
//
// The binary lives in cmd/folio; the client-side form controller in
// pkg/contactform.
package folio
