// Package logger builds slog loggers with context extraction and optional
// Sentry forwarding.
//
// New returns a JSON (or text) logger; every record passes through a
// [LogHandlerDecorator] that asks each [ContextExtractor] for a request-scoped
// attribute, such as the request ID set by the RequestID middleware:
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithExtractors(middlewares.RequestIDExtractor()),
//	)
//	log.InfoContext(r.Context(), "contact relayed")
//	// level=INFO msg="contact relayed" request_id=01J...
//
// NewWithSentry additionally fans records out to Sentry: errors become issues
// and records at or above SentryConfig.MinLevel are stored as logs. An empty
// DSN falls back to local logging only, so the same code path runs in
// development and production. Call FlushSentry during shutdown.
package logger
