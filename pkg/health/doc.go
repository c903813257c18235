// Package health provides liveness and readiness HTTP handlers.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs a set of named [Checks] in parallel and answers
// 503 when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "mailer": svc.Healthcheck(),
//	}))
//
// Responses are plain text by default and JSON when the client sends
// `Accept: application/json` or `?format=json`.
package health
