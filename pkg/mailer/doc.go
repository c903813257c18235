// Package mailer renders markdown email templates and hands them to a provider.
//
// Rendering and delivery are separate. A Renderer turns a markdown template
// with YAML frontmatter into HTML wrapped in an html/template layout. A Sender
// delivers the resulting Email. Mailer combines the two.
//
// Two providers ship as subpackages: sendgrid (the default for the contact
// relay) and resend.
//
//	sender := sendgrid.New(sendgrid.Config{
//		APIKey: os.Getenv("SENDGRID_API_KEY"),
//		From:   os.Getenv("SENDGRID_FROM"),
//	})
//	renderer := mailer.NewRenderer(templates.FS,
//		mailer.WithHardWraps(),
//		mailer.WithSanitizer(sanitizer.SanitizeEmailHTML),
//	)
//	m := mailer.New(sender, renderer, mailer.Config{DefaultLayout: "base.html"})
//
//	err := m.Send(ctx, mailer.SendParams{
//		To:       "owner@example.com",
//		Template: "contact.md",
//		Data:     data,
//		ReplyTo:  "visitor@example.com",
//	})
//
// # Templates
//
// Templates are markdown files with optional YAML frontmatter:
//
//	---
//	Subject: New contact from {{.Name}}
//	---
//	**From:** {{.Name}}
//
//	[!button|Reply]({{.ReplyURL}})
//
// The Subject field is itself a text/template executed against the send data.
// SendParams.Subject, when set, is used verbatim instead. Raw HTML in the
// markdown is omitted by goldmark, so data interpolated into a template cannot
// inject markup.
//
// # Errors
//
// Send and SendRaw return sentinel errors that callers match with errors.Is:
// ErrNoRecipient, ErrNoSubject, ErrNoContent, ErrTemplateNotFound,
// ErrLayoutNotFound, ErrRenderFailed and ErrSendFailed. Provider errors are
// joined with ErrSendFailed.
package mailer
