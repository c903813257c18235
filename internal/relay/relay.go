package relay

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrymomot/folio/pkg/contact"
	"github.com/dmitrymomot/folio/pkg/health"
	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/mailer"
	"github.com/dmitrymomot/folio/pkg/sanitizer"
)

const contactTemplate = "contact.md"

//go:embed templates
var templates embed.FS

// Config is the relay's immutable configuration.
type Config struct {
	// To receives every contact message.
	To string
	// From overrides the provider's configured sender when set.
	From string
	// StrictEmail rejects submissions whose email does not look like an address.
	StrictEmail bool
}

// Service turns a contact submission into one email to the site owner.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	mailer *mailer.Mailer
	logger *slog.Logger
	cfg    Config
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for state transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates the relay. It fails when there is no sender or recipient.
func New(sender mailer.Sender, cfg Config, opts ...Option) (*Service, error) {
	if sender == nil {
		return nil, fmt.Errorf("%w: no mail sender", ErrNotConfigured)
	}
	if cfg.To == "" {
		return nil, fmt.Errorf("%w: no recipient address", ErrNotConfigured)
	}

	renderer := mailer.NewRenderer(templates,
		mailer.WithTemplateDir("templates"),
		mailer.WithLayoutDir("templates/layouts"),
		mailer.WithHardWraps(),
		mailer.WithSanitizer(sanitizer.SanitizeEmailHTML),
	)

	s := &Service{
		mailer: mailer.New(sender, renderer, mailer.Config{
			FallbackSubject: "New contact",
			DefaultLayout:   "base.html",
		}),
		logger: logger.NewNope(),
		cfg:    cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Subject returns the email subject for a submission.
func Subject(name string) string {
	return "New contact from " + name
}

// PlainText returns the plain-text body for a submission.
func PlainText(sub contact.Submission) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", sub.Name, sub.Email, sub.Message)
}

// Relay validates sub and sends it to the configured recipient.
// Exactly one provider call is made and it is never retried. Once dispatched
// the send is not canceled with ctx.
func (s *Service) Relay(ctx context.Context, sub contact.Submission, idempotencyKey string) error {
	s.logger.InfoContext(ctx, "contact received", slog.String("state", "received"))

	if missing := contact.Missing(sub); len(missing) > 0 {
		s.logger.InfoContext(ctx, "contact rejected",
			slog.String("state", "rejected"),
			slog.Any("missing", missing),
		)
		return fmt.Errorf("%w: %s", ErrMissingField, joinFields(missing))
	}

	validEmail := contact.IsEmail(sub.Email)
	if s.cfg.StrictEmail && !validEmail {
		s.logger.InfoContext(ctx, "contact rejected",
			slog.String("state", "rejected"),
			slog.String("reason", "invalid email"),
		)
		return ErrInvalidEmail
	}
	s.logger.InfoContext(ctx, "contact validated", slog.String("state", "validated"))

	replyTo := replyAddress(sub.Email)
	params := mailer.SendParams{
		To:             s.cfg.To,
		From:           s.cfg.From,
		Template:       contactTemplate,
		Data:           templateData(sub, replyTo),
		Subject:        Subject(sub.Name),
		Text:           PlainText(sub),
		IdempotencyKey: idempotencyKey,
		Tags:           mailer.SimpleTags("contact"),
	}
	if replyTo != "" {
		params.ReplyTo = replyTo
	} else if validEmail {
		s.logger.InfoContext(ctx, "contact reply-to skipped", slog.String("reason", "address not RFC 5322"))
	}

	s.logger.InfoContext(ctx, "contact dispatched", slog.String("state", "dispatched"))
	start := time.Now()
	if err := s.mailer.Send(context.WithoutCancel(ctx), params); err != nil {
		s.logger.ErrorContext(ctx, "contact send failed",
			slog.String("state", "failed"),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)
		return errors.Join(ErrProviderFailure, err)
	}

	s.logger.InfoContext(ctx, "contact sent",
		slog.String("state", "succeeded"),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// Healthcheck reports whether the contact email still renders.
func (s *Service) Healthcheck() health.CheckFunc {
	probe := contact.Submission{Name: "probe", Email: "probe@example.com", Message: "probe"}
	return func(context.Context) error {
		if s == nil || s.mailer == nil {
			return health.ErrNotConfigured
		}
		if _, err := s.mailer.Render("", contactTemplate, templateData(probe, probe.Email)); err != nil {
			return fmt.Errorf("relay: render contact template: %w", err)
		}
		return nil
	}
}

// replyAddress returns email when providers will accept it as a bare
// Reply-To address, otherwise "". The form pattern admits addresses such as
// "jane..doe@x.com" that net/mail rejects.
func replyAddress(email string) string {
	if !contact.IsEmail(email) {
		return ""
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return ""
	}
	return email
}

func templateData(sub contact.Submission, replyTo string) map[string]string {
	data := map[string]string{
		"Name":    escapeMarkdown(sub.Name),
		"Email":   escapeMarkdown(sub.Email),
		"Message": escapeMarkdown(sub.Message),
	}
	if replyTo != "" && replyable(replyTo) {
		data["ReplyURL"] = "mailto:" + replyTo
	}
	return data
}

func joinFields(fields []contact.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
