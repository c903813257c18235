package relay_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal/relay"
	"github.com/dmitrymomot/folio/pkg/contact"
	"github.com/dmitrymomot/folio/pkg/health"
	"github.com/dmitrymomot/folio/pkg/mailer"
)

type captureSender struct {
	mu     sync.Mutex
	emails []*mailer.Email
	ctxErr []error
	err    error
}

func (s *captureSender) Send(ctx context.Context, e *mailer.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, e)
	s.ctxErr = append(s.ctxErr, ctx.Err())
	return s.err
}

func (s *captureSender) sent() []*mailer.Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*mailer.Email(nil), s.emails...)
}

func newService(t *testing.T, sender mailer.Sender, cfg relay.Config) (*relay.Service, *bytes.Buffer) {
	t.Helper()

	var logs bytes.Buffer
	if cfg.To == "" {
		cfg.To = "owner@example.com"
	}
	svc, err := relay.New(sender, cfg, relay.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)
	return svc, &logs
}

var ada = contact.Submission{Name: "Ada", Email: "ada@example.com", Message: "Hello\nthere"}

func TestService_Relay(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	svc, logs := newService(t, sender, relay.Config{})

	require.NoError(t, svc.Relay(context.Background(), ada, "key-1"))

	sent := sender.sent()
	require.Len(t, sent, 1)
	e := sent[0]
	require.Equal(t, []string{"owner@example.com"}, e.To)
	require.Equal(t, "New contact from Ada", e.Subject)
	require.Equal(t, "Name: Ada\nEmail: ada@example.com\n\nHello\nthere", e.Text)
	require.Equal(t, "ada@example.com", e.ReplyTo)
	require.Equal(t, "key-1", e.IdempotencyKey)
	require.Empty(t, e.From)

	require.Contains(t, e.HTML, "<!DOCTYPE html>")
	require.Contains(t, e.HTML, "Hello<br")
	require.Contains(t, e.HTML, `href="mailto:ada@example.com"`)
	require.Contains(t, e.HTML, `class="btn"`)

	for _, state := range []string{"received", "validated", "dispatched", "succeeded"} {
		require.Contains(t, logs.String(), "state="+state)
	}
}

func TestService_Relay_EscapesUserContent(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	svc, _ := newService(t, sender, relay.Config{})

	err := svc.Relay(context.Background(), contact.Submission{
		Name:    "**Bold** [link](https://evil.example)",
		Email:   "ada@example.com",
		Message: "<script>alert(1)</script>\n<img src=x onerror=alert(1)>\n    indented\n# heading",
	}, "")
	require.NoError(t, err)

	html := sender.sent()[0].HTML
	require.NotContains(t, html, "<script")
	require.NotContains(t, html, "<img")
	require.NotContains(t, html, "<strong>Bold</strong>")
	require.NotContains(t, html, `href="https://evil.example"`)
	require.NotContains(t, html, "<h1>heading</h1>")
	require.NotContains(t, html, "<pre>")
	require.Contains(t, html, "&lt;script&gt;")
	require.Contains(t, html, "\u00a0\u00a0\u00a0\u00a0indented")

	// The subject and text body carry the raw name.
	require.Equal(t, "New contact from **Bold** [link](https://evil.example)", sender.sent()[0].Subject)
}

func TestService_Relay_MissingFields(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	svc, _ := newService(t, sender, relay.Config{})

	for _, sub := range []contact.Submission{
		{},
		{Email: "ada@example.com", Message: "Hi"},
		{Name: "Ada", Message: "Hi"},
		{Name: "Ada", Email: "ada@example.com"},
	} {
		err := svc.Relay(context.Background(), sub, "")
		require.ErrorIs(t, err, relay.ErrMissingField)
	}
	require.Empty(t, sender.sent())
}

// Presence is the only server check by default: a badly shaped email and a
// whitespace-only name are still relayed.
func TestService_Relay_LenientByDefault(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	svc, _ := newService(t, sender, relay.Config{})

	require.NoError(t, svc.Relay(context.Background(), contact.Submission{Name: " ", Email: "not-an-email", Message: "Hi"}, ""))

	e := sender.sent()[0]
	require.Empty(t, e.ReplyTo)
	require.NotContains(t, e.HTML, `class="btn"`)
}

func TestService_Relay_StrictEmail(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	svc, _ := newService(t, sender, relay.Config{StrictEmail: true})

	err := svc.Relay(context.Background(), contact.Submission{Name: "Ada", Email: "not-an-email", Message: "Hi"}, "")
	require.ErrorIs(t, err, relay.ErrInvalidEmail)
	require.Empty(t, sender.sent())

	require.NoError(t, svc.Relay(context.Background(), ada, ""))
}

func TestService_Relay_ReplyToNeedsParseableAddress(t *testing.T) {
	t.Parallel()

	// Each of these matches the form's email pattern but not RFC 5322.
	for _, email := range []string{
		"jane..doe@x.com",
		"a,b@x.com",
		"jane.@x.com",
		"j(a)ne@x.com",
	} {
		t.Run(email, func(t *testing.T) {
			t.Parallel()

			sender := &captureSender{}
			svc, _ := newService(t, sender, relay.Config{})

			require.NoError(t, svc.Relay(context.Background(), contact.Submission{
				Name: "Jane", Email: email, Message: "Hi",
			}, ""))

			sent := sender.sent()
			require.Len(t, sent, 1)
			require.Empty(t, sent[0].ReplyTo)
			require.NotContains(t, sent[0].HTML, `class="btn"`)
			require.Contains(t, sent[0].Text, "Email: "+email)
		})
	}
}

func TestService_Relay_ProviderFailure(t *testing.T) {
	t.Parallel()

	providerErr := errors.New("401 unauthorized: bad api key")
	sender := &captureSender{err: providerErr}
	svc, logs := newService(t, sender, relay.Config{})

	err := svc.Relay(context.Background(), ada, "")
	require.ErrorIs(t, err, relay.ErrProviderFailure)
	require.ErrorIs(t, err, providerErr)
	require.ErrorIs(t, err, mailer.ErrSendFailed)
	require.Len(t, sender.sent(), 1, "no retry")

	require.Contains(t, logs.String(), "state=failed")
	require.Contains(t, logs.String(), "bad api key")
}

func TestService_Relay_DetachedFromCancellation(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	svc, _ := newService(t, sender, relay.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, svc.Relay(ctx, ada, ""))
	require.NoError(t, sender.ctxErr[0])
}

func TestService_Relay_FromOverride(t *testing.T) {
	t.Parallel()

	sender := &captureSender{}
	svc, _ := newService(t, sender, relay.Config{From: "Portfolio <site@example.com>"})

	require.NoError(t, svc.Relay(context.Background(), ada, ""))
	require.Equal(t, "Portfolio <site@example.com>", sender.sent()[0].From)
}

func TestNew_RequiresSenderAndRecipient(t *testing.T) {
	t.Parallel()

	_, err := relay.New(nil, relay.Config{To: "owner@example.com"})
	require.ErrorIs(t, err, relay.ErrNotConfigured)

	_, err = relay.New(&captureSender{}, relay.Config{})
	require.ErrorIs(t, err, relay.ErrNotConfigured)
}

func TestService_Healthcheck(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, &captureSender{}, relay.Config{})
	require.NoError(t, svc.Healthcheck()(context.Background()))
}

func TestService_Healthcheck_NilService(t *testing.T) {
	t.Parallel()

	var svc *relay.Service
	require.ErrorIs(t, svc.Healthcheck()(context.Background()), health.ErrNotConfigured)
}
