package resend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/mailer"
)

type capturedRequest struct {
	path           string
	auth           string
	idempotencyKey string
	body           map[string]any
}

func newTestSender(t *testing.T, cfg Config, status int) (*Sender, *capturedRequest) {
	t.Helper()

	got := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		got.idempotencyKey = r.Header.Get("Idempotency-Key")
		_ = json.NewDecoder(r.Body).Decode(&got.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"id":"email_123"}`))
			return
		}
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"invalid from"}`))
	}))
	t.Cleanup(srv.Close)

	s := New(cfg)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	s.client.BaseURL = base
	return s, got
}

func TestSender_Send(t *testing.T) {
	t.Parallel()

	s, got := newTestSender(t, Config{
		APIKey:      "re_test",
		SenderEmail: "site@example.com",
		SenderName:  "Portfolio",
	}, http.StatusOK)

	err := s.Send(context.Background(), &mailer.Email{
		To:             []string{"owner@example.com"},
		Subject:        "New contact from Ada",
		HTML:           "<p>Hi</p>",
		Text:           "Hi",
		ReplyTo:        "ada@example.com",
		IdempotencyKey: "key-1",
		Tags:           mailer.SimpleTags("contact"),
	})
	require.NoError(t, err)

	require.Equal(t, "/emails", got.path)
	require.Equal(t, "Bearer re_test", got.auth)
	require.Equal(t, "key-1", got.idempotencyKey)
	require.Equal(t, `"Portfolio" <site@example.com>`, got.body["from"])
	require.Equal(t, "New contact from Ada", got.body["subject"])
	require.Equal(t, []any{"owner@example.com"}, got.body["to"])
}

func TestSender_Send_ExplicitFrom(t *testing.T) {
	t.Parallel()

	s, got := newTestSender(t, Config{APIKey: "re_test", SenderEmail: "site@example.com"}, http.StatusOK)

	err := s.Send(context.Background(), &mailer.Email{
		From:    "other@example.com",
		To:      []string{"owner@example.com"},
		Subject: "s",
		Text:    "t",
	})
	require.NoError(t, err)
	require.Equal(t, "other@example.com", got.body["from"])
	require.Empty(t, got.idempotencyKey)
}

func TestSender_Send_NoSender(t *testing.T) {
	t.Parallel()

	s := New(Config{APIKey: "re_test"})
	err := s.Send(context.Background(), &mailer.Email{To: []string{"owner@example.com"}, Subject: "s", Text: "t"})
	require.ErrorIs(t, err, mailer.ErrNoSender)
}

func TestSender_Send_ProviderError(t *testing.T) {
	t.Parallel()

	s, _ := newTestSender(t, Config{APIKey: "re_test", SenderEmail: "site@example.com"}, http.StatusUnprocessableEntity)

	err := s.Send(context.Background(), &mailer.Email{To: []string{"owner@example.com"}, Subject: "s", Text: "t"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "resend: send email")
}

func TestTagValue(t *testing.T) {
	t.Parallel()

	require.Equal(t, "true", tagValue(struct{}{}))
	require.Equal(t, "true", tagValue(nil))
	require.Equal(t, "x", tagValue("x"))
	require.Equal(t, "false", tagValue(false))
	require.Equal(t, "42", tagValue(42))
	require.Equal(t, "1.5", tagValue(1.5))
}
