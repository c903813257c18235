package mailer

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSender is a mock implementation of Sender interface.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func mailerFS(body string) fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{Data: []byte(`<html>{{.Content}}</html>`)},
		"test.md":           &fstest.MapFile{Data: []byte(body)},
	}
}

func newTestMailer(sender Sender, body string) *Mailer {
	return New(sender, NewRenderer(mailerFS(body)), Config{
		DefaultLayout:   "base.html",
		FallbackSubject: "New message",
	})
}

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	m := newTestMailer(sender, "---\nSubject: New contact from {{.Name}}\n---\nHello **{{.Name}}**!\n")

	sender.On("Send", mock.Anything, mock.MatchedBy(func(e *Email) bool {
		return e.To[0] == "owner@example.com" &&
			e.Subject == "New contact from Ada" &&
			e.HTML == "<html><p>Hello <strong>Ada</strong>!</p>\n</html>" &&
			e.Text == "Hello **Ada**!\n" &&
			e.ReplyTo == "ada@example.com" &&
			e.IdempotencyKey == "key-1"
	})).Return(nil)

	err := m.Send(context.Background(), SendParams{
		To:             "owner@example.com",
		Template:       "test.md",
		Data:           map[string]string{"Name": "Ada"},
		ReplyTo:        "ada@example.com",
		IdempotencyKey: "key-1",
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_Send_TextOverride(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	m := newTestMailer(sender, "Body with **markdown**")

	sender.On("Send", mock.Anything, mock.MatchedBy(func(e *Email) bool {
		return e.Text == "Name: Ada\nEmail: ada@example.com\n\nHi"
	})).Return(nil)

	err := m.Send(context.Background(), SendParams{
		To:       "owner@example.com",
		Template: "test.md",
		Text:     "Name: Ada\nEmail: ada@example.com\n\nHi",
	})

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestMailer_Send_SubjectResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		subject  string
		body     string
		expected string
	}{
		{
			name:     "explicit subject is used verbatim",
			subject:  "New contact from {{.Name}}",
			body:     "---\nSubject: Template\n---\nBody",
			expected: "New contact from {{.Name}}",
		},
		{
			name:     "template metadata is executed",
			body:     "---\nSubject: Hi {{.Name}}\n---\nBody",
			expected: "Hi Ada",
		},
		{
			name:     "fallback when no subject",
			body:     "Body without metadata",
			expected: "New message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &MockSender{}
			m := newTestMailer(sender, tt.body)
			sender.On("Send", mock.Anything, mock.MatchedBy(func(e *Email) bool {
				return e.Subject == tt.expected
			})).Return(nil)

			err := m.Send(context.Background(), SendParams{
				To:       "owner@example.com",
				Template: "test.md",
				Subject:  tt.subject,
				Data:     map[string]string{"Name": "Ada"},
			})

			require.NoError(t, err)
			sender.AssertExpectations(t)
		})
	}
}

func TestMailer_Send_NoRecipient(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	m := newTestMailer(sender, "Body")

	err := m.Send(context.Background(), SendParams{Template: "test.md"})

	require.ErrorIs(t, err, ErrNoRecipient)
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_RenderFailure(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	m := New(sender, NewRenderer(fstest.MapFS{}), Config{DefaultLayout: "missing.html"})

	err := m.Send(context.Background(), SendParams{
		To:       "owner@example.com",
		Template: "nonexistent.md",
	})

	require.ErrorIs(t, err, ErrRenderFailed)
	require.ErrorIs(t, err, ErrTemplateNotFound)
	sender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_SenderFailure(t *testing.T) {
	t.Parallel()

	sender := &MockSender{}
	m := newTestMailer(sender, "Hello")

	senderErr := errors.New("provider rejected message")
	sender.On("Send", mock.Anything, mock.Anything).Return(senderErr)

	err := m.Send(context.Background(), SendParams{
		To:       "owner@example.com",
		Template: "test.md",
	})

	require.ErrorIs(t, err, ErrSendFailed)
	require.ErrorIs(t, err, senderErr)
	sender.AssertExpectations(t)
}

func TestMailer_SendRaw_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email *Email
		err   error
	}{
		{"nil email", nil, ErrNoRecipient},
		{"no recipient", &Email{Subject: "s", Text: "t"}, ErrNoRecipient},
		{"no subject", &Email{To: []string{"a@example.com"}, Text: "t"}, ErrNoSubject},
		{"no content", &Email{To: []string{"a@example.com"}, Subject: "s"}, ErrNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := &MockSender{}
			m := New(sender, nil, Config{})
			require.ErrorIs(t, m.SendRaw(context.Background(), tt.email), tt.err)
			sender.AssertNotCalled(t, "Send")
		})
	}
}

func TestMailer_SendRaw_TextOnly(t *testing.T) {
	t.Parallel()

	var got *Email
	m := New(SenderFunc(func(_ context.Context, e *Email) error {
		got = e
		return nil
	}), nil, Config{})

	err := m.SendRaw(context.Background(), &Email{
		To:      []string{"owner@example.com"},
		Subject: "Ping",
		Text:    "plain",
	})

	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "plain", got.Text)
}

func TestMailer_Render_DefaultLayout(t *testing.T) {
	t.Parallel()

	m := newTestMailer(&MockSender{}, "Hi **there**")
	res, err := m.Render("", "test.md", nil)
	require.NoError(t, err)
	require.Equal(t, "<html><p>Hi <strong>there</strong></p>\n</html>", res.HTML)
}
