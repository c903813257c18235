package resend

import (
	"context"
	"fmt"
	"strconv"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/folio/pkg/mailer"
)

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a new Resend sender.
func New(cfg Config) *Sender {
	return &Sender{
		client: resend.NewClient(cfg.APIKey),
		config: cfg,
	}
}

// Send implements mailer.Sender.
// A non-empty IdempotencyKey is forwarded so Resend drops duplicate sends.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	from := email.From
	if from == "" {
		from = s.config.from()
	}
	if from == "" {
		return mailer.ErrNoSender
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}
	if len(email.Attachments) > 0 {
		req.Attachments = attachments(email.Attachments)
	}
	if len(email.Tags) > 0 {
		req.Tags = tags(email.Tags)
	}

	opts := &resend.SendEmailOptions{IdempotencyKey: email.IdempotencyKey}
	if _, err := s.client.Emails.SendWithOptions(ctx, req, opts); err != nil {
		return fmt.Errorf("resend: send email: %w", err)
	}
	return nil
}

func attachments(in []mailer.Attachment) []*resend.Attachment {
	out := make([]*resend.Attachment, len(in))
	for i, a := range in {
		out[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return out
}

func tags(in mailer.Tags) []resend.Tag {
	out := make([]resend.Tag, 0, len(in))
	for name, value := range in {
		out = append(out, resend.Tag{Name: name, Value: tagValue(value)})
	}
	return out
}

// tagValue renders a tag value as a string; presence-only tags become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
