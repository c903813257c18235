package sendgrid

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/mail"
	"sort"

	"github.com/sendgrid/rest"
	sendgridapi "github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/dmitrymomot/folio/pkg/mailer"
)

const sendEndpoint = "/v3/mail/send"

// IdempotencyArg is the custom_args key carrying Email.IdempotencyKey.
// SendGrid has no native idempotency; the key surfaces in event webhooks.
const IdempotencyArg = "idempotency_key"

// Sender implements mailer.Sender using the SendGrid v3 mail API.
// Each Send builds its own request, so a Sender is safe for concurrent use.
type Sender struct {
	client *rest.Client
	config Config
}

// New creates a new SendGrid sender.
func New(cfg Config) *Sender {
	if cfg.Host == "" {
		cfg.Host = "https://api.sendgrid.com"
	}
	return &Sender{
		client: &rest.Client{HTTPClient: &http.Client{Timeout: cfg.Timeout}},
		config: cfg,
	}
}

// Send implements mailer.Sender.
// Any response outside 2xx is returned as an error carrying the status and body.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	msg, err := s.build(email)
	if err != nil {
		return err
	}

	req := sendgridapi.GetRequest(s.config.APIKey, sendEndpoint, s.config.Host)
	req.Method = rest.Post
	req.Body = sgmail.GetRequestBody(msg)

	resp, err := s.client.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid: send email: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: resp.Body}
	}
	return nil
}

func (s *Sender) build(email *mailer.Email) (*sgmail.SGMailV3, error) {
	fromAddr := email.From
	if fromAddr == "" {
		fromAddr = s.config.From
	}
	if fromAddr == "" {
		return nil, mailer.ErrNoSender
	}
	from, err := parseAddress(fromAddr)
	if err != nil {
		return nil, err
	}

	p := sgmail.NewPersonalization()
	for _, list := range []struct {
		addrs []string
		add   func(...*sgmail.Email)
	}{
		{email.To, p.AddTos},
		{email.CC, p.AddCCs},
		{email.BCC, p.AddBCCs},
	} {
		for _, a := range list.addrs {
			addr, err := parseAddress(a)
			if err != nil {
				return nil, err
			}
			list.add(addr)
		}
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(from)
	m.Subject = email.Subject
	m.AddPersonalizations(p)

	// SendGrid requires text/plain before text/html.
	if email.Text != "" {
		m.AddContent(sgmail.NewContent("text/plain", email.Text))
	}
	if email.HTML != "" {
		m.AddContent(sgmail.NewContent("text/html", email.HTML))
	}

	if email.ReplyTo != "" {
		replyTo, err := parseAddress(email.ReplyTo)
		if err != nil {
			return nil, err
		}
		m.SetReplyTo(replyTo)
	}
	if email.IdempotencyKey != "" {
		m.SetCustomArg(IdempotencyArg, email.IdempotencyKey)
	}
	for k, v := range email.Headers {
		m.SetHeader(k, v)
	}
	if len(email.Tags) > 0 {
		m.AddCategories(categories(email.Tags)...)
	}
	for _, a := range email.Attachments {
		att := sgmail.NewAttachment().
			SetFilename(a.Filename).
			SetType(a.ContentType).
			SetContent(base64.StdEncoding.EncodeToString(a.Content))
		if a.ContentID != "" {
			att.SetDisposition("inline").SetContentID(a.ContentID)
		} else {
			att.SetDisposition("attachment")
		}
		m.AddAttachment(att)
	}

	return m, nil
}

func parseAddress(s string) (*sgmail.Email, error) {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", mailer.ErrInvalidAddress, s, err)
	}
	return sgmail.NewEmail(addr.Name, addr.Address), nil
}

// categories maps tags to SendGrid categories, sorted for stable payloads.
// Valued tags become "name:value".
func categories(tags mailer.Tags) []string {
	out := make([]string, 0, len(tags))
	for name, v := range tags {
		switch val := v.(type) {
		case nil, struct{}:
			out = append(out, name)
		default:
			out = append(out, fmt.Sprintf("%s:%v", name, val))
		}
	}
	sort.Strings(out)
	return out
}
