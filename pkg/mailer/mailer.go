package mailer

import (
	"bytes"
	"context"
	"errors"
	texttemplate "text/template"
)

// Mailer renders templates and hands the result to a Sender.
// It is safe for concurrent use when its Sender is.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a new Mailer with the given sender and renderer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{
		sender:   sender,
		renderer: renderer,
		config:   cfg,
	}
}

// SendParams describes one templated email.
type SendParams struct {
	To       string
	Template string // e.g. "contact.md"
	Data     any

	// Subject overrides the template's frontmatter subject.
	// It is used verbatim, not executed as a template.
	Subject string
	// Text overrides the plain-text alternative derived from the template.
	Text           string
	Layout         string
	From           string
	ReplyTo        string
	IdempotencyKey string
	Tags           Tags
	Headers        map[string]string
	CC             []string
	BCC            []string
	Attachments    []Attachment
}

// Send renders params.Template and sends the result.
// Subject resolution: params.Subject > template metadata > config fallback.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if params.To == "" {
		return ErrNoRecipient
	}

	result, err := m.Render(params.Layout, params.Template, params.Data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject := params.Subject
	if subject == "" {
		tmpl, ok := result.Metadata["Subject"].(string)
		if !ok || tmpl == "" {
			tmpl = m.config.FallbackSubject
		}
		if subject, err = executeSubject(tmpl, params.Data); err != nil {
			return errors.Join(ErrRenderFailed, err)
		}
	}

	text := params.Text
	if text == "" {
		text = result.Text
	}

	return m.SendRaw(ctx, &Email{
		To:             []string{params.To},
		Subject:        subject,
		HTML:           result.HTML,
		Text:           text,
		From:           params.From,
		ReplyTo:        params.ReplyTo,
		IdempotencyKey: params.IdempotencyKey,
		Tags:           params.Tags,
		Headers:        params.Headers,
		CC:             params.CC,
		BCC:            params.BCC,
		Attachments:    params.Attachments,
	})
}

// Render renders a template without sending it. An empty layout uses the
// configured default.
func (m *Mailer) Render(layout, template string, data any) (*RenderResult, error) {
	if layout == "" {
		layout = m.config.DefaultLayout
	}
	return m.renderer.Render(layout, template, data)
}

// SendRaw validates a pre-built email and sends it without rendering.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	switch {
	case email == nil || len(email.To) == 0:
		return ErrNoRecipient
	case email.Subject == "":
		return ErrNoSubject
	case email.HTML == "" && email.Text == "":
		return ErrNoContent
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Option("missingkey=zero").Parse(subject)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
