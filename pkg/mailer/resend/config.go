package resend

import "github.com/dmitrymomot/folio/pkg/mailer"

// Config holds Resend provider settings, parsed with caarlos0/env.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL"`
	SenderName  string `env:"RESEND_FROM_NAME"`
}

func (c Config) from() string {
	if c.SenderName == "" {
		return c.SenderEmail
	}
	return mailer.Recipient(c.SenderName, c.SenderEmail)
}
