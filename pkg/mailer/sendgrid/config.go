package sendgrid

import "time"

// Config holds SendGrid provider settings, parsed with caarlos0/env.
type Config struct {
	APIKey string `env:"SENDGRID_API_KEY"`
	// From is the verified sender, either "addr" or "Name <addr>".
	From    string        `env:"SENDGRID_FROM"`
	Host    string        `env:"SENDGRID_HOST" envDefault:"https://api.sendgrid.com"`
	Timeout time.Duration `env:"SENDGRID_TIMEOUT" envDefault:"10s"`
}
