package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/mail"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/folio/pkg/logger"
	"github.com/dmitrymomot/folio/pkg/mailer/resend"
	"github.com/dmitrymomot/folio/pkg/mailer/sendgrid"
)

// Provider names a mail provider.
type Provider string

const (
	ProviderSendGrid Provider = "sendgrid"
	ProviderResend   Provider = "resend"
)

const defaultAddr = ":8080"

var ErrInvalid = errors.New("config: invalid configuration")

// Config is read once at start-up and never changed afterwards.
type Config struct {
	Addr            string        `env:"HTTP_ADDR"`
	Port            string        `env:"PORT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"65536"`
	StaticDir       string        `env:"STATIC_DIR"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel  slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat logger.Format `env:"LOG_FORMAT" envDefault:"json"`
	Sentry    logger.SentryConfig

	ReceiveEmail string   `env:"RECEIVE_EMAIL,required,notEmpty"`
	StrictEmail  bool     `env:"CONTACT_STRICT_EMAIL" envDefault:"false"`
	Provider     Provider `env:"MAIL_PROVIDER" envDefault:"sendgrid"`
	SendGrid     sendgrid.Config
	Resend       resend.Config
}

// Load reads a .env file when present, then the process environment.
// Explicit files must exist; the default .env is optional.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && (len(files) > 0 || !errors.Is(err, fs.ErrNotExist)) {
		return nil, fmt.Errorf("config: load env file: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return finish(cfg)
}

// FromMap builds a Config from an explicit environment, ignoring the process one.
func FromMap(environ map[string]string) (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: environ})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return finish(cfg)
}

func finish(cfg Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values env tags cannot express: the provider's own
// required settings and address syntax.
func (c Config) Validate() error {
	var errs []error

	if _, err := mail.ParseAddress(c.ReceiveEmail); err != nil {
		errs = append(errs, fmt.Errorf("RECEIVE_EMAIL: %w", err))
	}

	switch c.Provider {
	case ProviderSendGrid:
		if c.SendGrid.APIKey == "" {
			errs = append(errs, errors.New("SENDGRID_API_KEY is required"))
		}
		if c.SendGrid.From == "" {
			errs = append(errs, errors.New("SENDGRID_FROM is required"))
		} else if _, err := mail.ParseAddress(c.SendGrid.From); err != nil {
			errs = append(errs, fmt.Errorf("SENDGRID_FROM: %w", err))
		}
	case ProviderResend:
		if c.Resend.APIKey == "" {
			errs = append(errs, errors.New("RESEND_API_KEY is required"))
		}
		if c.Resend.SenderEmail == "" {
			errs = append(errs, errors.New("RESEND_FROM_EMAIL is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("MAIL_PROVIDER: unknown provider %q", c.Provider))
	}

	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Address is the listen address: HTTP_ADDR, else ":"+PORT, else ":8080".
func (c Config) Address() string {
	switch {
	case c.Addr != "":
		return c.Addr
	case c.Port != "":
		return ":" + c.Port
	default:
		return defaultAddr
	}
}
