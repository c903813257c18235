package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the record encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// UnmarshalText lets env parsers read Format values case-insensitively.
func (f *Format) UnmarshalText(b []byte) error {
	switch v := Format(strings.ToLower(strings.TrimSpace(string(b)))); v {
	case FormatJSON, FormatText:
		*f = v
		return nil
	case "":
		*f = FormatJSON
		return nil
	default:
		return fmt.Errorf("logger: unknown format %q", string(b))
	}
}

type options struct {
	output     io.Writer
	format     Format
	extractors []ContextExtractor
	level      slog.Level
}

// Option configures a logger built by New or NewWithSentry.
type Option func(*options)

// WithLevel sets the minimum level. Defaults to slog.LevelInfo.
func WithLevel(l slog.Level) Option {
	return func(o *options) { o.level = l }
}

// WithFormat selects JSON (default) or text output.
func WithFormat(f Format) Option {
	return func(o *options) {
		if f != "" {
			o.format = f
		}
	}
}

// WithOutput redirects records. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithExtractors adds context extractors applied on every log call.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) { o.extractors = append(o.extractors, extractors...) }
}

func newOptions(opts ...Option) *options {
	o := &options{
		output: os.Stdout,
		format: FormatJSON,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) baseHandler() slog.Handler {
	ho := &slog.HandlerOptions{Level: o.level}
	if o.format == FormatText {
		return slog.NewTextHandler(o.output, ho)
	}
	return slog.NewJSONHandler(o.output, ho)
}

// New creates a logger writing to stdout in JSON unless configured otherwise.
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithExtractors(middlewares.RequestIDExtractor()),
//	)
func New(opts ...Option) *slog.Logger {
	o := newOptions(opts...)
	return slog.New(NewLogHandlerDecorator(o.baseHandler(), o.extractors...))
}
