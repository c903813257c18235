package contactform

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/folio/pkg/contact"
)

// Form is the contact form controller. It holds the entered values, the
// last validation result and the pending flag. Safe for concurrent use.
type Form struct {
	transport Transport
	notifier  Notifier
	newKey    func() string

	mu      sync.Mutex
	values  contact.Submission
	errors  contact.FieldErrors
	key     string
	pending bool
}

// Option configures a Form.
type Option func(*Form)

// WithNotifier sets where outcome notifications go. Defaults to discarding them.
func WithNotifier(n Notifier) Option {
	return func(f *Form) {
		if n != nil {
			f.notifier = n
		}
	}
}

// WithKeyGenerator replaces the idempotency key generator (uuid v4 by default).
func WithKeyGenerator(fn func() string) Option {
	return func(f *Form) {
		if fn != nil {
			f.newKey = fn
		}
	}
}

// New creates an empty form that submits through t.
func New(t Transport, opts ...Option) *Form {
	f := &Form{
		transport: t,
		notifier:  discardNotifier{},
		newKey:    uuid.NewString,
		errors:    contact.FieldErrors{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Set updates one field. Any edit drops the idempotency key, so the next
// submission counts as a new message.
func (f *Form) Set(field contact.Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case contact.FieldName:
		f.values.Name = value
	case contact.FieldEmail:
		f.values.Email = value
	case contact.FieldMessage:
		f.values.Message = value
	default:
		return ErrUnknownField
	}
	f.key = ""
	return nil
}

// Fill replaces all fields at once.
func (f *Form) Fill(s contact.Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = s
	f.key = ""
}

// Values returns the current field values.
func (f *Form) Values() contact.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns the result of the last validation.
func (f *Form) Errors() contact.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errors)
}

// Pending reports whether a submission is in flight.
// UIs disable the submit control while it is true.
func (f *Form) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Validate checks the current values and records the field errors.
func (f *Form) Validate() contact.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = contact.Validate(f.values)
	return maps.Clone(f.errors)
}

// Reset clears values, errors and the idempotency key.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

func (f *Form) reset() {
	f.values = contact.Submission{}
	f.errors = contact.FieldErrors{}
	f.key = ""
}

// Submit validates and, when valid, makes exactly one Transport call.
// It returns a *ValidationError (matching ErrInvalid) without dispatching when
// validation fails, and ErrPending while another submission is in flight.
// On success the form is reset; on failure the values are kept for a retry
// that reuses the same idempotency key.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.pending {
		f.mu.Unlock()
		return ErrPending
	}
	f.errors = contact.Validate(f.values)
	if !f.errors.Valid() {
		fields := maps.Clone(f.errors)
		f.mu.Unlock()
		return &ValidationError{Fields: fields}
	}
	if f.key == "" {
		f.key = f.newKey()
	}
	f.pending = true
	submission, key := f.values.Normalize(), f.key
	f.mu.Unlock()

	err := f.transport.Submit(ctx, submission, key)

	f.mu.Lock()
	f.pending = false
	if err == nil {
		f.reset()
	}
	f.mu.Unlock()

	if err != nil {
		f.notifier.Notify(Notification{Level: LevelError, Message: MsgFailure, Err: err})
		return err
	}
	f.notifier.Notify(Notification{Level: LevelSuccess, Message: MsgSuccess})
	return nil
}

// SubmitAsync runs Submit in a goroutine so the caller's event loop is not
// blocked. The returned channel receives the result and is then closed.
func (f *Form) SubmitAsync(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- f.Submit(ctx)
	}()
	return done
}
