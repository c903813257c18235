package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/folio"
	"github.com/dmitrymomot/folio/internal/relay"
	"github.com/dmitrymomot/folio/pkg/contact"
	"github.com/dmitrymomot/folio/pkg/id"
)

// ContactPath is the mail relay endpoint.
const ContactPath = "/api/contact"

// Response messages. Clients match on these, so they are part of the API.
const (
	msgMissingFields    = "Missing fields"
	msgInvalidEmail     = "Invalid email"
	msgSendError        = "Email send error"
	msgMethodNotAllowed = "Method Not Allowed"
)

// Relayer sends one contact submission.
type Relayer interface {
	Relay(ctx context.Context, sub contact.Submission, idempotencyKey string) error
}

// ContactHandler accepts contact form submissions and relays them by email.
type ContactHandler struct {
	relay Relayer
}

// NewContactHandler creates a contact handler backed by r.
func NewContactHandler(r Relayer) *ContactHandler {
	return &ContactHandler{relay: r}
}

// rejectedMethods are routed explicitly so none of them falls through to a
// static site mounted at "/".
var rejectedMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodOptions, http.MethodTrace, http.MethodConnect,
}

// Routes declares POST /api/contact. Every other method gets a 405.
// Methods chi does not know at all reach the app's method-not-allowed
// handler, which should be MethodNotAllowed.
func (h *ContactHandler) Routes(r folio.Router) {
	r.POST(ContactPath, h.submit)
	for _, m := range rejectedMethods {
		r.Method(m, ContactPath, MethodNotAllowed)
	}
}

type okResponse struct {
	OK bool `json:"ok"`
}

func (h *ContactHandler) submit(c folio.Context) error {
	var sub contact.Submission
	if err := c.BindJSON(&sub); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return folio.NewHTTPError(http.StatusRequestEntityTooLarge, "", folio.WithError(err))
		}
		return folio.NewHTTPError(http.StatusBadRequest, msgMissingFields,
			folio.WithError(errors.Join(relay.ErrMissingField, err)),
			folio.WithErrorCode("missing_fields"),
		)
	}

	err := h.relay.Relay(c, sub, idempotencyKey(c))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, okResponse{OK: true})
	case errors.Is(err, relay.ErrMissingField):
		return folio.NewHTTPError(http.StatusBadRequest, msgMissingFields,
			folio.WithError(err),
			folio.WithErrorCode("missing_fields"),
		)
	case errors.Is(err, relay.ErrInvalidEmail):
		return folio.NewHTTPError(http.StatusBadRequest, msgInvalidEmail,
			folio.WithError(err),
			folio.WithErrorCode("invalid_email"),
		)
	default:
		// Provider detail stays in the logs.
		return folio.NewHTTPError(http.StatusInternalServerError, msgSendError,
			folio.WithError(err),
			folio.WithErrorCode("send_failed"),
		)
	}
}

// MethodNotAllowed answers 405 in plain text. On the contact endpoint it
// also advertises POST.
func MethodNotAllowed(c folio.Context) error {
	if c.Request().URL.Path == ContactPath {
		c.SetHeader("Allow", http.MethodPost)
	}
	return folio.NewHTTPError(http.StatusMethodNotAllowed, msgMethodNotAllowed,
		folio.WithError(relay.ErrInvalidMethod),
	)
}

// idempotencyKey returns the client's Idempotency-Key when it is a UUID,
// otherwise a fresh one.
func idempotencyKey(c folio.Context) string {
	if k := c.Header("Idempotency-Key"); id.Valid(k) {
		return k
	}
	return id.New()
}
