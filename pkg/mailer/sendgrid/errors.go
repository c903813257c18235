package sendgrid

import "fmt"

// StatusError is returned when SendGrid answers with a non-2xx status.
type StatusError struct {
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sendgrid: unexpected status %d: %s", e.StatusCode, e.Body)
}
