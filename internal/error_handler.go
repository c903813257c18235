package internal

import (
	"log/slog"
	"net/http"
)

// DefaultErrorHandler writes errors as plain text.
// An HTTPError renders its status code and Message; anything else is logged
// and rendered as a bare 500 so internal detail never reaches the client.
func DefaultErrorHandler(c Context, err error) error {
	if httpErr := AsHTTPError(err); httpErr != nil {
		if httpErr.Code >= http.StatusInternalServerError {
			c.LogError("request failed",
				slog.Int("status", httpErr.Code),
				slog.String("error_code", httpErr.ErrorCode),
				slog.Any("error", err),
			)
		}
		msg := httpErr.Message
		if msg == "" {
			msg = httpErr.StatusText()
		}
		return c.String(httpErr.Code, msg)
	}

	c.LogError("unhandled error", slog.Any("error", err))
	return c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
