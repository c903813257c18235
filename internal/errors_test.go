package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("message is the error string", func(t *testing.T) {
		t.Parallel()

		err := internal.ErrBadRequest("Missing fields", internal.WithErrorCode("missing_fields"))
		require.Equal(t, "Missing fields", err.Error())
		require.Equal(t, http.StatusBadRequest, err.StatusCode())
		require.Equal(t, "Bad Request", err.StatusText())
		require.Equal(t, "missing_fields", err.ErrorCode)
	})

	t.Run("wrapped cause stays reachable", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("sendgrid: 401")
		err := internal.ErrInternal("Email send error", internal.WithError(cause), internal.WithRequestID("r-1"))
		require.ErrorIs(t, err, cause)
		require.Equal(t, "r-1", err.RequestID)
		require.NotContains(t, err.Error(), "401")
	})

	t.Run("constructors", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, http.StatusMethodNotAllowed, internal.ErrMethodNotAllowed("m").Code)
		require.Equal(t, http.StatusNotFound, internal.ErrNotFound("n").Code)
		require.Equal(t, http.StatusServiceUnavailable, internal.ErrServiceUnavailable("s").Code)
	})
}

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	httpErr := internal.ErrBadRequest("bad")

	require.Same(t, httpErr, internal.AsHTTPError(httpErr))
	require.Same(t, httpErr, internal.AsHTTPError(fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", httpErr))))
	require.Same(t, httpErr, internal.AsHTTPError(errors.Join(errors.New("x"), httpErr)))
	require.Nil(t, internal.AsHTTPError(errors.New("plain")))
	require.Nil(t, internal.AsHTTPError(nil))

	require.True(t, internal.IsHTTPError(httpErr))
	require.False(t, internal.IsHTTPError(nil))
}
