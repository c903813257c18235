package contactform_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/contact"
	"github.com/dmitrymomot/folio/pkg/contactform"
)

func TestHTTPTransport_Submit(t *testing.T) {
	t.Parallel()

	var (
		got    contact.Submission
		key    string
		ctype  string
		method string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		ctype = r.Header.Get("Content-Type")
		key = r.Header.Get(contactform.IdempotencyHeader)
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tr := contactform.NewHTTPTransport(srv.URL+"/api/contact", contactform.WithHTTPClient(srv.Client()))
	s := contact.Submission{Name: "Ada", Email: "ada@example.com", Message: "Hi"}

	require.NoError(t, tr.Submit(context.Background(), s, "key-1"))
	require.Equal(t, http.MethodPost, method)
	require.Equal(t, "application/json", ctype)
	require.Equal(t, "key-1", key)
	require.Equal(t, s, got)
}

func TestHTTPTransport_NonOKIsFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		body   string
	}{
		{http.StatusBadRequest, "Missing fields"},
		{http.StatusMethodNotAllowed, "Method Not Allowed"},
		{http.StatusInternalServerError, "Email send error"},
		{http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			tr := contactform.NewHTTPTransport(srv.URL, contactform.WithHTTPClient(srv.Client()))
			err := tr.Submit(context.Background(), contact.Submission{Name: "a", Email: "b", Message: "c"}, "")

			var statusErr *contactform.StatusError
			require.True(t, errors.As(err, &statusErr))
			require.Equal(t, tt.status, statusErr.StatusCode)
			require.Equal(t, tt.body, statusErr.Body)
		})
	}
}

func TestHTTPTransport_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	tr := contactform.NewHTTPTransport(url)
	err := tr.Submit(context.Background(), contact.Submission{}, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "contactform: send request")
}

func TestForm_WithHTTPTransport(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Email send error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	var notified contactform.Notification
	f := contactform.New(
		contactform.NewHTTPTransport(srv.URL, contactform.WithHTTPClient(srv.Client())),
		contactform.WithNotifier(contactform.NotifierFunc(func(n contactform.Notification) { notified = n })),
	)
	f.Fill(contact.Submission{Name: "Ada", Email: "ada@example.com", Message: "Hi"})

	err := f.Submit(context.Background())
	var statusErr *contactform.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, "Email send error", statusErr.Body)
	require.Equal(t, contactform.MsgFailure, notified.Message)
	require.Equal(t, "Ada", f.Values().Name)
}
