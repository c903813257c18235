package middlewares_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/folio/internal"
)

// logEntry is one captured call to a testContext Log method.
type logEntry struct {
	level slog.Level
	msg   string
	attrs []any
}

type testContext struct {
	response *internal.ResponseWriter
	request  *http.Request

	mu   sync.Mutex
	logs []logEntry
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{
		response: internal.NewResponseWriter(w),
		request:  r,
	}
}

func (c *testContext) Request() *http.Request        { return c.request }
func (c *testContext) Response() http.ResponseWriter { return c.response }
func (c *testContext) Context() context.Context      { return c.request.Context() }
func (c *testContext) Param(string) string           { return "" }
func (c *testContext) Query(name string) string      { return c.request.URL.Query().Get(name) }
func (c *testContext) Header(name string) string     { return c.request.Header.Get(name) }
func (c *testContext) SetHeader(name, value string)  { c.response.Header().Set(name, value) }

func (c *testContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *testContext) String(code int, s string) error {
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *testContext) NoContent(code int) error { c.response.WriteHeader(code); return nil }
func (c *testContext) BindJSON(v any) error     { return json.NewDecoder(c.request.Body).Decode(v) }
func (c *testContext) Written() bool            { return c.response.Written() }

func (c *testContext) Error(code int, message string, opts ...internal.HTTPErrorOption) *internal.HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

func (c *testContext) ResponseWriter() *internal.ResponseWriter { return c.response }
func (c *testContext) Logger() *slog.Logger                     { return slog.Default() }

func (c *testContext) LogDebug(msg string, attrs ...any) { c.log(slog.LevelDebug, msg, attrs) }
func (c *testContext) LogInfo(msg string, attrs ...any)  { c.log(slog.LevelInfo, msg, attrs) }
func (c *testContext) LogWarn(msg string, attrs ...any)  { c.log(slog.LevelWarn, msg, attrs) }
func (c *testContext) LogError(msg string, attrs ...any) { c.log(slog.LevelError, msg, attrs) }

func (c *testContext) log(level slog.Level, msg string, attrs []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logs = append(c.logs, logEntry{level: level, msg: msg, attrs: attrs})
}

func (c *testContext) entries() []logEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]logEntry(nil), c.logs...)
}

func (c *testContext) Set(key, value any) {
	c.request = c.request.WithContext(context.WithValue(c.request.Context(), key, value))
}

func (c *testContext) Get(key any) any              { return c.request.Context().Value(key) }
func (c *testContext) Deadline() (time.Time, bool) { return c.request.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}       { return c.request.Context().Done() }
func (c *testContext) Err() error                  { return c.request.Context().Err() }
func (c *testContext) Value(key any) any           { return c.request.Context().Value(key) }

// attr finds a slog.Attr by key among logged attrs.
func attr(attrs []any, key string) (slog.Attr, bool) {
	for _, a := range attrs {
		if sa, ok := a.(slog.Attr); ok && sa.Key == key {
			return sa, true
		}
	}
	return slog.Attr{}, false
}
