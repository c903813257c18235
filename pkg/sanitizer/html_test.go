package sanitizer_test

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"drops script with content", `<p>Hello</p><script>alert('x')</script>`, "Hello"},
		{"drops tags keeps text", `<p>Hello <strong>world</strong></p>`, "Hello world"},
		{"drops event handler element", `<img src="x" onerror="alert(1)">`, ""},
		{"keeps link text", `<a href="javascript:alert(1)">click</a>`, "click"},
		{"plain text untouched", "Looking forward to chatting", "Looking forward to chatting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	t.Run("keeps formatting", func(t *testing.T) {
		t.Parallel()

		out := sanitizer.SanitizeHTML(`<p>Hi <strong>there</strong><br></p><ul><li>one</li></ul>`)
		require.Contains(t, out, "<strong>there</strong>")
		require.Contains(t, out, "<li>one</li>")
		require.Contains(t, out, "<br")
	})

	t.Run("removes scripts and handlers", func(t *testing.T) {
		t.Parallel()

		out := sanitizer.SanitizeHTML(`<p onclick="x()">a</p><script>alert(1)</script>`)
		require.NotContains(t, out, "onclick")
		require.NotContains(t, out, "script")
		require.Contains(t, out, "a")
	})

	t.Run("links get nofollow and unsafe schemes are dropped", func(t *testing.T) {
		t.Parallel()

		out := sanitizer.SanitizeHTML(`<a href="https://example.com">ok</a><a href="javascript:alert(1)">bad</a>`)
		require.Contains(t, out, `href="https://example.com"`)
		require.Contains(t, out, `rel="nofollow"`)
		require.NotContains(t, out, "javascript:")
	})

	t.Run("headings are not allowed", func(t *testing.T) {
		t.Parallel()

		require.NotContains(t, sanitizer.SanitizeHTML(`<h2>Title</h2>`), "<h2>")
	})
}

func TestSanitizeEmailHTML(t *testing.T) {
	t.Parallel()

	t.Run("keeps headings, rules and button class", func(t *testing.T) {
		t.Parallel()

		out := sanitizer.SanitizeEmailHTML(`<h2>New contact</h2><hr><a href="mailto:ada@example.com" class="btn">Reply</a>`)
		require.Contains(t, out, "<h2>New contact</h2>")
		require.Contains(t, out, "<hr")
		require.Contains(t, out, `href="mailto:ada@example.com"`)
		require.Contains(t, out, `class="btn"`)
	})

	t.Run("still strips active content", func(t *testing.T) {
		t.Parallel()

		out := sanitizer.SanitizeEmailHTML(`<h1 onmouseover="x()">t</h1><iframe src="https://evil.test"></iframe><img src=x onerror=alert(1)>`)
		require.NotContains(t, out, "onmouseover")
		require.NotContains(t, out, "iframe")
		require.NotContains(t, out, "onerror")
	})

	t.Run("style attributes are removed", func(t *testing.T) {
		t.Parallel()

		out := sanitizer.SanitizeEmailHTML(`<p style="background:url(javascript:x)">p</p>`)
		require.NotContains(t, out, "style")
	})
}

func TestSanitizeHTMLCustom(t *testing.T) {
	t.Parallel()

	require.Equal(t, "<b>x</b>", sanitizer.SanitizeHTMLCustom("<b>x</b>", nil))

	p := bluemonday.NewPolicy()
	p.AllowElements("b")
	require.Equal(t, "<b>x</b>y", sanitizer.SanitizeHTMLCustom("<b>x</b><i>y</i>", p))
}
