// Package sanitizer cleans untrusted HTML with bluemonday policies.
package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	emailPolicy  *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		allowFormatting(safePolicy)

		// Rendered email bodies also carry headings, rules and the reply button.
		emailPolicy = bluemonday.NewPolicy()
		allowFormatting(emailPolicy)
		emailPolicy.AllowElements("h1", "h2", "h3", "h4", "hr")
		emailPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a")
	})
}

func allowFormatting(p *bluemonday.Policy) {
	p.AllowStandardURLs()
	p.AllowElements(
		"p", "br",
		"strong", "b", "em", "i",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
	)
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
}

// StripHTML removes every tag and returns escaped plain text.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// SanitizeHTML keeps basic formatting (paragraphs, emphasis, lists, code, links)
// and drops scripts, event handlers and non-http(s)/mailto URLs.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}

// SanitizeEmailHTML is SanitizeHTML plus headings, horizontal rules and
// classed links, which is what the mailer's markdown renderer emits.
func SanitizeEmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}

// SanitizeHTMLCustom applies a custom bluemonday policy.
// Returns input unchanged if policy is nil.
func SanitizeHTMLCustom(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
