package relay

import (
	"strings"
)

// markdownSpecial lists the ASCII punctuation goldmark treats as markup.
const markdownSpecial = "\\`*_{}[]()<>#+-.!|~&=\"'"

const (
	nbsp     = "&nbsp;"
	tabWidth = 4
)

// escapeMarkdown makes s render as literal text: every markdown punctuation
// character is backslash-escaped and leading indentation becomes non-breaking
// spaces, so no line turns into a code block yet the layout survives.
// Line breaks are kept; whitespace-only lines become blank.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")

	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		body := strings.TrimLeft(line, " \t")
		if body == "" {
			continue
		}
		for _, r := range line[:len(line)-len(body)] {
			if r == '\t' {
				b.WriteString(strings.Repeat(nbsp, tabWidth))
				continue
			}
			b.WriteString(nbsp)
		}
		for _, r := range body {
			if r < 0x80 && strings.ContainsRune(markdownSpecial, r) {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// replyable reports whether addr can go into a mailto link without breaking
// the button syntax.
func replyable(addr string) bool {
	return !strings.ContainsAny(addr, "()[]<> ")
}
