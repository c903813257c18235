package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrymomot/folio/pkg/contactform"
)

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22C55E"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	fieldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	detailStyle  = lipgloss.NewStyle().Faint(true)
)

// terminalNotifier prints form outcomes; styling is dropped when w is not a terminal.
func terminalNotifier(w io.Writer) contactform.Notifier {
	styled := isTerminal(w)
	return contactform.NotifierFunc(func(n contactform.Notification) {
		style := successStyle
		if n.Level == contactform.LevelError {
			style = errorStyle
		}
		msg := n.Message
		if styled {
			msg = style.Render(msg)
		}
		fmt.Fprintln(w, msg)

		if n.Err != nil {
			detail := "  " + n.Err.Error()
			if styled {
				detail = detailStyle.Render(detail)
			}
			fmt.Fprintln(w, detail)
		}
	})
}
