package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/folio/pkg/contact"
	"github.com/dmitrymomot/folio/pkg/contactform"
)

func newSendCmd() *cobra.Command {
	var (
		endpoint string
		sub      contact.Submission
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Submit a contact message to a running server",
		Long: `Submit a contact message the same way the site's form does.

The message is validated locally first. Pass --message - to read it from stdin.`,
		Example: `  folio send --name Ada --email ada@example.com --message "Hello"
  echo "Hello" | folio send --name Ada --email ada@example.com --message -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sub.Message == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read message: %w", err)
				}
				sub.Message = string(b)
			}
			return send(cmd, endpoint, sub)
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "http://localhost:8080/api/contact", "contact endpoint URL")
	cmd.Flags().StringVar(&sub.Name, "name", "", "your name")
	cmd.Flags().StringVar(&sub.Email, "email", "", "your email address")
	cmd.Flags().StringVar(&sub.Message, "message", "", "message text, or - for stdin")
	return cmd
}

func send(cmd *cobra.Command, endpoint string, sub contact.Submission) error {
	out := cmd.OutOrStdout()
	form := contactform.New(
		contactform.NewHTTPTransport(endpoint),
		contactform.WithNotifier(terminalNotifier(out)),
	)
	form.Fill(sub)

	err := form.Submit(cmd.Context())
	var invalid *contactform.ValidationError
	if errors.As(err, &invalid) {
		printFieldErrors(out, invalid.Fields)
	}
	return err
}

func printFieldErrors(w io.Writer, errs contact.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)

	styled := isTerminal(w)
	for _, f := range fields {
		label := f + ":"
		if styled {
			label = fieldStyle.Render(label)
		}
		fmt.Fprintf(w, "%s %s\n", label, errs[contact.Field(f)])
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
