package contact

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Field names a Submission field.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Validation messages shown next to a field.
const (
	MsgNameRequired    = "Name is required"
	MsgEmailRequired   = "Email is required"
	MsgEmailInvalid    = "Please enter a valid email address"
	MsgMessageRequired = "Message is required"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is one contact form message. It is never persisted.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Normalize trims surrounding whitespace and applies Unicode NFC to every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    normalize(s.Name),
		Email:   normalize(s.Email),
		Message: normalize(s.Message),
	}
}

// IsZero reports whether every field is empty.
func (s Submission) IsZero() bool {
	return s == Submission{}
}

func normalize(v string) string {
	return norm.NFC.String(strings.TrimSpace(v))
}

// FieldErrors maps a field to its validation message. Empty means valid.
type FieldErrors map[Field]string

// Valid reports whether there are no field errors.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// Validate applies the form rules: every field is required after trimming
// and the email must look like an address.
func Validate(s Submission) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(s.Name) == "" {
		errs[FieldName] = MsgNameRequired
	}

	switch email := strings.TrimSpace(s.Email); {
	case email == "":
		errs[FieldEmail] = MsgEmailRequired
	case !IsEmail(email):
		errs[FieldEmail] = MsgEmailInvalid
	}

	if strings.TrimSpace(s.Message) == "" {
		errs[FieldMessage] = MsgMessageRequired
	}

	return errs
}

// IsEmail reports whether v matches the loose address pattern
// local@domain.tld with no whitespace and exactly one "@" before the dot.
func IsEmail(v string) bool {
	return emailPattern.MatchString(v)
}

// Missing returns the fields that are absent or empty, in form order.
// Whitespace-only values count as present.
func Missing(s Submission) []Field {
	var missing []Field
	if s.Name == "" {
		missing = append(missing, FieldName)
	}
	if s.Email == "" {
		missing = append(missing, FieldEmail)
	}
	if s.Message == "" {
		missing = append(missing, FieldMessage)
	}
	return missing
}
