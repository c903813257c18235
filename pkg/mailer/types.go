package mailer

import "net/mail"

// Tags are provider categories. A struct{} value marks a presence-only tag;
// other values become name/value pairs where the provider supports them.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Recipient formats a name and address per RFC 5322, quoting the name
// when needed. Returns the bare address when name is empty.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return (&mail.Address{Name: name, Address: email}).String()
}

// Email is a fully prepared message handed to a Sender.
type Email struct {
	Headers map[string]string
	Tags    Tags

	Subject string
	HTML    string
	Text    string // plain-text alternative

	From    string // overrides the provider's default sender
	ReplyTo string

	// IdempotencyKey lets providers that support it drop duplicate sends.
	IdempotencyKey string

	To          []string // at least one
	CC          []string
	BCC         []string
	Attachments []Attachment
}

// Attachment represents an email attachment.
type Attachment struct {
	Filename    string
	ContentType string
	ContentID   string // set for inline attachments
	Content     []byte
}
