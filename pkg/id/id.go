// Package id generates identifiers for requests and submissions.
package id

import "github.com/google/uuid"

// New returns a random (version 4) UUID string.
func New() string {
	return uuid.NewString()
}

// NewSortable returns a time-ordered (version 7) UUID string, so IDs sort by
// creation time in logs. Falls back to a random UUID if the clock source fails.
func NewSortable() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
