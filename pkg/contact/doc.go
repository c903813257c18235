// Package contact defines the contact form submission and the rules shared by
// the form controller and the mail relay.
//
// Validate holds the form rules. Missing is the weaker presence check the
// relay applies; it does not look at the email shape.
package contact
