// Package handlers declares the HTTP routes of the portfolio backend.
package handlers
