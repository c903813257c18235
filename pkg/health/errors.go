package health

import "errors"

// ErrNotConfigured is returned by checks whose dependency was never set up.
var ErrNotConfigured = errors.New("health: dependency not configured")
