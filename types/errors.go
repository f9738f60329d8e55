package types

import "errors"

const (
	ErrInvalidInput  = "Invalid input"
	ErrDatabaseError = "Database error"
	ErrUnauthorized  = "Unauthorized access"
	ErrInternalError = "internal server error"
)

// Domain errors returned by the service layer. Handlers map these to
// HTTP status codes.
var (
	ErrNoActiveConfig = errors.New("No active salary configuration found")
	ErrNotFound       = errors.New("record not found")
	ErrUserNotFound   = errors.New("User not found")
)
