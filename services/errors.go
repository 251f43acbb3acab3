package services

import (
	"errors"
	"strings"
)

var (
	// ErrClaimNotFound matches standard 404 behavior for damage claims.
	ErrClaimNotFound = errors.New("damage claim not found")

	// ErrInquiryNotFound matches standard 404 behavior for sales inquiries.
	ErrInquiryNotFound = errors.New("sales inquiry not found")

	// ErrInvalidState protects the state machines. Decisions are only
	// accepted from Pending; replacements only against approved claims.
	ErrInvalidState = errors.New("operation not permitted in current state")

	// ErrReplacementExists enforces at-most-once replacement attachment.
	ErrReplacementExists = errors.New("replacement already attached to this claim")

	// ErrTrackingConflict is returned when tracking-ID generation keeps
	// colliding after the bounded retry loop.
	ErrTrackingConflict = errors.New("could not assign a unique tracking ID")
)

// ValidationError reports caller-supplied decision data violating a field
// constraint (e.g. approved pieces out of range).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsUniqueViolation sniffs driver errors for a uniqueness-constraint
// failure. String matching keeps this working with both PostgreSQL and
// SQLite, same as the duplicate checks in the controllers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint")
}
