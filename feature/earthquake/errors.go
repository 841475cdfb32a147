package earthquake

import (
	"errors"
	"strings"
)

// Sentinel errors surfaced by the service, mapped to status codes by the handler.
var (
	// ErrInvalidSource signals an unsupported source token.
	ErrInvalidSource = errors.New("invalid source")
	// ErrEventNotFound signals a lookup by identifier that matched nothing.
	ErrEventNotFound = errors.New("event not found")
	// ErrDuplicateEvent signals a uniqueness violation on eventId.
	ErrDuplicateEvent = errors.New("duplicate eventId")
	// ErrStoreUnavailable signals that no local store connection is configured.
	ErrStoreUnavailable = errors.New("local store unavailable")
	// ErrArchiveUnavailable signals that no payload archive is configured.
	ErrArchiveUnavailable = errors.New("payload archive unavailable")
)

// ValidationError reports structurally invalid submission input.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "invalid submission: " + strings.Join(e.Reasons, "; ")
}
