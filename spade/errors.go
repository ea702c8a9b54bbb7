package spade

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies a failure of Engine.Configure or Engine.Execute (spec.md §7).
type Kind int

const (
	// ErrConfiguration marks a bad call: missing/empty sequences, or an
	// invalid min_support/max_length/top_n.
	ErrConfiguration Kind = iota
	// ErrDomain marks an item that could not be compared/hashed.
	ErrDomain
	// ErrInvariant marks an internal guard failure — a bug, never an
	// expected outcome of valid input.
	ErrInvariant
)

func (k Kind) String() string {
	switch k {
	case ErrConfiguration:
		return "configuration"
	case ErrDomain:
		return "domain"
	case ErrInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Error is returned by Engine.Configure and Engine.Execute on failure. It carries a Kind tag, a
// human-readable description, and an ID minted at the point of failure so
// that a caller logging out-of-process can correlate a returned error with
// engine-internal diagnostics from the same run.
//
// This mirrors the teacher repo's sentinel-error idiom (errors.New plus
// errors.Is comparison, see crdt.ErrCursorOutOfRange and friends) while
// adding the correlation ID spec.md §7 asks for ("a distinguishable failure
// value with a kind tag and a human-readable description").
type Error struct {
	Kind    Kind
	Message string
	ID      uuid.UUID
}

func (e *Error) Error() string {
	return fmt.Sprintf("spade: %s: %s (id=%s)", e.Kind, e.Message, e.ID)
}

// Is supports errors.Is comparisons against the Kind-only sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		ID:      uuid.New(),
	}
}

// Sentinel errors for errors.Is comparison against a Kind, ignoring Message
// and ID. Example: errors.Is(err, spade.ErrBadConfiguration).
var (
	ErrBadConfiguration = &Error{Kind: ErrConfiguration}
	ErrBadDomain        = &Error{Kind: ErrDomain}
	ErrBrokenInvariant  = &Error{Kind: ErrInvariant}
)
