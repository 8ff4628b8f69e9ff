package generation

import (
	"errors"
	"fmt"
)

// Recoverable placement failures. Callers abandon the current generation
// request and may retry later or from a different position.
var (
	// ErrNoFit means the packer found no positive-area space for a candidate
	ErrNoFit = errors.New("no room fits here")
	// ErrIterationCap means Expand ran out of placement attempts
	ErrIterationCap = errors.New("expand attempt budget exhausted")
)

// InvariantError reports a broken packing or neighbor invariant. It signals
// a bug in generation rather than a runtime condition.
type InvariantError struct {
	Room   RoomID
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("room %d: invariant violated: %s", e.Room, e.Reason)
}

func invariant(room RoomID, format string, args ...any) error {
	return &InvariantError{Room: room, Reason: fmt.Sprintf(format, args...)}
}

// IsInvariant reports whether err carries an InvariantError
func IsInvariant(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
