package board

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a board.Error, so callers can branch on failure category without
// string matching.
type ErrorKind uint8

const (
	// Parse indicates malformed external input: FEN, UCI move text, SAN movetext.
	Parse ErrorKind = iota
	// IllegalMove indicates a syntactically well-formed move that is not legal in the
	// position it was applied to.
	IllegalMove
	// InvariantViolation indicates an internal consistency check failed, e.g. a position
	// with zero or two kings for a side, or a pawn on a back rank.
	InvariantViolation
	// EmptyHistory indicates Unmake was called on a position with no moves to undo.
	EmptyHistory
	// ResourceLimit indicates a requested resource size is out of range, e.g. a
	// transposition table size of zero or above the supported maximum.
	ResourceLimit
	// NotFound indicates no move is available for the given position, e.g. the side to
	// move has no legal move.
	NotFound
)

func (k ErrorKind) String() string {
	switch k {
	case Parse:
		return "parse"
	case IllegalMove:
		return "illegal_move"
	case InvariantViolation:
		return "invariant_violation"
	case EmptyHistory:
		return "empty_history"
	case ResourceLimit:
		return "resource_limit"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the error type returned throughout the board package. It carries a Kind so
// callers can distinguish "bad input" from "internal bug" from "no answer" without
// resorting to errors.As over a long list of concrete types.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Msg)
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// NewError builds an *Error of the given Kind, for use by other packages (search,
// engine) that want to report failures through the same Kind taxonomy instead of
// inventing their own error types.
func NewError(kind ErrorKind, format string, args ...interface{}) error {
	return newError(kind, format, args...)
}

// KindOf returns the Kind of err if it is, or wraps, a *board.Error; ok=false otherwise.
func KindOf(err error) (ErrorKind, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}
