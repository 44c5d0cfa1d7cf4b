package engine

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
)

// LookupSource is the capability set a polymorphic move provider (opening book, endgame
// tablebase) exposes to the engine facade: lookup(position) -> optional move. Concrete
// providers live outside this package; only the opening book (Book, below) is implemented
// here, since tablebase storage and query are out of scope.
//
// ok is false whenever the source has no answer, whether because the position is absent
// or the source has nothing further to say for the rest of the game; a non-nil err reports
// an I/O failure distinct from a clean miss, which the facade treats identically (fall
// through to the next source). A source must never return an illegal move.
type LookupSource interface {
	Lookup(ctx context.Context, pos *board.Position) (move board.Move, ok bool, err error)
}

// NoLookup is a LookupSource that never has an answer. It is the zero value behavior when
// an engine is constructed without an opening book or tablebase.
type NoLookup struct{}

func (NoLookup) Lookup(context.Context, *board.Position) (board.Move, bool, error) {
	return board.Move{}, false, nil
}
