package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
)

// Line is a sequence of moves, in UCI long algebraic notation, making up one recorded
// opening: Line{"e2e4", "e7e5", "g1f3"}.
type Line []string

// Book is an opening book: a LookupSource backed by a fixed set of recorded lines, keyed
// by the Zobrist key of the position reached after each prefix. A position with no
// recorded continuation misses, which the engine facade treats as "move on to the next
// lookup source, or search".
type Book struct {
	moves map[board.Key][]board.Move
}

// NewBook builds a Book from a set of recorded lines, replaying each against the standard
// starting position with zobrist so later lookups key against the same hash space as the
// live search position.
func NewBook(zobrist *board.ZobristTable, lines []Line) (*Book, error) {
	moves := map[board.Key]map[board.Move]bool{}

	for _, line := range lines {
		pos, err := fen.Parse(zobrist, fen.Initial)
		if err != nil {
			return nil, fmt.Errorf("invalid starting position: %w", err)
		}

		for _, uci := range line {
			m, err := pos.ResolveUCIMove(uci)
			if err != nil {
				return nil, fmt.Errorf("invalid line %v: %w", line, err)
			}

			key := pos.Key()
			if moves[key] == nil {
				moves[key] = map[board.Move]bool{}
			}
			moves[key][m] = true

			pos.Make(m)
		}
	}

	dedup := make(map[board.Key][]board.Move, len(moves))
	for key, set := range moves {
		list := make([]board.Move, 0, len(set))
		for m := range set {
			list = append(list, m)
		}
		// Deterministic ordering: no noise/randomness facet is carried over, so the first
		// continuation in UCI order is always the one played.
		sort.Slice(list, func(i, j int) bool { return list[i].UCI() < list[j].UCI() })
		dedup[key] = list
	}
	return &Book{moves: dedup}, nil
}

// Lookup returns the first recorded continuation, in UCI order, for pos, if any.
func (b *Book) Lookup(_ context.Context, pos *board.Position) (board.Move, bool, error) {
	list := b.moves[pos.Key()]
	if len(list) == 0 {
		return board.Move{}, false, nil
	}
	return list[0], true, nil
}
