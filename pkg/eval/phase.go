// Package eval implements the static position evaluator: a phased sum of independent
// facets (material, piece-square tables, castling, pawn structure, development,
// knight-rim). Material and the piece-square tables contribute a midgame and endgame
// score interpolated by phase; the other facets contribute a single phase-independent score.
package eval

import "github.com/corvidchess/corvid/pkg/board"

// Phase returns a value in [0, 256]: 0 at the start of the game, rising toward 256 as
// material is removed from the board. Facets interpolate midgame/endgame scores by this
// value rather than by move count, so a position stripped bare by early trades is scored
// as an endgame even on move 10. The underlying material count is maintained
// incrementally by Position's make/unmake, so this is a constant-time read.
func Phase(pos *board.Position) int {
	counter := board.TotalPhaseWeight - pos.PhaseWeight()
	if counter < 0 {
		// Promotions can push the on-board material past the starting total; score any
		// such position as a full midgame.
		counter = 0
	}
	return (counter*256 + board.TotalPhaseWeight/2) / board.TotalPhaseWeight
}

// Interpolate blends a midgame and endgame score by phase (0..256): phase 0 is pure mid,
// phase 256 is pure end.
func Interpolate(mid, end board.Score, phase int) board.Score {
	return board.Score((int(mid)*(256-phase) + int(end)*phase) / 256)
}
