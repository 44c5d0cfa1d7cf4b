package eval

import "github.com/corvidchess/corvid/pkg/board"

// castledBonus rewards a side that has actually castled; lostRightPenalty is charged per
// corner right a side no longer holds without having castled, since forfeiting the right
// (e.g. by moving the king without castling) gets none of the safety benefit.
const castledBonus board.Score = 40
const lostRightPenalty board.Score = 12

// Castling returns the castling-safety contribution, White minus Black. It is not phase
// dependent: king safety from castling matters most in the middlegame, but the facets
// that already collapse toward zero via the phase-blended piece-square table (notably the
// king's own table) account for the endgame transition, so this facet applies its full
// value regardless of phase.
func Castling(pos *board.Position) board.Score {
	return castlingFor(pos, board.White) - castlingFor(pos, board.Black)
}

func castlingFor(pos *board.Position, s board.Side) board.Score {
	if pos.HasCastled(s) {
		return castledBonus
	}

	kingside, queenside := cornersOf(s)
	lost := 0
	if !pos.Rights().Has(kingside) {
		lost++
	}
	if !pos.Rights().Has(queenside) {
		lost++
	}
	return -board.Score(lost) * lostRightPenalty
}

func cornersOf(s board.Side) (kingside, queenside board.Corner) {
	if s == board.White {
		return board.WhiteKingside, board.WhiteQueenside
	}
	return board.BlackKingside, board.BlackQueenside
}
