package eval

import "github.com/corvidchess/corvid/pkg/board"

// Evaluate returns a static score for pos from the perspective of the side to move:
// positive favors the side to move, negative favors the opponent. It sums the phase
// independent facets (castling, pawn structure, development, knight rim) with the
// phase-blended ones (material, piece-square tables), then flips sign for Black.
func Evaluate(pos *board.Position) board.Score {
	phase := Phase(pos)

	materialMid, materialEnd := Material(pos)
	pstMid, pstEnd := PieceSquare(pos)

	white := Interpolate(materialMid+pstMid, materialEnd+pstEnd, phase) +
		Castling(pos) + Structure(pos) + Development(pos) + KnightRim(pos)

	return white * board.Score(pos.Active().Parity())
}
