package eval

import "github.com/corvidchess/corvid/pkg/board"

// materialMid and materialEnd are per-class material values in centipawns, from a
// published reference (the values commonly attributed to the CPW/Fruit tuning), indexed
// by board.Class. The King's value never enters the balance below (both sides always
// have exactly one), but it must dominate any exchange sequence it takes part in, so it
// carries a figure larger than everything else combined.
var materialMid = [board.NumClasses]board.Score{
	board.Pawn: 230, board.Knight: 782, board.Bishop: 830,
	board.Rook: 1289, board.Queen: 2529, board.King: kingValue,
}
var materialEnd = [board.NumClasses]board.Score{
	board.Pawn: 300, board.Knight: 865, board.Bishop: 918,
	board.Rook: 1378, board.Queen: 2687, board.King: kingValue,
}

// kingValue stands in for the reference tables' 100000: board.Score is 16 bits, so the
// king instead gets the largest figure the type holds. Any value that exceeds the sum of
// everything capturable serves the same purpose in exchange evaluation.
const kingValue = board.MaxScore

// Material returns the midgame/endgame material balance, White minus Black.
func Material(pos *board.Position) (mid, end board.Score) {
	for class := board.Pawn; class < board.King; class++ {
		n := pos.Pieces(board.NewPiece(board.White, class)).PopCount() -
			pos.Pieces(board.NewPiece(board.Black, class)).PopCount()
		mid += board.Score(n) * materialMid[class]
		end += board.Score(n) * materialEnd[class]
	}
	return mid, end
}

// MidValue returns the midgame material value of a piece class, in centipawns. Exchange
// evaluation, quiescence categorization and move ordering all price material with this
// single table so their thresholds stay on the same scale as the static evaluation.
func MidValue(c board.Class) board.Score {
	return materialMid[c]
}
