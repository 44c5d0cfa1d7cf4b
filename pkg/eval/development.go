package eval

import "github.com/corvidchess/corvid/pkg/board"

// developmentPlyLimit is how many half-moves into the game the undeveloped-minor penalty
// still applies; past this point a piece sitting on its home square is a deliberate choice,
// not slow development.
const developmentPlyLimit = 20

const undevelopedPenalty board.Score = 15

var whiteMinorHome = board.BitMask(board.NewSquare(board.FileB, board.Rank1)).
	Union(board.BitMask(board.NewSquare(board.FileC, board.Rank1))).
	Union(board.BitMask(board.NewSquare(board.FileF, board.Rank1))).
	Union(board.BitMask(board.NewSquare(board.FileG, board.Rank1)))

var blackMinorHome = board.BitMask(board.NewSquare(board.FileB, board.Rank8)).
	Union(board.BitMask(board.NewSquare(board.FileC, board.Rank8))).
	Union(board.BitMask(board.NewSquare(board.FileF, board.Rank8))).
	Union(board.BitMask(board.NewSquare(board.FileG, board.Rank8)))

// Development returns the development contribution, White minus Black: a penalty per
// knight or bishop still parked on its home square, but only in the opening.
func Development(pos *board.Position) board.Score {
	if pos.Ply() >= developmentPlyLimit {
		return 0
	}
	return developmentFor(pos, board.White) - developmentFor(pos, board.Black)
}

func developmentFor(pos *board.Position, s board.Side) board.Score {
	home := whiteMinorHome
	if s == board.Black {
		home = blackMinorHome
	}
	minors := pos.Pieces(board.NewPiece(s, board.Knight)).Union(pos.Pieces(board.NewPiece(s, board.Bishop)))
	n := minors.Intersect(home).PopCount()
	return -board.Score(n) * undevelopedPenalty
}
