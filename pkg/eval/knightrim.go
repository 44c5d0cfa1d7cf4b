package eval

import "github.com/corvidchess/corvid/pkg/board"

// rimPenalty charges a knight for sitting on the board's outer edge, where it controls
// fewer squares than one centralized.
const rimPenalty board.Score = 20

// KnightRim returns the knight-rim contribution, White minus Black.
func KnightRim(pos *board.Position) board.Score {
	white := pos.Pieces(board.NewPiece(board.White, board.Knight)).Intersect(board.Rim).PopCount()
	black := pos.Pieces(board.NewPiece(board.Black, board.Knight)).Intersect(board.Rim).PopCount()
	return -board.Score(white-black) * rimPenalty
}
