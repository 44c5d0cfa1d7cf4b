package search

import (
	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// SEE estimates the material delta of the capture sequence on m.To that starts with
// m.From as the first attacker, with both sides playing their least valuable attacker
// first. It returns a signed score from the perspective of the side making m: positive
// means the exchange nets material. Sliding attackers revealed as pieces are removed from
// the square (x-rays) are taken into account.
func SEE(pos *board.Position, m board.Move) board.Score {
	from, to := m.From, m.To
	mover := pos.PieceAt(from)

	// Speculative gains are accumulated in ints: intermediate alternating sums can
	// exceed what board.Score holds even though the minimaxed result never does.
	var gain [32]int
	depth := 0
	gain[0] = int(capturedValue(pos, m))

	occ := pos.Occupied().Difference(board.BitMask(from))
	side := mover.Side().Reflect()
	next := mover.Class()

	for {
		attackers := attackersTo(pos, to, occ).Intersect(pos.SidePieces(side))
		if attackers.IsEmpty() {
			break
		}
		sq, class := leastValuableAttacker(pos, attackers, side)

		depth++
		gain[depth] = int(eval.MidValue(next)) - gain[depth-1]
		if next == board.King {
			// The king was the last piece to capture; the sequence cannot legally
			// continue past taking it, and the minimax pass below makes the king's
			// owner decline the preceding capture instead.
			break
		}

		occ = occ.Difference(board.BitMask(sq))
		next = class
		side = side.Reflect()
	}

	for depth > 0 {
		depth--
		if -gain[depth+1] < gain[depth] {
			gain[depth] = -gain[depth+1]
		}
	}
	return board.Score(gain[0])
}

// capturedValue is the value of the piece initially standing on m.To, or of the pawn
// taken en-passant; zero for a non-capturing move.
func capturedValue(pos *board.Position, m board.Move) board.Score {
	if !m.IsCapture() {
		return 0
	}
	return eval.MidValue(m.Captured.Class())
}

// attackersTo returns every piece, of either side, that attacks sq given the occupancy
// occ. occ may differ from the position's real occupancy to simulate pieces having been
// removed mid-exchange; attacker bitboards are still drawn from the real position, masked
// by occ, so previously-used attackers are excluded and any slider they were blocking is
// revealed.
func attackersTo(pos *board.Position, sq board.Square, occ board.Bitboard) board.Bitboard {
	diagonal := pos.Pieces(board.NewPiece(board.White, board.Bishop)).
		Union(pos.Pieces(board.NewPiece(board.Black, board.Bishop))).
		Union(pos.Pieces(board.NewPiece(board.White, board.Queen))).
		Union(pos.Pieces(board.NewPiece(board.Black, board.Queen)))
	straight := pos.Pieces(board.NewPiece(board.White, board.Rook)).
		Union(pos.Pieces(board.NewPiece(board.Black, board.Rook))).
		Union(pos.Pieces(board.NewPiece(board.White, board.Queen))).
		Union(pos.Pieces(board.NewPiece(board.Black, board.Queen)))
	knights := pos.Pieces(board.NewPiece(board.White, board.Knight)).
		Union(pos.Pieces(board.NewPiece(board.Black, board.Knight)))
	kings := pos.Pieces(board.NewPiece(board.White, board.King)).
		Union(pos.Pieces(board.NewPiece(board.Black, board.King)))

	var att board.Bitboard
	att = att.Union(board.KnightControl(sq).Intersect(knights))
	att = att.Union(board.KingControl(sq).Intersect(kings))
	att = att.Union(board.BishopControl(sq, occ).Intersect(diagonal))
	att = att.Union(board.RookControl(sq, occ).Intersect(straight))
	att = att.Union(board.PawnControl(board.Black, sq).Intersect(pos.Pieces(board.NewPiece(board.White, board.Pawn))))
	att = att.Union(board.PawnControl(board.White, sq).Intersect(pos.Pieces(board.NewPiece(board.Black, board.Pawn))))
	return att.Intersect(occ)
}

// leastValuableAttacker picks the cheapest piece of side among the given attacker
// squares.
func leastValuableAttacker(pos *board.Position, attackers board.Bitboard, side board.Side) (board.Square, board.Class) {
	best := board.None
	var bestClass board.Class
	var bestValue board.Score
	for _, sq := range attackers.Squares() {
		class := pos.PieceAt(sq).Class()
		if v := eval.MidValue(class); best == board.None || v < bestValue {
			best, bestClass, bestValue = sq, class, v
		}
	}
	return best, bestClass
}
