package eval

import "github.com/corvidchess/corvid/pkg/board"

const doubledPenalty board.Score = 10
const isolatedPenalty board.Score = 15

// passedBonusByRank scales a passed pawn's bonus by how far advanced it is, indexed by
// the pawn's rank from its own side's perspective (Rank2 = just off home, Rank7 = one
// step from promoting).
var passedBonusByRank = [board.NumRanks]board.Score{
	board.Rank2: 10, board.Rank3: 10, board.Rank4: 20,
	board.Rank5: 35, board.Rank6: 60, board.Rank7: 100,
}

// Structure returns the pawn-structure contribution, White minus Black: a penalty per
// doubled pawn, a penalty per isolated pawn, and a bonus per passed pawn scaled by rank.
func Structure(pos *board.Position) board.Score {
	return structureFor(pos, board.White) - structureFor(pos, board.Black)
}

func structureFor(pos *board.Position, s board.Side) board.Score {
	own := pos.Pieces(board.NewPiece(s, board.Pawn))
	opp := pos.Pieces(board.NewPiece(s.Reflect(), board.Pawn))

	var score board.Score
	for f := board.ZeroFile; f < board.NumFiles; f++ {
		n := own.Intersect(board.BitFile(f)).PopCount()
		if n == 0 {
			continue
		}
		if n > 1 {
			score -= board.Score(n-1) * doubledPenalty
		}
		if own.Intersect(adjacentFiles(f)).IsEmpty() {
			score -= board.Score(n) * isolatedPenalty
		}
	}

	for _, sq := range own.Squares() {
		if isPassed(sq, s, opp) {
			score += passedBonusByRank[relativeRank(sq, s)]
		}
	}
	return score
}

func adjacentFiles(f board.File) board.Bitboard {
	var ret board.Bitboard
	if f > board.FileA {
		ret = ret.Union(board.BitFile(f - 1))
	}
	if f < board.FileH {
		ret = ret.Union(board.BitFile(f + 1))
	}
	return ret
}

// relativeRank returns sq's rank as seen from s's own side (Rank1 = home rank).
func relativeRank(sq board.Square, s board.Side) board.Rank {
	if s == board.White {
		return sq.Rank()
	}
	return board.Rank8 - sq.Rank()
}

// isPassed reports whether the pawn on sq has no opposing pawn on its own or an adjacent
// file that is level with or ahead of it.
func isPassed(sq board.Square, s board.Side, opp board.Bitboard) bool {
	files := board.BitFile(sq.File()).Union(adjacentFiles(sq.File()))
	return opp.Intersect(files).Intersect(aheadMask(sq, s)).IsEmpty()
}

// aheadMask returns every rank strictly ahead of sq from s's perspective.
func aheadMask(sq board.Square, s board.Side) board.Bitboard {
	var ranks board.Bitboard
	if s == board.White {
		for r := int(sq.Rank()) + 1; r <= int(board.Rank8); r++ {
			ranks = ranks.Union(board.BitRank(board.Rank(r)))
		}
	} else {
		for r := int(sq.Rank()) - 1; r >= int(board.Rank1); r-- {
			ranks = ranks.Union(board.BitRank(board.Rank(r)))
		}
	}
	return ranks
}
