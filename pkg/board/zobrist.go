package board

import "math/rand"

// Key is a position hash used for transposition table indexing and repetition detection.
// Positions that are "identical" for repetition purposes (same piece placement, side to
// move, castling rights and en-passant file) hash to the same Key.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type Key uint64

// ZobristTable is a pseudo-randomized table of hash contributions, one per (piece, square)
// pair plus side-to-move, castling-corner and en-passant-file randoms. Built once with a
// fixed seed so Keys are reproducible across runs.
type ZobristTable struct {
	pieces    [pieceArraySize][NumSquares]Key
	corners   [NumCorners]Key
	enpassant [NumFiles]Key
	side      [NumSides]Key
}

// NewZobristTable builds a table from the given seed. The engine uses a fixed seed so
// Keys (and therefore transposition table contents) are reproducible between runs.
func NewZobristTable(seed int64) *ZobristTable {
	t := &ZobristTable{}
	r := rand.New(rand.NewSource(seed))

	for _, p := range AllPieces {
		for sq := ZeroSquare; sq < NumSquares; sq++ {
			t.pieces[p][sq] = Key(r.Uint64())
		}
	}
	for _, c := range AllCorners {
		t.corners[c] = Key(r.Uint64())
	}
	for f := ZeroFile; f < NumFiles; f++ {
		t.enpassant[f] = Key(r.Uint64())
	}
	t.side[White] = Key(r.Uint64())
	t.side[Black] = Key(r.Uint64())
	return t
}

func (t *ZobristTable) piece(p Piece, sq Square) Key {
	return t.pieces[p][sq]
}

func (t *ZobristTable) corner(c Corner) Key {
	return t.corners[c]
}

func (t *ZobristTable) enpassantFile(f File) Key {
	return t.enpassant[f]
}

func (t *ZobristTable) sideToMove(s Side) Key {
	return t.side[s]
}

// Hash computes the key for a full position from scratch. Used only at load time (e.g.
// after parsing a FEN); Position otherwise maintains its key incrementally via Make/Unmake.
func (t *ZobristTable) Hash(pieceAt func(Square) Piece, rights CornerRights, enpassant Square, active Side) Key {
	var h Key
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if p := pieceAt(sq); p != NoPiece {
			h ^= t.piece(p, sq)
		}
	}
	for _, c := range AllCorners {
		if rights.Has(c) {
			h ^= t.corner(c)
		}
	}
	if enpassant != None {
		h ^= t.enpassantFile(enpassant.File())
	}
	h ^= t.sideToMove(active)
	return h
}
