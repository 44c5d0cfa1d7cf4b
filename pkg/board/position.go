package board

import (
	"fmt"
	"strings"
)

// undo captures everything Make cannot cheaply recompute and Unmake needs to restore:
// the pre-move castling rights, en-passant target, half-move clock and key, plus the move
// itself (so Unmake knows what to reverse without the caller repeating it).
type undo struct {
	move          Move
	rights        CornerRights
	enpassant     Square
	halfmoveClock int
	key           Key
	keyHistory    []Key
	hasCastled    [NumSides]bool
}

// Position is a mutable chess position: Make/Unmake mutate it in place and push/pop an
// undo record, rather than allocating a new Position per move the way an immutable
// representation would. Piece placement is kept redundantly as per-piece bitboards and a
// square-indexed array, with the Zobrist key maintained incrementally.
type Position struct {
	zobrist *ZobristTable

	pieceBoards [pieceArraySize]Bitboard
	sideBoards  [NumSides]Bitboard
	squares     [NumSquares]Piece

	rights    CornerRights
	enpassant Square
	active    Side

	halfmoveClock  int
	fullmoveNumber int

	// phaseWeight is the summed Class.PhaseWeight of every piece on the board, kept
	// current by place/remove so evaluation never rescans the piece boards for it.
	phaseWeight int

	key Key

	// keyHistory holds the key after each move since the last irreversible move (capture
	// or pawn move), for threefold-repetition detection; it is truncated whenever an
	// irreversible move resets the fifty-move clock.
	keyHistory []Key

	// hasCastled records, per side, whether that side has ever castled, for the eval
	// package's castling bonus facet.
	hasCastled [NumSides]bool

	history []undo

	// allMovesCache and resultCache memoize the two calls search makes at nearly every
	// node (LegalMoves(AllMoves) and Result(), the latter itself calling the former).
	// Both are pure functions of the rest of the struct, so they are safe to cache, but
	// must be invalidated on every Make and Unmake; see invalidateCaches.
	allMovesCache []Move
	hasAllMoves   bool
	resultCache   Result
	hasResult     bool
}

// invalidateCaches drops every cached field derived from position state. Called at the
// end of Make and Unmake so a cached value is never observed across a mutation.
func (p *Position) invalidateCaches() {
	p.allMovesCache = nil
	p.hasAllMoves = false
	p.hasResult = false
}

// HasCastled reports whether side s has castled at any point in this position's history.
func (p *Position) HasCastled(s Side) bool { return p.hasCastled[s] }

// NewPosition builds a position from explicit piece placements. Used by the FEN parser;
// direct callers should prefer fen.Parse.
func NewPosition(zobrist *ZobristTable, placements map[Square]Piece, rights CornerRights, enpassant Square, active Side, halfmoveClock, fullmoveNumber int) (*Position, error) {
	p := &Position{
		zobrist:        zobrist,
		rights:         rights,
		enpassant:      enpassant,
		active:         active,
		halfmoveClock:  halfmoveClock,
		fullmoveNumber: fullmoveNumber,
	}
	for sq := range p.squares {
		p.squares[sq] = NoPiece
	}
	for sq, piece := range placements {
		if p.squares[sq] != NoPiece {
			return nil, newError(Parse, "duplicate placement at %v", sq)
		}
		p.place(sq, piece)
	}

	if p.pieceBoards[WhiteKing].PopCount() != 1 || p.pieceBoards[BlackKing].PopCount() != 1 {
		return nil, newError(InvariantViolation, "position must have exactly one king per side")
	}
	wk := p.pieceBoards[WhiteKing].First()
	if KingControl(wk).IsSet(p.pieceBoards[BlackKing].First()) {
		return nil, newError(InvariantViolation, "kings cannot be adjacent")
	}
	backRanks := BitRank(Rank1).Union(BitRank(Rank8))
	if !p.pieceBoards[WhitePawn].Union(p.pieceBoards[BlackPawn]).Intersect(backRanks).IsEmpty() {
		return nil, newError(InvariantViolation, "pawn on a back rank")
	}
	if p.IsChecked(active.Reflect()) {
		return nil, newError(InvariantViolation, "side not to move is in check")
	}

	p.key = zobrist.Hash(func(sq Square) Piece { return p.squares[sq] }, rights, enpassant, active)
	p.keyHistory = append(p.keyHistory, p.key)
	return p, nil
}

func (p *Position) place(sq Square, piece Piece) {
	p.squares[sq] = piece
	p.pieceBoards[piece] = p.pieceBoards[piece].Union(BitMask(sq))
	p.sideBoards[piece.Side()] = p.sideBoards[piece.Side()].Union(BitMask(sq))
	p.phaseWeight += piece.Class().PhaseWeight()
}

func (p *Position) remove(sq Square) Piece {
	piece := p.squares[sq]
	p.squares[sq] = NoPiece
	p.pieceBoards[piece] = p.pieceBoards[piece].Difference(BitMask(sq))
	p.sideBoards[piece.Side()] = p.sideBoards[piece.Side()].Difference(BitMask(sq))
	p.phaseWeight -= piece.Class().PhaseWeight()
	return piece
}

func (p *Position) move(from, to Square) Piece {
	piece := p.remove(from)
	if p.squares[to] != NoPiece {
		p.remove(to)
	}
	p.place(to, piece)
	return piece
}

// Active returns the side to move.
func (p *Position) Active() Side { return p.active }

// Rights returns the current castling rights.
func (p *Position) Rights() CornerRights { return p.rights }

// Enpassant returns the en-passant target square, or None if the previous move was not a
// two-square pawn push.
func (p *Position) Enpassant() Square { return p.enpassant }

// Key returns the position's current Zobrist key.
func (p *Position) Key() Key { return p.key }

// HalfmoveClock returns the number of half-moves since the last capture or pawn push.
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

// FullmoveNumber returns the current full-move counter, starting at 1.
func (p *Position) FullmoveNumber() int { return p.fullmoveNumber }

// Ply returns the number of half-moves played to reach this position from the start of
// the game, i.e. 2*(FullmoveNumber-1) plus one if Black is to move.
func (p *Position) Ply() int {
	ply := 2 * (p.fullmoveNumber - 1)
	if p.active == Black {
		ply++
	}
	return ply
}

// PhaseWeight returns the summed phase weight of the material still on the board: at most
// TotalPhaseWeight for an ordinary game, more only when promotions have outpaced captures.
func (p *Position) PhaseWeight() int { return p.phaseWeight }

// PieceAt returns the piece on sq, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece { return p.squares[sq] }

// Occupied returns the union of every occupied square.
func (p *Position) Occupied() Bitboard { return p.sideBoards[White].Union(p.sideBoards[Black]) }

// SidePieces returns the union of all squares occupied by side s.
func (p *Position) SidePieces(s Side) Bitboard { return p.sideBoards[s] }

// Pieces returns the bitboard of every square occupied by the given piece.
func (p *Position) Pieces(piece Piece) Bitboard { return p.pieceBoards[piece] }

// King returns the square of side s's king.
func (p *Position) King(s Side) Square { return p.pieceBoards[NewPiece(s, King)].First() }

// IsAttacked reports whether sq is attacked by side `by`, ignoring en passant (which never
// applies to square attacks, only pawn captures in their own move rules).
func (p *Position) IsAttacked(sq Square, by Side) bool {
	occ := p.Occupied()

	if knights := p.pieceBoards[NewPiece(by, Knight)]; knights != 0 && KnightControl(sq).Intersect(knights) != 0 {
		return true
	}
	if kings := p.pieceBoards[NewPiece(by, King)]; kings != 0 && KingControl(sq).Intersect(kings) != 0 {
		return true
	}
	diag := p.pieceBoards[NewPiece(by, Bishop)].Union(p.pieceBoards[NewPiece(by, Queen)])
	if diag != 0 && BishopControl(sq, occ).Intersect(diag) != 0 {
		return true
	}
	straight := p.pieceBoards[NewPiece(by, Rook)].Union(p.pieceBoards[NewPiece(by, Queen)])
	if straight != 0 && RookControl(sq, occ).Intersect(straight) != 0 {
		return true
	}
	// A pawn of `by` attacks sq iff sq is a capture target from one of its squares, i.e.
	// sq is attacked from the reflected-direction pawn-control set at sq for side `by`.
	pawns := p.pieceBoards[NewPiece(by, Pawn)]
	return pawns != 0 && PawnControl(by.Reflect(), sq).Intersect(pawns) != 0
}

// IsChecked reports whether side s's king is currently attacked.
func (p *Position) IsChecked(s Side) bool {
	return p.IsAttacked(p.King(s), s.Reflect())
}

// Make applies m to the position and pushes an undo record. The caller is responsible for
// only ever calling Make with a move produced by the legal move generator; Make itself
// does not validate legality.
func (p *Position) Make(m Move) {
	p.history = append(p.history, undo{
		move:          m,
		rights:        p.rights,
		enpassant:     p.enpassant,
		halfmoveClock: p.halfmoveClock,
		key:           p.key,
		keyHistory:    p.keyHistory,
		hasCastled:    p.hasCastled,
	})

	mover := p.squares[m.From]

	p.key ^= p.zobrist.sideToMove(White) ^ p.zobrist.sideToMove(Black)
	for _, c := range AllCorners {
		if p.rights.Has(c) {
			p.key ^= p.zobrist.corner(c)
		}
	}
	if p.enpassant != None {
		p.key ^= p.zobrist.enpassantFile(p.enpassant.File())
	}

	nextEnpassant := None
	resetClock := m.IsCapture() || mover.Class() == Pawn

	switch m.Kind {
	case Enpassant:
		victimSq := epVictimSquare(m.To, p.active)
		p.remove(victimSq)
		p.key ^= p.zobrist.piece(m.Captured, victimSq)
		p.key ^= p.zobrist.piece(mover, m.From)
		p.move(m.From, m.To)
		p.key ^= p.zobrist.piece(mover, m.To)

	case Promotion:
		p.remove(m.From)
		p.key ^= p.zobrist.piece(mover, m.From)
		if m.IsCapture() {
			p.remove(m.To)
			p.key ^= p.zobrist.piece(m.Captured, m.To)
		}
		promoted := NewPiece(p.active, m.Promoted)
		p.place(m.To, promoted)
		p.key ^= p.zobrist.piece(promoted, m.To)

	case Castle:
		p.key ^= p.zobrist.piece(mover, m.From)
		p.move(m.From, m.To)
		p.key ^= p.zobrist.piece(mover, m.To)
		rf, rt := m.Corner.RookSquares()
		rook := p.squares[rf]
		p.key ^= p.zobrist.piece(rook, rf)
		p.move(rf, rt)
		p.key ^= p.zobrist.piece(rook, rt)
		p.hasCastled[p.active] = true

	default: // Normal
		if m.IsCapture() {
			p.key ^= p.zobrist.piece(m.Captured, m.To)
		}
		p.key ^= p.zobrist.piece(mover, m.From)
		p.move(m.From, m.To)
		p.key ^= p.zobrist.piece(mover, m.To)

		if mover.Class() == Pawn && abs(int(m.To)-int(m.From)) == 16 {
			nextEnpassant = epVictimSquare(m.To, p.active)
		}
	}

	p.rights = nextRights(p.rights, m, mover)
	p.enpassant = nextEnpassant
	p.active = p.active.Reflect()

	for _, c := range AllCorners {
		if p.rights.Has(c) {
			p.key ^= p.zobrist.corner(c)
		}
	}
	if p.enpassant != None {
		p.key ^= p.zobrist.enpassantFile(p.enpassant.File())
	}

	if resetClock {
		p.halfmoveClock = 0
		// Fresh allocation, not a truncation: the undo record pushed above still views the
		// old backing array, and appending over it would corrupt repetition history on Unmake.
		p.keyHistory = make([]Key, 0, 16)
	} else {
		p.halfmoveClock++
	}
	p.keyHistory = append(p.keyHistory, p.key)

	if p.active == White {
		p.fullmoveNumber++
	}
	p.invalidateCaches()
}

// Unmake reverses the most recent Make. It is an error (EmptyHistory) to call Unmake on a
// position with no moves made.
func (p *Position) Unmake() error {
	if len(p.history) == 0 {
		return newError(EmptyHistory, "no move to unmake")
	}
	u := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]

	p.active = p.active.Reflect()
	m := u.move

	switch m.Kind {
	case Enpassant:
		p.move(m.To, m.From)
		victimSq := epVictimSquare(m.To, p.active)
		p.place(victimSq, m.Captured)

	case Promotion:
		p.remove(m.To)
		p.place(m.From, NewPiece(p.active, Pawn))
		if m.IsCapture() {
			p.place(m.To, m.Captured)
		}

	case Castle:
		p.move(m.To, m.From)
		rf, rt := m.Corner.RookSquares()
		p.move(rt, rf)

	default: // Normal
		p.move(m.To, m.From)
		if m.IsCapture() {
			p.place(m.To, m.Captured)
		}
	}

	p.rights = u.rights
	p.enpassant = u.enpassant
	p.halfmoveClock = u.halfmoveClock
	p.key = u.key
	p.keyHistory = u.keyHistory
	p.hasCastled = u.hasCastled
	if p.active == Black {
		p.fullmoveNumber--
	}
	p.invalidateCaches()
	return nil
}

// Validate checks the internal consistency invariants Make/Unmake must preserve: the
// redundant piece representations agree, kings and pawns are where they may legally be,
// the en-passant square matches the side to move, and the incremental Zobrist key and
// phase weight equal their from-scratch recomputations. Intended for tests and debugging,
// not per-node use.
func (p *Position) Validate() error {
	var sides [NumSides]Bitboard
	var all Bitboard
	phase := 0
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		piece := p.squares[sq]
		if piece == NoPiece {
			continue
		}
		if !p.pieceBoards[piece].IsSet(sq) {
			return newError(InvariantViolation, "square %v holds %v but its piece board disagrees", sq, piece)
		}
		sides[piece.Side()] = sides[piece.Side()].Union(BitMask(sq))
		all = all.Union(BitMask(sq))
		phase += piece.Class().PhaseWeight()
	}

	var fromBoards Bitboard
	for _, piece := range AllPieces {
		fromBoards = fromBoards.Union(p.pieceBoards[piece])
	}
	if fromBoards != all {
		return newError(InvariantViolation, "piece boards hold squares the square index does not")
	}
	if sides[White] != p.sideBoards[White] || sides[Black] != p.sideBoards[Black] {
		return newError(InvariantViolation, "side boards out of sync with piece placement")
	}
	if phase != p.phaseWeight {
		return newError(InvariantViolation, "phase weight %v, expected %v", p.phaseWeight, phase)
	}

	if p.pieceBoards[WhiteKing].PopCount() != 1 || p.pieceBoards[BlackKing].PopCount() != 1 {
		return newError(InvariantViolation, "expected exactly one king per side")
	}
	backRanks := BitRank(Rank1).Union(BitRank(Rank8))
	if !p.pieceBoards[WhitePawn].Union(p.pieceBoards[BlackPawn]).Intersect(backRanks).IsEmpty() {
		return newError(InvariantViolation, "pawn on a back rank")
	}

	if p.enpassant != None {
		want := Rank6
		if p.active == Black {
			want = Rank3
		}
		if p.enpassant.Rank() != want {
			return newError(InvariantViolation, "en-passant square %v on the wrong rank for %v to move", p.enpassant, p.active)
		}
	}

	if key := p.zobrist.Hash(func(sq Square) Piece { return p.squares[sq] }, p.rights, p.enpassant, p.active); key != p.key {
		return newError(InvariantViolation, "incremental key %x, recomputed %x", p.key, key)
	}
	if p.IsChecked(p.active.Reflect()) {
		return newError(InvariantViolation, "side not to move is in check")
	}
	return nil
}

// Reflect returns a new position mirrored vertically with colors swapped: the position
// that looks identical to p from the other side's point of view. The move history is not
// carried over; the reflected position starts fresh, the way a freshly parsed one does.
func (p *Position) Reflect() (*Position, error) {
	placements := make(map[Square]Piece)
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if piece := p.squares[sq]; piece != NoPiece {
			placements[sq.Reflect()] = piece.Reflect()
		}
	}

	var rights CornerRights
	for _, c := range AllCorners {
		if p.rights.Has(c) {
			rights = rights.With(c.Reflect())
		}
	}

	ep := None
	if p.enpassant != None {
		ep = p.enpassant.Reflect()
	}
	return NewPosition(p.zobrist, placements, rights, ep, p.active.Reflect(), p.halfmoveClock, p.fullmoveNumber)
}

// History returns the moves made so far, oldest first.
func (p *Position) History() []Move {
	ret := make([]Move, len(p.history))
	for i, u := range p.history {
		ret[i] = u.move
	}
	return ret
}

// epVictimSquare returns the square of the pawn captured en passant, given the capturing
// pawn's destination square and the side that just moved (the capturer).
func epVictimSquare(to Square, capturer Side) Square {
	if capturer == White {
		sq, _ := to.Next(South)
		return sq
	}
	sq, _ := to.Next(North)
	return sq
}

// nextRights computes castling rights after a move: a king move forfeits both of that
// side's corners, a rook move or capture from a corner's home square forfeits that corner.
func nextRights(rights CornerRights, m Move, mover Piece) CornerRights {
	if m.Kind == Castle {
		return rights.WithoutSide(mover.Side())
	}
	if mover.Class() == King {
		rights = rights.WithoutSide(mover.Side())
	}
	for _, c := range AllCorners {
		rf, _ := c.RookSquares()
		if m.From == rf || m.To == rf {
			rights = rights.Without(c)
		}
	}
	return rights
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (p *Position) String() string {
	var sb strings.Builder
	for r := int(Rank8); r >= int(Rank1); r-- {
		for f := ZeroFile; f < NumFiles; f++ {
			piece := p.squares[NewSquare(f, Rank(r))]
			sb.WriteString(piece.String())
		}
		if r > int(Rank1) {
			sb.WriteRune('/')
		}
	}
	ep := "-"
	if p.enpassant != None {
		ep = p.enpassant.String()
	}
	return fmt.Sprintf("%v %v %v (%v)", sb.String(), p.active, p.rights, ep)
}
