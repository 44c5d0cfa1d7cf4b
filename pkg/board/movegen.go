package board

// Selector filters the moves the generator returns, so quiescence search can ask for a
// narrow subset without paying for a full legal-move enumeration followed by a filter
// pass. All always returns the complete legal set.
type Selector struct {
	All       bool
	Attacking bool
	Checking  bool
	Promoting bool
}

// AllMoves is the selector that returns every legal move.
var AllMoves = Selector{All: true}

// AreAny builds a selector matching a move that satisfies at least one of the given facets.
func AreAny(facets ...func(*Selector)) Selector {
	var s Selector
	for _, f := range facets {
		f(&s)
	}
	return s
}

func Attacking(s *Selector) { s.Attacking = true }
func Checking(s *Selector)  { s.Checking = true }
func Promoting(s *Selector) { s.Promoting = true }

func (s Selector) matches(p *Position, m Move) bool {
	if s.All {
		return true
	}
	if s.Attacking && m.IsCapture() {
		return true
	}
	if s.Promoting && m.Kind == Promotion {
		return true
	}
	if s.Checking && givesCheck(p, m) {
		return true
	}
	return false
}

// givesCheck reports whether playing m on p would leave the opponent in check. Implemented
// by actually playing and unmaking the move: checking moves are rare enough in the
// quiescence facet that this is simpler than maintaining a would-be-attacker mask.
func givesCheck(p *Position, m Move) bool {
	opponent := p.active.Reflect()
	p.Make(m)
	inCheck := p.IsChecked(opponent)
	_ = p.Unmake()
	return inCheck
}

// LegalMoves returns every legal move for the side to move in p matching selector s.
//
// The generator never produces a move that would leave the active king in check: rather
// than generate-then-filter, it computes a single evasion board (from check) and a
// per-square pin cord, then intersects each piece's pseudo-legal attack/push set against
// them before a move is ever materialized.
func (p *Position) LegalMoves(s Selector) []Move {
	if s.All && p.hasAllMoves {
		return p.allMovesCache
	}

	active := p.active
	opponent := active.Reflect()
	occ := p.Occupied()
	king := p.King(active)

	checkers := attackersOf(p, king, opponent)
	numCheckers := checkers.PopCount()
	danger := passiveControl(p, active, opponent)

	evasion := UniversalBitboard
	switch {
	case numCheckers == 1:
		checker := checkers.First()
		if cord := Cord(king, checker); !cord.IsEmpty() {
			// Sliding checker: block or capture anywhere on the line.
			evasion = cord
		} else {
			// Knight or pawn checker: no blocking square, only capturing it resolves check.
			evasion = BitMask(checker)
		}
	case numCheckers >= 2:
		evasion = EmptyBitboard
	}
	pins := pinnedPieces(p, active, opponent, king)

	moves := make([]Move, 0, 32)
	appendKingMoves(p, &moves, active, king, danger)

	if numCheckers < 2 {
		appendPawnMoves(p, &moves, active, evasion, pins)
		appendPieceMoves(p, &moves, active, Knight, occ, evasion, pins)
		appendPieceMoves(p, &moves, active, Bishop, occ, evasion, pins)
		appendPieceMoves(p, &moves, active, Rook, occ, evasion, pins)
		appendPieceMoves(p, &moves, active, Queen, occ, evasion, pins)
		if numCheckers == 0 {
			appendCastles(p, &moves, active, danger, occ)
		}
	}

	if s.All {
		p.allMovesCache = moves
		p.hasAllMoves = true
		return moves
	}
	filtered := moves[:0]
	for _, m := range moves {
		if s.matches(p, m) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// attackersOf returns the set of `by`-side pieces currently attacking sq.
func attackersOf(p *Position, sq Square, by Side) Bitboard {
	occ := p.Occupied()
	var ret Bitboard
	ret = ret.Union(KnightControl(sq).Intersect(p.Pieces(NewPiece(by, Knight))))
	diag := p.Pieces(NewPiece(by, Bishop)).Union(p.Pieces(NewPiece(by, Queen)))
	ret = ret.Union(BishopControl(sq, occ).Intersect(diag))
	straight := p.Pieces(NewPiece(by, Rook)).Union(p.Pieces(NewPiece(by, Queen)))
	ret = ret.Union(RookControl(sq, occ).Intersect(straight))
	ret = ret.Union(KingControl(sq).Intersect(p.Pieces(NewPiece(by, King))))
	ret = ret.Union(PawnControl(by.Reflect(), sq).Intersect(p.Pieces(NewPiece(by, Pawn))))
	return ret
}

// passiveControl returns every square the opponent attacks, with the active king removed
// from occupancy first: a king retreating straight back along a checking slider's ray must
// still be treated as moving into check, since the ray passes through the square the king
// used to occupy.
func passiveControl(p *Position, active, opponent Side) Bitboard {
	occWithoutKing := p.Occupied().Difference(BitMask(p.King(active)))

	var ret Bitboard
	for _, sq := range p.Pieces(NewPiece(opponent, Knight)).Squares() {
		ret = ret.Union(KnightControl(sq))
	}
	for _, sq := range p.Pieces(NewPiece(opponent, King)).Squares() {
		ret = ret.Union(KingControl(sq))
	}
	for _, sq := range p.Pieces(NewPiece(opponent, Bishop)).Union(p.Pieces(NewPiece(opponent, Queen))).Squares() {
		ret = ret.Union(BishopControl(sq, occWithoutKing))
	}
	for _, sq := range p.Pieces(NewPiece(opponent, Rook)).Union(p.Pieces(NewPiece(opponent, Queen))).Squares() {
		ret = ret.Union(RookControl(sq, occWithoutKing))
	}
	ret = ret.Union(PawnCaptureBoard(opponent, p.Pieces(NewPiece(opponent, Pawn))))
	return ret
}

// pinnedPieces finds every active piece pinned against its own king, mapping origin square
// to the cord (king..attacker, inclusive) that piece is restricted to moving along.
//
// For each ray direction group (diagonal, straight), look for an opposing slider of the
// matching type reachable via the king's empty-board control in that direction. Walking
// the cord between king and that slider: if it contains exactly the king plus one other
// active piece, and exactly one opposing piece (the slider itself), that other active
// piece is pinned.
func pinnedPieces(p *Position, active, opponent Side, king Square) map[Square]Bitboard {
	ret := make(map[Square]Bitboard)

	diagAttackers := p.Pieces(NewPiece(opponent, Bishop)).
		Union(p.Pieces(NewPiece(opponent, Queen))).
		Intersect(EmptyControl(Bishop, king))
	straightAttackers := p.Pieces(NewPiece(opponent, Rook)).
		Union(p.Pieces(NewPiece(opponent, Queen))).
		Intersect(EmptyControl(Rook, king))

	for _, sq := range diagAttackers.Union(straightAttackers).Squares() {
		cord := Cord(king, sq)
		if cord.IsEmpty() {
			continue
		}
		activeOnCord := cord.Intersect(p.SidePieces(active))
		oppOnCord := cord.Intersect(p.SidePieces(opponent))
		if activeOnCord.PopCount() == 2 && oppOnCord.PopCount() == 1 {
			pinned := activeOnCord.Difference(BitMask(king)).First()
			ret[pinned] = cord
		}
	}
	return ret
}

func constrain(targets Bitboard, from Square, evasion Bitboard, pins map[Square]Bitboard) Bitboard {
	targets = targets.Intersect(evasion)
	if cord, pinned := pins[from]; pinned {
		targets = targets.Intersect(cord)
	}
	return targets
}

func appendKingMoves(p *Position, moves *[]Move, active Side, king Square, danger Bitboard) {
	own := p.SidePieces(active)
	targets := KingControl(king).Difference(own).Difference(danger)
	for _, to := range targets.Squares() {
		*moves = append(*moves, NewNormal(king, to, p.PieceAt(to)))
	}
}

func appendPieceMoves(p *Position, moves *[]Move, active Side, class Class, occ, evasion Bitboard, pins map[Square]Bitboard) {
	own := p.SidePieces(active)
	for _, from := range p.Pieces(NewPiece(active, class)).Squares() {
		targets := constrain(Control(class, from, occ).Difference(own), from, evasion, pins)
		for _, to := range targets.Squares() {
			*moves = append(*moves, NewNormal(from, to, p.PieceAt(to)))
		}
	}
}

func appendPawnMoves(p *Position, moves *[]Move, active Side, evasion Bitboard, pins map[Square]Bitboard) {
	opponent := active.Reflect()
	occ := p.Occupied()
	promoRank := PawnPromotionRank(active)
	homeRank := PawnHomeRank(active)
	pushDir := North
	if active == Black {
		pushDir = South
	}

	for _, from := range p.Pieces(NewPiece(active, Pawn)).Squares() {
		allowed := func(to Square) bool {
			c := evasion
			if cord, pinned := pins[from]; pinned {
				c = c.Intersect(cord)
			}
			return c.IsSet(to)
		}

		if to, ok := from.Next(pushDir); ok && !occ.IsSet(to) {
			if allowed(to) {
				addPawnMove(moves, from, to, NoPiece, promoRank)
			}
			if from.Rank() == homeRank {
				if to2, ok2 := to.Next(pushDir); ok2 && !occ.IsSet(to2) && allowed(to2) {
					*moves = append(*moves, NewNormal(from, to2, NoPiece))
				}
			}
		}

		for _, to := range PawnControl(active, from).Squares() {
			if occ.IsSet(to) {
				if allowed(to) && p.PieceAt(to).Side() == opponent {
					addPawnMove(moves, from, to, p.PieceAt(to), promoRank)
				}
				continue
			}
			if to == p.Enpassant() {
				victimSq := epVictimSquare(to, active)
				// An en-passant capture can resolve a check by taking the checking pawn
				// itself, so the victim square satisfies the evasion constraint as well as
				// the destination does.
				ok := evasion.IsSet(to) || evasion.IsSet(victimSq)
				if cord, pinned := pins[from]; pinned {
					ok = ok && cord.IsSet(to)
				}
				if ok && enpassantLegal(p, active, from, victimSq) {
					*moves = append(*moves, NewEnpassant(from, to, p.PieceAt(victimSq)))
				}
			}
		}
	}
}

func addPawnMove(moves *[]Move, from, to Square, captured Piece, promoRank Rank) {
	if to.Rank() == promoRank {
		for _, cls := range []Class{Queen, Rook, Bishop, Knight} {
			*moves = append(*moves, NewPromotion(from, to, cls, captured))
		}
		return
	}
	*moves = append(*moves, NewNormal(from, to, captured))
}

// enpassantLegal applies the discovered-check test the pin cords cannot express: if the
// king and the captured pawn share a rank with an opposing rook/queen on that rank,
// and removing both the capturing and captured pawn exposes the king to that rook/queen,
// the capture is illegal even though it is not otherwise pinned.
func enpassantLegal(p *Position, active Side, from, victimSq Square) bool {
	king := p.King(active)
	if king.Rank() != victimSq.Rank() {
		return true
	}
	opponent := active.Reflect()
	rooksQueens := p.Pieces(NewPiece(opponent, Rook)).Union(p.Pieces(NewPiece(opponent, Queen)))
	if rooksQueens.Intersect(BitRank(king.Rank())).IsEmpty() {
		return true
	}
	occWithoutBoth := p.Occupied().Difference(BitMask(from)).Difference(BitMask(victimSq))
	return RookControl(king, occWithoutBoth).Intersect(rooksQueens).IsEmpty()
}

func appendCastles(p *Position, moves *[]Move, active Side, danger, occ Bitboard) {
	var corners []Corner
	if active == White {
		corners = []Corner{WhiteKingside, WhiteQueenside}
	} else {
		corners = []Corner{BlackKingside, BlackQueenside}
	}
	for _, c := range corners {
		if !p.Rights().Has(c) {
			continue
		}
		if !occ.Intersect(c.Unoccupied()).IsEmpty() {
			continue
		}
		if !danger.Intersect(c.Uncontrolled()).IsEmpty() {
			continue
		}
		*moves = append(*moves, NewCastle(c))
	}
}
