package board

import "fmt"

// Kind distinguishes the handful of move shapes that need special-case handling during
// Make/Unmake: everything else (quiet moves and captures alike) is Normal.
type Kind uint8

const (
	Null Kind = iota
	Normal
	Enpassant
	Promotion
	Castle
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Normal:
		return "normal"
	case Enpassant:
		return "enpassant"
	case Promotion:
		return "promotion"
	case Castle:
		return "castle"
	default:
		return "?"
	}
}

// Move represents a not-necessarily-legal move, tagged by Kind so Make/Unmake know which
// extra bookkeeping (captured rook relocation, en-passant victim removal, promoted class
// substitution) a given move needs, without having to re-derive it from From/To alone.
//
//   - Normal:    any king/queen/rook/bishop/knight move or single/double pawn push or
//                capture that is not a promotion.
//   - Enpassant: a pawn capture onto the en-passant target square; the captured pawn sits
//                behind To, not on it.
//   - Promotion: a pawn move (push or capture) onto the back rank; Promoted names the
//                resulting piece class.
//   - Castle:    a king move of two squares along its home rank; Corner identifies which
//                castling right it exercises, to locate the rook.
//   - Null:      the zero value, "no move" — used as a sentinel, never legal.
type Move struct {
	Kind     Kind
	From, To Square
	Promoted Class  // valid iff Kind == Promotion
	Captured Piece  // NoPiece if the move is not a capture
	Corner   Corner // valid iff Kind == Castle
}

func NewNormal(from, to Square, captured Piece) Move {
	return Move{Kind: Normal, From: from, To: to, Captured: captured}
}

func NewEnpassant(from, to Square, captured Piece) Move {
	return Move{Kind: Enpassant, From: from, To: to, Captured: captured}
}

func NewPromotion(from, to Square, promoted Class, captured Piece) Move {
	return Move{Kind: Promotion, From: from, To: to, Promoted: promoted, Captured: captured}
}

func NewCastle(corner Corner) Move {
	from, to := corner.KingSquares()
	return Move{Kind: Castle, From: from, To: to, Captured: NoPiece, Corner: corner}
}

// IsCapture reports whether the move removes an opposing piece from the board.
func (m Move) IsCapture() bool {
	return m.Captured != NoPiece
}

// IsQuiet reports whether the move is neither a capture nor a promotion. Quiet moves are
// the ones the no-progress (fifty-move) counter does not reset for, except pawn pushes.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && m.Kind != Promotion
}

// Equals compares moves by their externally observable identity: origin, destination and
// (for promotions) the chosen piece. Captured/Corner are derived bookkeeping, not identity.
func (m Move) Equals(o Move) bool {
	return m.Kind == o.Kind && m.From == o.From && m.To == o.To && m.Promoted == o.Promoted
}

// Reflect mirrors a move vertically, matching Square.Reflect and Corner.Reflect, so a move
// legal in one side's position is also legal in that position's mirror for the other side.
func (m Move) Reflect() Move {
	r := Move{Kind: m.Kind, From: m.From.Reflect(), To: m.To.Reflect(), Promoted: m.Promoted}
	if m.Captured != NoPiece {
		r.Captured = m.Captured.Reflect()
	} else {
		r.Captured = NoPiece
	}
	if m.Kind == Castle {
		r.Corner = m.Corner.Reflect()
	}
	return r
}

// ResolveUCIMove parses a UCI long-algebraic move and resolves it against p's legal
// moves. Coordinate notation alone cannot distinguish a quiet king step from a castle,
// nor identify an en-passant capture, so the match is made by From/To/Promoted against
// the generator's output rather than constructed directly.
func (p *Position) ResolveUCIMove(str string) (Move, error) {
	from, to, promoted, err := ParseUCIMove(str)
	if err != nil {
		return Move{}, err
	}
	for _, m := range p.LegalMoves(AllMoves) {
		if m.From != from || m.To != to {
			continue
		}
		if m.Kind == Promotion && m.Promoted != promoted {
			continue
		}
		return m, nil
	}
	return Move{}, newError(IllegalMove, "move not legal in this position: %v", str)
}

// ParseUCIMove parses a move in pure algebraic coordinate notation, such as "a2a4" or
// "a7a8q". The parsed move carries From/To/Promoted only: Kind/Captured/Corner must be
// resolved against a concrete position (see Position.ResolveUCIMove), since coordinate
// notation alone cannot distinguish a quiet king step from a castle, nor identify an
// en-passant capture.
func ParseUCIMove(str string) (Square, Square, Class, error) {
	runes := []rune(str)
	if len(runes) < 4 || len(runes) > 5 {
		return 0, 0, 0, fmt.Errorf("invalid move: %q", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid from: %q: %w", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid to: %q: %w", str, err)
	}

	promoted := NumClasses
	if len(runes) == 5 {
		c, ok := ParseClass(runes[4])
		if !ok || c == Pawn || c == King {
			return 0, 0, 0, fmt.Errorf("invalid promotion: %q", str)
		}
		promoted = c
	}
	return from, to, promoted, nil
}

// UCI renders the move in pure algebraic coordinate notation.
func (m Move) UCI() string {
	if m.Kind == Promotion {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promoted)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}

func (m Move) String() string {
	return m.UCI()
}
