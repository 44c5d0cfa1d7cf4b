package board

import "fmt"

// Class represents a chess piece class, independent of side. 3 bits.
type Class uint8

const (
	Pawn Class = iota
	Knight
	Bishop
	Rook
	Queen
	King

	NumClasses Class = 6
)

func ParseClass(r rune) (Class, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return 0, false
	}
}

func (c Class) IsValid() bool {
	return c < NumClasses
}

// IsSlider reports whether the class moves along rays (bishop, rook, queen).
func (c Class) IsSlider() bool {
	return c == Bishop || c == Rook || c == Queen
}

// PhaseWeight returns the class's contribution to the game-phase material count: pawns
// and kings count for nothing, minors one, rooks two, queens four.
func (c Class) PhaseWeight() int {
	switch c {
	case Knight, Bishop:
		return 1
	case Rook:
		return 2
	case Queen:
		return 4
	default:
		return 0
	}
}

// TotalPhaseWeight is the phase-weight sum with every piece of the initial position still
// on the board: 4 minors and 2 rooks per side plus both queens.
const TotalPhaseWeight = 4*(1+1+2) + 2*4

func (c Class) String() string {
	switch c {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

// Piece is the pair (side, class). There are twelve concrete piece values, packed as
// side<<3 | class so Piece can index flat per-piece arrays (e.g. Zobrist, piece-square
// tables) without a 2-D lookup.
type Piece uint8

const (
	NoPiece Piece = 0xff
)

func NewPiece(s Side, c Class) Piece {
	return Piece(s)<<3 | Piece(c)
}

var (
	WhitePawn   = NewPiece(White, Pawn)
	WhiteKnight = NewPiece(White, Knight)
	WhiteBishop = NewPiece(White, Bishop)
	WhiteRook   = NewPiece(White, Rook)
	WhiteQueen  = NewPiece(White, Queen)
	WhiteKing   = NewPiece(White, King)

	BlackPawn   = NewPiece(Black, Pawn)
	BlackKnight = NewPiece(Black, Knight)
	BlackBishop = NewPiece(Black, Bishop)
	BlackRook   = NewPiece(Black, Rook)
	BlackQueen  = NewPiece(Black, Queen)
	BlackKing   = NewPiece(Black, King)

	// AllPieces lists the twelve concrete pieces in a fixed, stable order.
	AllPieces = []Piece{
		WhitePawn, WhiteKnight, WhiteBishop, WhiteRook, WhiteQueen, WhiteKing,
		BlackPawn, BlackKnight, BlackBishop, BlackRook, BlackQueen, BlackKing,
	}
)

// NumPieces is the number of concrete (side, class) piece values, kept equal to
// len(AllPieces) by construction.
const NumPieces = 12

// pieceArraySize sizes arrays indexed directly by a raw Piece value (side<<3 | class):
// since class occupies 3 bits, Black's pieces land at indices 8..13, so a flat per-piece
// array must be sized past the highest such index rather than just NumPieces.
const pieceArraySize = 16

func (p Piece) Side() Side {
	return Side(p >> 3)
}

func (p Piece) Class() Class {
	return Class(p & 0x7)
}

func (p Piece) IsValid() bool {
	return p != NoPiece && p.Class().IsValid()
}

// Reflect returns the piece of the opposite side with the same class.
func (p Piece) Reflect() Piece {
	return NewPiece(p.Side().Reflect(), p.Class())
}

func (p Piece) String() string {
	if p == NoPiece {
		return "."
	}
	if p.Side() == White {
		return fmt.Sprintf("%c", []rune(p.Class().String())[0]-32)
	}
	return p.Class().String()
}
