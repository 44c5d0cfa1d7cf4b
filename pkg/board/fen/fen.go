// Package fen reads and writes positions in Forsyth-Edwards Notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/corvidchess/corvid/pkg/board"
)

// Initial is the FEN for the standard chess starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Parse decodes a FEN record into a Position. zobrist is the table used to compute the
// position's initial key; callers share one table across a process so keys stay
// comparable.
//
// Example: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Parse(zobrist *board.ZobristTable, s string) (*board.Position, error) {
	parts := strings.Split(strings.TrimSpace(s), " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid number of fields in FEN: %q", s)
	}

	// (1) Piece placement, from rank 8 down to rank 1, file a through h per rank.
	placements := make(map[board.Square]board.Piece)
	file, rank := board.FileA, board.Rank8
	for _, r := range parts[0] {
		switch {
		case r == '/':
			file, rank = board.FileA, rank-1
		case unicode.IsDigit(r):
			file += board.File(r - '0')
		case unicode.IsLetter(r):
			piece, ok := parsePiece(r)
			if !ok {
				return nil, fmt.Errorf("invalid piece %q in FEN: %q", r, s)
			}
			if file > board.FileH {
				return nil, fmt.Errorf("rank overflow in FEN: %q", s)
			}
			placements[board.NewSquare(file, rank)] = piece
			file++
		default:
			return nil, fmt.Errorf("invalid character %q in FEN: %q", r, s)
		}
	}

	// (2) Active color.
	active, ok := parseSide(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid active color in FEN: %q", s)
	}

	// (3) Castling rights.
	rights, ok := parseRights(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling rights in FEN: %q", s)
	}

	// (4) En-passant target square.
	ep := board.None
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en-passant square in FEN: %q", s)
		}
		ep = sq
	}

	// (5) Halfmove clock.
	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("invalid halfmove clock in FEN: %q", s)
	}

	// (6) Fullmove number.
	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("invalid fullmove number in FEN: %q", s)
	}

	pos, err := board.NewPosition(zobrist, placements, rights, ep, active, halfmove, fullmove)
	if err != nil {
		return nil, fmt.Errorf("invalid position in FEN: %q: %w", s, err)
	}
	return pos, nil
}

// Render encodes pos back into a FEN record. Parse(Render(pos)) round-trips.
func Render(pos *board.Position) string {
	var sb strings.Builder
	for r := int(board.Rank8); r >= int(board.Rank1); r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			piece := pos.PieceAt(board.NewSquare(f, board.Rank(r)))
			if piece == board.NoPiece {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(piece.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > int(board.Rank1) {
			sb.WriteRune('/')
		}
	}

	ep := "-"
	if pos.Enpassant() != board.None {
		ep = pos.Enpassant().String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v",
		sb.String(), printSide(pos.Active()), pos.Rights(), ep, pos.HalfmoveClock(), pos.FullmoveNumber())
}

func parseSide(s string) (board.Side, bool) {
	switch s {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

func printSide(s board.Side) string {
	if s == board.White {
		return "w"
	}
	return "b"
}

func parseRights(s string) (board.CornerRights, bool) {
	var ret board.CornerRights
	if s == "-" {
		return ret, true
	}
	for _, r := range s {
		switch r {
		case 'K':
			ret = ret.With(board.WhiteKingside)
		case 'Q':
			ret = ret.With(board.WhiteQueenside)
		case 'k':
			ret = ret.With(board.BlackKingside)
		case 'q':
			ret = ret.With(board.BlackQueenside)
		default:
			return 0, false
		}
	}
	return ret, true
}

func parsePiece(r rune) (board.Piece, bool) {
	class, ok := board.ParseClass(r)
	if !ok {
		return 0, false
	}
	if unicode.IsUpper(r) {
		return board.NewPiece(board.White, class), true
	}
	return board.NewPiece(board.Black, class), true
}
