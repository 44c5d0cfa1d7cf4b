// Package pgn parses movetext (the move-list body of a PGN game record) into a sequence
// of legal moves applied to a position, and renders moves back to Standard Algebraic
// Notation. Tag-pair headers and game metadata are out of scope: only the movetext body.
package pgn

import (
	"fmt"
	"strings"

	"github.com/corvidchess/corvid/pkg/board"
)

// ParseMovetext plays each SAN move in movetext against pos in turn, mutating pos in
// place via Position.Make. Move numbers ("1.", "1...") and result markers ("1-0", "1/2-1/2",
// "*") are recognized and skipped.
func ParseMovetext(pos *board.Position, movetext string) error {
	for _, tok := range strings.Fields(movetext) {
		if isResultMarker(tok) {
			continue
		}
		tok = stripMoveNumber(tok)
		if tok == "" {
			continue
		}
		m, err := parseSAN(pos, tok)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", tok, err)
		}
		pos.Make(m)
	}
	return nil
}

func isResultMarker(tok string) bool {
	switch tok {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	default:
		return false
	}
}

// stripMoveNumber removes a leading "12." or "12..." move-number prefix, if present.
func stripMoveNumber(tok string) string {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	if i == 0 {
		return tok
	}
	rest := tok[i:]
	rest = strings.TrimLeft(rest, ".")
	return rest
}

// parseSAN resolves a single SAN token against pos's current legal moves.
func parseSAN(pos *board.Position, tok string) (board.Move, error) {
	san := strings.TrimRight(tok, "+#!?")

	legal := pos.LegalMoves(board.AllMoves)

	if san == "O-O" || san == "0-0" {
		return findCastle(legal, true)
	}
	if san == "O-O-O" || san == "0-0-0" {
		return findCastle(legal, false)
	}

	class := board.Pawn
	rest := san
	if c, ok := classLetter(rune(san[0])); ok {
		class = c
		rest = san[1:]
	}

	var promoted board.Class
	hasPromotion := false
	if idx := strings.IndexByte(rest, '='); idx >= 0 {
		c, ok := classLetter(rune(rest[idx+1]))
		if !ok {
			return board.Move{}, fmt.Errorf("invalid promotion in %q", tok)
		}
		promoted = c
		hasPromotion = true
		rest = rest[:idx]
	}

	rest = strings.ReplaceAll(rest, "x", "")
	if len(rest) < 2 {
		return board.Move{}, fmt.Errorf("malformed SAN token %q", tok)
	}

	to, err := board.ParseSquareStr(rest[len(rest)-2:])
	if err != nil {
		return board.Move{}, fmt.Errorf("invalid destination in %q: %w", tok, err)
	}
	disambiguator := rest[:len(rest)-2]

	var candidates []board.Move
	for _, m := range legal {
		if pos.PieceAt(m.From).Class() != class || m.To != to {
			continue
		}
		if hasPromotion && (m.Kind != board.Promotion || m.Promoted != promoted) {
			continue
		}
		if !hasPromotion && m.Kind == board.Promotion {
			continue
		}
		if !matchesDisambiguator(m.From, disambiguator) {
			continue
		}
		candidates = append(candidates, m)
	}

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		return board.Move{}, fmt.Errorf("no legal move matches %q", tok)
	default:
		return board.Move{}, fmt.Errorf("ambiguous SAN token %q", tok)
	}
}

func matchesDisambiguator(from board.Square, d string) bool {
	for _, r := range d {
		switch {
		case r >= 'a' && r <= 'h':
			if from.File() != board.File(r-'a') {
				return false
			}
		case r >= '1' && r <= '8':
			if from.Rank() != board.Rank(r-'1') {
				return false
			}
		}
	}
	return true
}

func findCastle(legal []board.Move, kingside bool) (board.Move, error) {
	for _, m := range legal {
		if m.Kind != board.Castle {
			continue
		}
		if m.Corner.IsKingside() == kingside {
			return m, nil
		}
	}
	side := "queenside"
	if kingside {
		side = "kingside"
	}
	return board.Move{}, fmt.Errorf("no legal %v castle", side)
}

func classLetter(r rune) (board.Class, bool) {
	switch r {
	case 'N':
		return board.Knight, true
	case 'B':
		return board.Bishop, true
	case 'R':
		return board.Rook, true
	case 'Q':
		return board.Queen, true
	case 'K':
		return board.King, true
	default:
		return 0, false
	}
}

// RenderMovetext renders moves as numbered SAN movetext, playing each against pos in
// turn to resolve disambiguation and check suffixes. pos is restored to its original
// state before returning; it must be the position the first move is legal in.
func RenderMovetext(pos *board.Position, moves []board.Move) (string, error) {
	var sb strings.Builder
	played := 0

	for i, m := range moves {
		if pos.Active() == board.White {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d.", pos.FullmoveNumber())
		} else if i == 0 {
			fmt.Fprintf(&sb, "%d...", pos.FullmoveNumber())
		} else {
			sb.WriteByte(' ')
		}

		legal := pos.LegalMoves(board.AllMoves)
		found := false
		for _, l := range legal {
			if l.Equals(m) {
				found = true
				break
			}
		}
		if !found {
			for j := 0; j < played; j++ {
				_ = pos.Unmake()
			}
			return "", fmt.Errorf("move %v is not legal at move %d", m, pos.FullmoveNumber())
		}

		sb.WriteString(MoveSAN(pos, m, legal))
		pos.Make(m)
		played++
	}

	for j := 0; j < played; j++ {
		_ = pos.Unmake()
	}
	return sb.String(), nil
}

// MoveSAN renders m, legal in pos (before it is made), as Standard Algebraic Notation.
// Grounded on disambiguation technique shared across SAN encoders in the example pack:
// file disambiguation is preferred over rank, and pawn captures always carry their file.
func MoveSAN(pos *board.Position, m board.Move, legal []board.Move) string {
	if m.Kind == board.Castle {
		if m.Corner.IsKingside() {
			return withCheckSuffix(pos, m, "O-O")
		}
		return withCheckSuffix(pos, m, "O-O-O")
	}

	class := pos.PieceAt(m.From).Class()
	var sb strings.Builder

	if class != board.Pawn {
		sb.WriteString(strings.ToUpper(class.String()))
		sb.WriteString(disambiguation(pos, m, legal, class))
	}

	if m.IsCapture() || m.Kind == board.Enpassant {
		if class == board.Pawn {
			sb.WriteString(m.From.File().String())
		}
		sb.WriteByte('x')
	}

	sb.WriteString(m.To.String())

	if m.Kind == board.Promotion {
		sb.WriteByte('=')
		sb.WriteString(strings.ToUpper(m.Promoted.String()))
	}

	return withCheckSuffix(pos, m, sb.String())
}

func disambiguation(pos *board.Position, m board.Move, legal []board.Move, class board.Class) string {
	var sameFile, sameRank, any bool
	for _, o := range legal {
		if o.From == m.From || o.To != m.To || pos.PieceAt(o.From).Class() != class {
			continue
		}
		any = true
		if o.From.File() == m.From.File() {
			sameFile = true
		}
		if o.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	if !any {
		return ""
	}
	if !sameFile {
		return m.From.File().String()
	}
	if !sameRank {
		return m.From.Rank().String()
	}
	return m.From.String()
}

func withCheckSuffix(pos *board.Position, m board.Move, san string) string {
	opponent := pos.Active().Reflect()
	pos.Make(m)
	defer func() { _ = pos.Unmake() }()

	if !pos.IsChecked(opponent) {
		return san
	}
	if len(pos.LegalMoves(board.AllMoves)) == 0 {
		return san + "#"
	}
	return san + "+"
}
