package board_test

import (
	"strings"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perft(pos *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	var nodes int64
	for _, m := range pos.LegalMoves(board.AllMoves) {
		pos.Make(m)
		nodes += perft(pos, depth-1)
		_ = pos.Unmake()
	}
	return nodes
}

func TestPerftStartingPosition(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, fen.Initial)
	require.NoError(t, err)

	want := []int64{20, 400, 8902, 197281}
	for depth, w := range want {
		assert.Equal(t, w, perft(pos, depth+1), "perft(%v)", depth+1)
	}
}

func TestPerftKiwipete(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, kiwipete)
	require.NoError(t, err)

	want := []int64{48, 2039, 97862, 4085603}
	for depth, w := range want {
		assert.Equal(t, w, perft(pos, depth+1), "perft(%v)", depth+1)
	}
}

func TestPerftTacticalPositions(t *testing.T) {
	// Positions 3-5 of the published perft suite: en-passant check evasions, promotion
	// storms, and castling-under-attack are all load-bearing here.
	tests := []struct {
		name string
		fen  string
		want []int64
	}{
		{
			name: "endgame_enpassant",
			fen:  "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			want: []int64{14, 191, 2812, 43238},
		},
		{
			name: "promotions",
			fen:  "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			want: []int64{6, 264, 9467, 422333},
		},
		{
			name: "castling_and_pins",
			fen:  "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
			want: []int64{44, 1486, 62379, 2103487},
		},
	}

	zobrist := board.NewZobristTable(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := fen.Parse(zobrist, tt.fen)
			require.NoError(t, err)

			for depth, w := range tt.want {
				assert.Equal(t, w, perft(pos, depth+1), "perft(%v)", depth+1)
			}
		})
	}
}

func TestEnpassantDiscoveredCheckNotGenerated(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	// White king a5, white pawn b5, black pawn just pushed c7-c5 (en-passant target c6),
	// black rook h5: bxc6 would remove both the b5 pawn and the c5 pawn from the fifth
	// rank, exposing the king to the rook along it.
	pos, err := fen.Parse(zobrist, "4k3/8/8/KPp4r/8/8/8/8 w - c6 0 1")
	require.NoError(t, err)

	for _, m := range pos.LegalMoves(board.AllMoves) {
		assert.NotEqual(t, board.Enpassant, m.Kind, "en-passant capture must not be generated: %v", m)
	}
}

func TestEnpassantTargetSquareAfterDoublePush(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, fen.Initial)
	require.NoError(t, err)

	m, err := pos.ResolveUCIMove("e2e4")
	require.NoError(t, err)
	pos.Make(m)
	assert.Equal(t, board.E3, pos.Enpassant(), "white double push e2e4 should skip e3")

	m, err = pos.ResolveUCIMove("d7d5")
	require.NoError(t, err)
	pos.Make(m)
	assert.Equal(t, board.D6, pos.Enpassant(), "black double push d7d5 should skip d6")

	m, err = pos.ResolveUCIMove("e4e5")
	require.NoError(t, err)
	pos.Make(m)

	m, err = pos.ResolveUCIMove("f7f5")
	require.NoError(t, err)
	pos.Make(m)
	assert.Equal(t, board.F6, pos.Enpassant(), "black double push f7f5 should skip f6")

	found := false
	for _, mv := range pos.LegalMoves(board.AllMoves) {
		if mv.Kind == board.Enpassant && mv.To == board.F6 {
			found = true
		}
	}
	assert.True(t, found, "exf6 en-passant capture should be generated")
}

func TestCastlingRightsLostOnRookMove(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, fen.Initial)
	require.NoError(t, err)

	for _, uci := range []string{"e2e4", "e7e5", "g1f3", "g8f6", "f1c4", "f8c5", "h1g1"} {
		m, err := pos.ResolveUCIMove(uci)
		require.NoError(t, err)
		pos.Make(m)
	}

	assert.False(t, pos.Rights().Has(board.WhiteKingside))
	assert.True(t, pos.Rights().Has(board.WhiteQueenside))
}

func TestUCIMoveSequenceReachesExpectedFEN(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, fen.Initial)
	require.NoError(t, err)

	moves := "e2e4 e7e6 d2d4 d7d5 b1d2 c7c5 e4d5 c5d4 f1b5 c8d7 d5e6 f7e6 b5d7 d8d7 " +
		"g1f3 b8c6 e1g1 g8f6 d2c4 g7g6 c1g5 f6e4 g5f4 e8c8"
	for _, uci := range strings.Fields(moves) {
		m, err := pos.ResolveUCIMove(uci)
		require.NoError(t, err, "move %v", uci)
		pos.Make(m)
	}

	assert.Equal(t, "2kr1b1r/pp1q3p/2n1p1p1/8/2NpnB2/5N2/PPP2PPP/R2Q1RK1 w - - 4 13", fen.Render(pos))
}
