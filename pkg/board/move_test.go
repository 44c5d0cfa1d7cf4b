package board_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveUCI(t *testing.T) {

	t.Run("render", func(t *testing.T) {
		tests := []struct {
			m        board.Move
			expected string
		}{
			{board.NewNormal(board.E2, board.E4, board.NoPiece), "e2e4"},
			{board.NewNormal(board.F3, board.E5, board.BlackPawn), "f3e5"},
			{board.NewPromotion(board.E7, board.E8, board.Queen, board.NoPiece), "e7e8q"},
			{board.NewPromotion(board.A2, board.B1, board.Knight, board.WhiteRook), "a2b1n"},
			{board.NewCastle(board.WhiteKingside), "e1g1"},
			{board.NewCastle(board.BlackQueenside), "e8c8"},
			{board.NewEnpassant(board.E5, board.D6, board.BlackPawn), "e5d6"},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.m.UCI())
		}
	})

	t.Run("parse", func(t *testing.T) {
		from, to, promoted, err := board.ParseUCIMove("e2e4")
		require.NoError(t, err)
		assert.Equal(t, board.E2, from)
		assert.Equal(t, board.E4, to)
		assert.Equal(t, board.NumClasses, promoted)

		from, to, promoted, err = board.ParseUCIMove("e7e8q")
		require.NoError(t, err)
		assert.Equal(t, board.E7, from)
		assert.Equal(t, board.E8, to)
		assert.Equal(t, board.Queen, promoted)

		for _, bad := range []string{"", "e2", "e2e9", "e2e4x", "e7e8k", "e7e8p"} {
			_, _, _, err := board.ParseUCIMove(bad)
			assert.Error(t, err, "%q should not parse", bad)
		}
	})

	t.Run("resolve", func(t *testing.T) {
		zobrist := board.NewZobristTable(0)
		pos, err := fen.Parse(zobrist, "r3k2r/pppp1ppp/8/3Pp3/8/8/PPP1PPPP/R3K2R w KQkq e6 0 8")
		require.NoError(t, err)

		castle, err := pos.ResolveUCIMove("e1g1")
		require.NoError(t, err)
		assert.Equal(t, board.Castle, castle.Kind)
		assert.Equal(t, board.WhiteKingside, castle.Corner)

		ep, err := pos.ResolveUCIMove("d5e6")
		require.NoError(t, err)
		assert.Equal(t, board.Enpassant, ep.Kind)
		assert.Equal(t, board.BlackPawn, ep.Captured)

		_, err = pos.ResolveUCIMove("e1e3")
		require.Error(t, err)
		kind, ok := board.KindOf(err)
		assert.True(t, ok)
		assert.Equal(t, board.IllegalMove, kind)
	})
}

func TestMoveReflect(t *testing.T) {
	tests := []struct {
		m        board.Move
		expected board.Move
	}{
		{board.NewNormal(board.E2, board.E4, board.NoPiece), board.NewNormal(board.E7, board.E5, board.NoPiece)},
		{board.NewNormal(board.F3, board.E5, board.BlackPawn), board.NewNormal(board.F6, board.E4, board.WhitePawn)},
		{board.NewCastle(board.WhiteKingside), board.NewCastle(board.BlackKingside)},
		{board.NewPromotion(board.E7, board.E8, board.Queen, board.NoPiece), board.NewPromotion(board.E2, board.E1, board.Queen, board.NoPiece)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.m.Reflect())
		assert.Equal(t, tt.m, tt.expected.Reflect())
	}
}

func TestMoveIsQuiet(t *testing.T) {
	assert.True(t, board.NewNormal(board.G1, board.F3, board.NoPiece).IsQuiet())
	assert.False(t, board.NewNormal(board.F3, board.E5, board.BlackPawn).IsQuiet())
	assert.False(t, board.NewPromotion(board.E7, board.E8, board.Queen, board.NoPiece).IsQuiet())
	assert.False(t, board.NewEnpassant(board.E5, board.D6, board.BlackPawn).IsQuiet())
}
