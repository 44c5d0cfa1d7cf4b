package board_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquare(t *testing.T) {

	t.Run("parse", func(t *testing.T) {
		tests := []struct {
			str      string
			expected board.Square
		}{
			{"a1", board.A1},
			{"e4", board.E4},
			{"h8", board.H8},
			{"C6", board.C6},
		}

		for _, tt := range tests {
			sq, err := board.ParseSquareStr(tt.str)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sq)
		}

		for _, bad := range []string{"", "a", "i1", "a9", "a1b"} {
			_, err := board.ParseSquareStr(bad)
			assert.Error(t, err, "%q should not parse", bad)
		}
	})

	t.Run("rank_file", func(t *testing.T) {
		assert.Equal(t, board.Rank1, board.A1.Rank())
		assert.Equal(t, board.FileA, board.A1.File())
		assert.Equal(t, board.Rank4, board.E4.Rank())
		assert.Equal(t, board.FileE, board.E4.File())
		assert.Equal(t, board.Rank8, board.H8.Rank())
		assert.Equal(t, board.FileH, board.H8.File())
	})

	t.Run("next", func(t *testing.T) {
		tests := []struct {
			from     board.Square
			dir      board.Direction
			expected board.Square
			ok       bool
		}{
			{board.E4, board.North, board.E5, true},
			{board.E4, board.SouthWest, board.D3, true},
			{board.G1, board.KnightNWW, board.E2, true},
			{board.A1, board.West, 0, false},
			{board.H8, board.KnightNNE, 0, false},
			{board.B1, board.KnightSSW, 0, false},
		}

		for _, tt := range tests {
			next, ok := tt.from.Next(tt.dir)
			assert.Equal(t, tt.ok, ok, "%v next %v", tt.from, tt.dir)
			if ok {
				assert.Equal(t, tt.expected, next, "%v next %v", tt.from, tt.dir)
			}
		}
	})

	t.Run("reflect", func(t *testing.T) {
		tests := []struct {
			sq       board.Square
			expected board.Square
		}{
			{board.A1, board.A8},
			{board.E2, board.E7},
			{board.D4, board.D5},
			{board.H8, board.H1},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.sq.Reflect())
			assert.Equal(t, tt.sq, tt.expected.Reflect())
		}
	})

	t.Run("direction_reflect", func(t *testing.T) {
		// Stepping a reflected direction from a reflected square lands on the reflection
		// of stepping the original direction from the original square.
		for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
			for dir := board.Direction(0); dir < board.NumDirections; dir++ {
				next, ok := sq.Next(dir)
				mirrored, mok := sq.Reflect().Next(dir.Reflect())
				assert.Equal(t, ok, mok, "%v next %v", sq, dir)
				if ok {
					assert.Equal(t, next.Reflect(), mirrored, "%v next %v", sq, dir)
				}
			}
		}
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "a1", board.A1.String())
		assert.Equal(t, "e4", board.E4.String())
		assert.Equal(t, "h8", board.H8.String())
		assert.Equal(t, "-", board.None.String())
	})
}
