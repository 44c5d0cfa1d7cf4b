package engine_test

import (
	"context"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookLookup(t *testing.T) {
	ctx := context.Background()
	zobrist := board.NewZobristTable(0)

	book, err := engine.NewBook(zobrist, []engine.Line{
		{"e2e4", "d7d5", "d2d4"},
		{"e2e4", "d7d6"},
		{"d2d4", "d7d6"},
	})
	require.NoError(t, err)

	tests := []struct {
		fen  string
		want string
		ok   bool
	}{
		{fen.Initial, "d2d4", true},
		{"rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1", "d7d6", true},
		{"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", "", false},
	}

	for _, tt := range tests {
		pos, err := fen.Parse(zobrist, tt.fen)
		require.NoError(t, err)

		m, ok, err := book.Lookup(ctx, pos)
		assert.NoError(t, err)
		assert.Equal(t, tt.ok, ok)
		if tt.ok {
			assert.Equal(t, tt.want, m.UCI())
		}
	}
}

func TestBookRejectsIllegalLine(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	_, err := engine.NewBook(zobrist, []engine.Line{{"e2e5"}})
	assert.Error(t, err)
}
