package fen_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRenderRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
	}

	zobrist := board.NewZobristTable(0)
	for _, tt := range tests {
		pos, err := fen.Parse(zobrist, tt)
		require.NoError(t, err)
		assert.Equal(t, tt, fen.Render(pos))
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -",  // too few fields
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", // invalid active color
		"8/8/8/8/8/8/8/8 w - - 0 1",                              // no kings
	}

	zobrist := board.NewZobristTable(0)
	for _, tt := range tests {
		_, err := fen.Parse(zobrist, tt)
		assert.Error(t, err)
	}
}
