package board_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestMakeUnmakeRoundTrip(t *testing.T) {
	zobrist := board.NewZobristTable(0)

	for _, f := range []string{fen.Initial, kiwipete, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"} {
		pos, err := fen.Parse(zobrist, f)
		require.NoError(t, err)

		before := fen.Render(pos)
		beforeKey := pos.Key()

		for _, m := range pos.LegalMoves(board.AllMoves) {
			pos.Make(m)
			assert.NoError(t, pos.Validate(), "move %v broke an invariant", m)
			require.NoError(t, pos.Unmake())

			assert.Equal(t, before, fen.Render(pos), "move %v did not round trip", m)
			assert.Equal(t, beforeKey, pos.Key(), "move %v left a stale key", m)
			assert.NoError(t, pos.Validate(), "unmaking %v broke an invariant", m)
		}
	}
}

func TestKeyConsistency(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, kiwipete)
	require.NoError(t, err)

	for _, m := range pos.LegalMoves(board.AllMoves) {
		pos.Make(m)
		recomputed := zobrist.Hash(pos.PieceAt, pos.Rights(), pos.Enpassant(), pos.Active())
		assert.Equal(t, recomputed, pos.Key(), "move %v left an inconsistent key", m)
		require.NoError(t, pos.Unmake())
	}
}

func TestLegalMoveSoundness(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, kiwipete)
	require.NoError(t, err)

	mover := pos.Active()
	for _, m := range pos.LegalMoves(board.AllMoves) {
		pos.Make(m)
		assert.False(t, pos.IsChecked(mover), "move %v leaves %v's king in check", m, mover)
		require.NoError(t, pos.Unmake())
	}
}

func TestUnmakeEmptyHistory(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, fen.Initial)
	require.NoError(t, err)

	err = pos.Unmake()
	require.Error(t, err)
	kind, ok := board.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, board.EmptyHistory, kind)
}

func TestPositionReflect(t *testing.T) {
	zobrist := board.NewZobristTable(0)

	tests := []struct {
		fen      string
		expected string
	}{
		{fen.Initial, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1"},
		{
			"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			"r3k2r/pppbbppp/2n2q1P/1P2p3/3pn3/BN2PNP1/P1PPQPB1/R3K2R b KQkq - 0 1",
		},
		{
			"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 2",
			"4k3/8/8/8/3Pp3/8/8/4K3 b - d3 0 2",
		},
	}

	for _, tt := range tests {
		pos, err := fen.Parse(zobrist, tt.fen)
		require.NoError(t, err)

		mirrored, err := pos.Reflect()
		require.NoError(t, err)
		assert.Equal(t, tt.expected, fen.Render(mirrored), "reflect of %q", tt.fen)

		back, err := mirrored.Reflect()
		require.NoError(t, err)
		assert.Equal(t, tt.fen, fen.Render(back), "double reflect of %q", tt.fen)
	}
}

func TestReflectedLegalMovesMirror(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, kiwipete)
	require.NoError(t, err)

	mirrored, err := pos.Reflect()
	require.NoError(t, err)

	moves := pos.LegalMoves(board.AllMoves)
	mirroredMoves := mirrored.LegalMoves(board.AllMoves)
	require.Equal(t, len(moves), len(mirroredMoves))

	want := make(map[string]bool, len(moves))
	for _, m := range moves {
		want[m.Reflect().UCI()] = true
	}
	for _, m := range mirroredMoves {
		assert.True(t, want[m.UCI()], "unmatched mirrored move %v", m)
	}
}

func TestPlyCounter(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, fen.Initial)
	require.NoError(t, err)
	assert.Equal(t, 0, pos.Ply())

	m, err := pos.ResolveUCIMove("e2e4")
	require.NoError(t, err)
	pos.Make(m)
	assert.Equal(t, 1, pos.Ply())

	m, err = pos.ResolveUCIMove("e7e5")
	require.NoError(t, err)
	pos.Make(m)
	assert.Equal(t, 2, pos.Ply())
}
