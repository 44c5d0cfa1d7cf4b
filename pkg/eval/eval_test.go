package eval_test

import (
	"strings"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reflectFEN mirrors a FEN vertically and swaps piece colors, producing the position that
// looks identical to the original from the other side's perspective.
func reflectFEN(t *testing.T, f string) string {
	t.Helper()

	fields := strings.Fields(f)
	require.Len(t, fields, 6)

	ranks := strings.Split(fields[0], "/")
	require.Len(t, ranks, 8)
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	for i, r := range ranks {
		ranks[i] = swapCase(r)
	}
	placement := strings.Join(ranks, "/")

	active := "w"
	if fields[1] == "w" {
		active = "b"
	}

	castle := fields[2]
	if castle != "-" {
		castle = swapCase(castle)
	}

	ep := fields[3]
	if ep != "-" {
		rank := ep[1]
		reflected := byte('9') - rank
		ep = ep[:1] + string(reflected)
	}

	return strings.Join([]string{placement, active, castle, ep, fields[4], fields[5]}, " ")
}

func swapCase(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z':
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

func TestEvaluateReflectionSymmetry(t *testing.T) {
	positions := []string{
		fen.Initial,
		"r1bqkb1r/pp1n1ppp/2p1pn2/3p4/2PP4/2N2N2/PP2PPPP/R1BQKB1R w KQkq - 0 6",
		"6k1/5ppp/8/8/8/8/1Q6/6K1 w - - 12 30",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}

	for _, f := range positions {
		zobrist := board.NewZobristTable(0)
		pos, err := fen.Parse(zobrist, f)
		require.NoError(t, err)

		mirrored, err := fen.Parse(zobrist, reflectFEN(t, f))
		require.NoError(t, err)

		assert.Equal(t, eval.Evaluate(pos), eval.Evaluate(mirrored), "FEN %q is not reflection symmetric", f)
	}
}

func TestMaterialFavorsExtraQueen(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	require.NoError(t, err)

	mid, end := eval.Material(pos)
	assert.Positive(t, mid)
	assert.Positive(t, end)
}

func TestMaterialIsBalancedAtStart(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, fen.Initial)
	require.NoError(t, err)

	mid, end := eval.Material(pos)
	assert.Equal(t, board.Score(0), mid)
	assert.Equal(t, board.Score(0), end)
}

func TestPhaseStartsAtZeroAndRisesAsMaterialLeavesTheBoard(t *testing.T) {
	zobrist := board.NewZobristTable(0)

	start, err := fen.Parse(zobrist, fen.Initial)
	require.NoError(t, err)
	assert.Equal(t, 0, eval.Phase(start))

	bare, err := fen.Parse(zobrist, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, 256, eval.Phase(bare))
}

func TestInterpolateBlendsByPhase(t *testing.T) {
	assert.Equal(t, board.Score(100), eval.Interpolate(100, 200, 0))
	assert.Equal(t, board.Score(200), eval.Interpolate(100, 200, 256))
	assert.Equal(t, board.Score(150), eval.Interpolate(100, 200, 128))
}
