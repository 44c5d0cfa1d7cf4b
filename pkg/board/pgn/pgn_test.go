package pgn_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/board/pgn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMovetextAppliesEveryMove(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, fen.Initial)
	require.NoError(t, err)

	require.NoError(t, pgn.ParseMovetext(pos, "1.e4 e5 2.Nf3 Nc6 3.Bb5 a6 4.Ba4 Nf6 5.O-O Be7 1/2-1/2"))

	assert.Equal(t, "r1bqk2r/1pppbppp/p1n2n2/4p3/B3P3/5N2/PPPP1PPP/RNBQ1RK1 w kq - 4 6", fen.Render(pos))
}

func TestMovetextRoundTrip(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	movetext := "1.e4 e5 2.Nf3 Nc6 3.Bb5 a6 4.Ba4 Nf6 5.O-O Be7"

	pos, err := fen.Parse(zobrist, fen.Initial)
	require.NoError(t, err)
	require.NoError(t, pgn.ParseMovetext(pos, movetext))

	moves := pos.History()
	endFEN := fen.Render(pos)
	for range moves {
		require.NoError(t, pos.Unmake())
	}

	rendered, err := pgn.RenderMovetext(pos, moves)
	require.NoError(t, err)
	assert.Equal(t, movetext, rendered)
	assert.Equal(t, fen.Initial, fen.Render(pos), "rendering must not disturb the position")

	require.NoError(t, pgn.ParseMovetext(pos, rendered))
	assert.Equal(t, endFEN, fen.Render(pos))
}

func TestRenderMovetextRejectsIllegalMove(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, fen.Initial)
	require.NoError(t, err)

	_, err = pgn.RenderMovetext(pos, []board.Move{board.NewNormal(board.E2, board.E5, board.NoPiece)})
	assert.Error(t, err)
	assert.Equal(t, fen.Initial, fen.Render(pos))
}

func TestMoveSANDisambiguatesByFile(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, "6k1/8/8/8/1K6/8/8/R6R w - - 0 1")
	require.NoError(t, err)

	legal := pos.LegalMoves(board.AllMoves)
	var toD1 []board.Move
	for _, m := range legal {
		if m.To == board.D1 && pos.PieceAt(m.From).Class() == board.Rook {
			toD1 = append(toD1, m)
		}
	}
	require.Len(t, toD1, 2)

	for _, m := range toD1 {
		san := pgn.MoveSAN(pos, m, legal)
		assert.Contains(t, san, m.From.File().String())
	}
}

func TestMoveSANCheckSuffix(t *testing.T) {
	zobrist := board.NewZobristTable(0)
	pos, err := fen.Parse(zobrist, "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	legal := pos.LegalMoves(board.AllMoves)
	var m board.Move
	for _, c := range legal {
		if c.To == board.A8 {
			m = c
			break
		}
	}
	require.NotEqual(t, board.Move{}, m)

	san := pgn.MoveSAN(pos, m, legal)
	assert.Equal(t, "Ra8#", san)
}
