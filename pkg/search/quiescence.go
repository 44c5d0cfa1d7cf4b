package search

import "github.com/corvidchess/corvid/pkg/board"
import "github.com/corvidchess/corvid/pkg/eval"

// deltaMargin is added on top of a capture's optimistic gain before comparing against
// alpha in quiescence delta pruning.
const deltaMargin board.Score = 200

// deltaPruneMinPhase is the phase floor (of 256) at which delta pruning switches on:
// only once a tenth of the material has left the board. In the opening band below it,
// positional swings dwarf the margin and pruning on material alone misjudges too often.
const deltaPruneMinPhase = 26

// category buckets a quiescence move for ordering and pruning purposes.
type category int

const (
	categoryOther category = iota
	categoryPromotion
	categoryGoodExchange
	categoryBadExchange
)

type scoredMove struct {
	move     board.Move
	kind     category
	score    board.Score
	optimism board.Score // optimistic material delta, used by delta pruning
}

// Quiescence searches captures (and, near the main search frontier, checks) beyond the
// horizon to avoid misjudging positions mid-exchange. depth starts at -1 and decreases
// with each ply below the main search's leaves.
func Quiescence(pos *board.Position, alpha, beta board.Score, depth int) board.Score {
	result := pos.Result()
	if result.IsTerminal() {
		if result.Outcome == board.Loss {
			return -lossValue
		}
		return 0
	}

	inCheck := pos.IsChecked(pos.Active())

	standPat := -infinity
	if !inCheck {
		standPat = eval.Evaluate(pos)
	}
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := quiescenceMoves(pos, inCheck, depth)
	phase := eval.Phase(pos)

	best := alpha
	for _, sm := range moves {
		if !inCheck {
			if sm.kind == categoryBadExchange {
				continue // skip losing exchanges entirely when not in check
			}
			// Delta pruning compares against the stand-pat baseline, not the running
			// best: even granting the capture its full optimistic gain plus a margin,
			// the move cannot lift this node above alpha.
			if sm.kind == categoryGoodExchange && depth < -1 && phase >= deltaPruneMinPhase &&
				standPat+sm.optimism+deltaMargin < alpha {
				continue
			}
		}

		pos.Make(sm.move)
		score := -Quiescence(pos, -beta, -best, depth-1)
		_ = pos.Unmake()

		if score > best {
			best = score
		}
		if best >= beta {
			return beta
		}
	}
	return best
}

// quiescenceMoves generates and categorizes the moves quiescence should consider at this
// node, sorted by descending score so good captures and promotions are tried first.
func quiescenceMoves(pos *board.Position, inCheck bool, depth int) []scoredMove {
	var selector board.Selector
	switch {
	case inCheck:
		selector = board.AllMoves
	case depth < -1:
		selector = board.AreAny(board.Attacking, board.Promoting)
	default:
		selector = board.AreAny(board.Attacking, board.Checking, board.Promoting)
	}

	legal := pos.LegalMoves(selector)
	scored := make([]scoredMove, len(legal))
	for i, m := range legal {
		scored[i] = categorize(pos, m)
	}
	return sortScoredMoves(scored)
}

func sortScoredMoves(moves []scoredMove) []scoredMove {
	for i := 1; i < len(moves); i++ {
		j := i
		for j > 0 && moves[j-1].score < moves[j].score {
			moves[j-1], moves[j] = moves[j], moves[j-1]
			j--
		}
	}
	return moves
}

func categorize(pos *board.Position, m board.Move) scoredMove {
	switch m.Kind {
	case board.Enpassant, board.Castle, board.Null:
		return scoredMove{move: m, kind: categoryOther, score: 5000}
	case board.Promotion:
		delta := eval.MidValue(m.Promoted) - eval.MidValue(board.Pawn)
		if m.IsCapture() {
			delta += eval.MidValue(m.Captured.Class())
		}
		return scoredMove{move: m, kind: categoryPromotion, score: 20000 + delta, optimism: delta}
	default:
		if !m.IsCapture() {
			return scoredMove{move: m, kind: categoryOther, score: 5000}
		}
		see := SEE(pos, m)
		if see > 0 {
			return scoredMove{move: m, kind: categoryGoodExchange, score: 20000 + see, optimism: see}
		}
		return scoredMove{move: m, kind: categoryBadExchange, score: see}
	}
}
