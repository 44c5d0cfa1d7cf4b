package search

import (
	"context"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/seekerror/logw"
)

// maxPly bounds recursion depth defensively: iterative deepening normally stops long
// before this via the terminator, but a terminator that never fires (e.g. a huge
// duration with no depth ceiling) must not recurse forever.
const maxPly = 128

// Search performs iterative-deepening negamax search from pos, using tt to cache and
// order subtrees and terminator to decide when each iteration — and the search overall —
// must stop. pos is restored to its original state before Search returns (every Make is
// matched by an Unmake).
//
// Iterative deepening always completes depth 1 regardless of terminator state, then
// after each completed depth asks the terminator whether to continue; a deeper iteration
// that the terminator aborts mid-flight is discarded entirely, leaving the previous
// depth's result as the answer.
func Search(ctx context.Context, pos *board.Position, tt TranspositionTable, terminator Terminator) Result {
	start := time.Now()
	var nodes uint64

	var best Result
	for depth := 1; depth <= maxPly; depth++ {
		score, move, aborted := searchRoot(pos, tt, depth, &nodes, terminator, start)
		if aborted && depth > 1 {
			logw.Debugf(ctx, "Depth %v aborted after %v nodes; keeping depth %v", depth, nodes, best.DepthReached)
			break
		}

		best = Result{
			BestMove:           move,
			DepthReached:       depth,
			PrincipalVariation: extractPV(pos, tt, depth),
			Eval:               score,
			WallTime:           time.Since(start),
			Nodes:              nodes,
		}
		logw.Debugf(ctx, "Depth %v complete: %v", depth, best)

		if terminator.ShouldTerminate(TerminatorContext{DepthCompleted: depth, NodesSearched: nodes, Elapsed: time.Since(start)}) {
			break
		}
		if move == (board.Move{}) {
			break // no legal move at the root: terminal position
		}
	}
	return best
}

// searchRoot runs one iterative-deepening pass and additionally reports the move chosen
// at the root, which negamax's generic return value (a score alone) doesn't carry.
func searchRoot(pos *board.Position, tt TranspositionTable, depth int, nodes *uint64, terminator Terminator, start time.Time) (board.Score, board.Move, bool) {
	result := pos.Result()
	if result.IsTerminal() {
		return terminalScore(result), board.Move{}, false
	}

	alpha, beta := -infinity, infinity
	phase := eval.Phase(pos)

	var ttMove board.Move
	if e, ok := tt.Probe(pos.Key()); ok {
		ttMove = e.Move
	}

	moves := board.NewMoveList(pos.LegalMoves(board.AllMoves), board.First(ttMove, orderPriority(pos, phase)))
	var best board.Move
	bound := UpperBound
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}

		pos.Make(m)
		*nodes++
		score, aborted := negamax(pos, tt, depth-1, 1, beta.Negate(), alpha.Negate(), depth, nodes, terminator, start, depth > 1)
		score = score.Negate()
		_ = pos.Unmake()

		if aborted {
			return 0, board.Move{}, true
		}

		if score > alpha {
			alpha = score
			best = m
			bound = ExactBound
		}
		if alpha >= beta {
			bound = LowerBound
			break
		}
	}

	tt.Store(Entry{Key: pos.Key(), Bound: bound, Depth: depth, Score: alpha, Move: best, RootIndex: depth})
	return alpha, best, false
}

// negamax searches one node at remaining depth, returning a score negated for the
// opponent's perspective at the caller. aborted is true iff terminator fired mid-search
// and allowAbort permitted unwinding (the first iterative-deepening depth never aborts).
func negamax(pos *board.Position, tt TranspositionTable, depth, ply int, alpha, beta board.Score, rootIndex int, nodes *uint64, terminator Terminator, start time.Time, allowAbort bool) (board.Score, bool) {
	if allowAbort && terminator.ShouldTerminate(TerminatorContext{DepthCompleted: rootIndex - 1, NodesSearched: *nodes, Elapsed: time.Since(start)}) {
		return 0, true
	}

	result := pos.Result()
	if result.IsTerminal() {
		return terminalScore(result), false
	}
	if depth <= 0 || ply >= maxPly {
		return Quiescence(pos, alpha, beta, -1), false
	}

	key := pos.Key()
	var ttMove board.Move
	if e, ok := tt.Probe(key); ok {
		ttMove = e.Move
		if e.Depth >= depth {
			switch e.Bound {
			case ExactBound:
				return e.Score, false
			case LowerBound:
				if e.Score >= beta {
					return e.Score, false
				}
			case UpperBound:
				if e.Score <= alpha {
					return e.Score, false
				}
			}
		}
	}

	phase := eval.Phase(pos)
	moves := board.NewMoveList(pos.LegalMoves(board.AllMoves), board.First(ttMove, orderPriority(pos, phase)))

	var best board.Move
	bound := UpperBound
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}

		pos.Make(m)
		*nodes++
		score, aborted := negamax(pos, tt, depth-1, ply+1, beta.Negate(), alpha.Negate(), rootIndex, nodes, terminator, start, allowAbort)
		score = score.Negate()
		_ = pos.Unmake()

		if aborted {
			return 0, true
		}

		if score > alpha {
			alpha = score
			best = m
			bound = ExactBound
		}
		if alpha >= beta {
			bound = LowerBound
			break
		}
	}

	tt.Store(Entry{Key: key, Bound: bound, Depth: depth, Score: alpha, Move: best, RootIndex: rootIndex})
	return alpha, false
}

// terminalScore converts a Result at the side-to-move's node into a negamax score: a loss
// for the side to move is the worst possible outcome, a draw is exactly zero.
func terminalScore(r board.Result) board.Score {
	if r.Outcome == board.Loss {
		return -lossValue
	}
	return 0
}

// extractPV follows the chain of best moves recorded in tt starting at pos's current
// position, replaying each one to read the next entry, up to maxLen moves. pos is
// restored to its original state before returning.
func extractPV(pos *board.Position, tt TranspositionTable, maxLen int) []board.Move {
	var pv []board.Move
	played := 0
	for i := 0; i < maxLen; i++ {
		e, ok := tt.Probe(pos.Key())
		if !ok || e.Bound != ExactBound || e.Move == (board.Move{}) {
			break
		}
		pos.Make(e.Move)
		played++
		pv = append(pv, e.Move)
	}
	for i := 0; i < played; i++ {
		_ = pos.Unmake()
	}
	return pv
}

// orderPriority scores a move for ordering purposes, highest first: good exchanges,
// then special moves (promotions, castles, en-passant), then quiet moves by how much
// better their destination square is than their origin, then losing exchanges last.
func orderPriority(pos *board.Position, phase int) board.MovePriorityFn {
	return func(m board.Move) board.MovePriority {
		switch {
		case m.Kind == board.Promotion:
			delta := eval.MidValue(m.Promoted) - eval.MidValue(board.Pawn)
			if m.IsCapture() {
				delta += eval.MidValue(m.Captured.Class())
			}
			return board.MovePriority(10000 + delta)

		case m.Kind == board.Castle || m.Kind == board.Enpassant:
			return 10000

		case m.IsCapture():
			see := SEE(pos, m)
			if see > 0 {
				return board.MovePriority(20000 + see)
			}
			return board.MovePriority(see)

		default:
			piece := pos.PieceAt(m.From)
			fromMid, fromEnd := eval.SquareValue(piece, m.From)
			toMid, toEnd := eval.SquareValue(piece, m.To)
			return board.MovePriority(eval.Interpolate(toMid-fromMid, toEnd-fromEnd, phase))
		}
	}
}
