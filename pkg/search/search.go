// Package search implements iterative-deepening negamax with alpha-beta pruning, a
// quiescence extension, and a transposition table, driven by a pluggable terminator that
// decides when to stop.
package search

import (
	"fmt"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
)

// infinity is used as an unreachable bound; lossValue is the score assigned to being
// checkmated, kept well short of infinity so alpha-beta comparisons against it never tie
// with a bound.
const infinity board.Score = board.MaxScore
const lossValue board.Score = board.MaxScore - 1000

// Terminator decides when a search must stop. It is consulted between nodes at every
// recursive call, never mid-node, so a search step itself always runs to completion once
// started.
type Terminator interface {
	ShouldTerminate(ctx TerminatorContext) bool
}

// TerminatorContext is the information available to a Terminator at the point it is
// consulted.
type TerminatorContext struct {
	DepthCompleted int
	NodesSearched  uint64
	Elapsed        time.Duration
}

// TimeTerminator stops the search once either a wall-clock duration or a depth ceiling is
// exceeded. A zero MaxDepth means no depth ceiling.
type TimeTerminator struct {
	Start    time.Time
	Duration time.Duration
	MaxDepth int
}

func (t TimeTerminator) ShouldTerminate(ctx TerminatorContext) bool {
	if t.MaxDepth > 0 && ctx.DepthCompleted >= t.MaxDepth {
		return true
	}
	return ctx.Elapsed >= t.Duration
}

// Result is the outcome of a complete iterative-deepening search.
type Result struct {
	BestMove           board.Move
	DepthReached       int
	PrincipalVariation []board.Move
	Eval               board.Score
	WallTime           time.Duration
	Nodes              uint64
}

func (r Result) String() string {
	return fmt.Sprintf("depth=%v eval=%v nodes=%v time=%v pv=%v",
		r.DepthReached, r.Eval, r.Nodes, r.WallTime, r.PrincipalVariation)
}
