// Package timectl maps remaining clock and increment to a per-move compute budget, the
// duration the engine facade hands to a search.TimeTerminator.
package timectl

import "time"

// DefaultLatency is subtracted from the allocated budget to leave room for the
// round trip between the engine deciding on a move and the clock actually stopping.
const DefaultLatency = 200 * time.Millisecond

// DefaultMinCompute is the smallest budget ever handed back, even under a losing clock.
const DefaultMinCompute = 200 * time.Millisecond

// Allocator computes a per-move search budget from the clock. The zero value uses
// DefaultLatency and DefaultMinCompute.
type Allocator struct {
	Latency    time.Duration
	MinCompute time.Duration
}

func (a Allocator) latency() time.Duration {
	if a.Latency > 0 {
		return a.Latency
	}
	return DefaultLatency
}

func (a Allocator) minCompute() time.Duration {
	if a.MinCompute > 0 {
		return a.MinCompute
	}
	return DefaultMinCompute
}

// Allocate returns how long the search should run, given how many half-moves have been
// played so far this game and the side to move's remaining clock and increment.
//
// Close to flagging (remaining under 5x the floor budget) with an increment available,
// the allocator plays only for the increment minus latency: spending down the main clock
// risks losing on time before the position even matters. Otherwise it divides the
// remaining time across the estimated number of moves left in the game, using a published
// estimator for expected moves remaining rather than a flat assumption.
func (a Allocator) Allocate(halfMovesPlayed int, remaining, increment time.Duration) time.Duration {
	latency := a.latency()
	minCompute := a.minCompute()

	if remaining < 5*(minCompute+latency) && increment > 0 {
		return max(minCompute, increment-latency)
	}

	expRemaining := halfMovesRemaining(halfMovesPlayed) / 2
	budget := time.Duration(float64(remaining-latency)/expRemaining) + increment
	return max(minCompute, budget)
}

// halfMovesRemaining is a published estimator (CCRL-style) of how many half-moves remain
// in a game that has already played k half-moves: it starts near 87 at the opening, falls
// to a minimum of about 47.5 around k = 94, and then rises slowly back toward 59.3.
func halfMovesRemaining(k int) float64 {
	fk := float64(k)
	return 59.3 + (72830-2330*fk)/(2644+fk*(10+fk))
}
