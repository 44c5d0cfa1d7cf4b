// Package engine implements the facade described by compute_move: given a position and a
// clock, first try each configured lookup source in order, then fall back to allocating a
// time budget and running search.
package engine

import (
	"context"
	"fmt"
	"time"
	"unsafe"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/corvidchess/corvid/pkg/timectl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"go.uber.org/atomic"
)

var version = build.NewVersion(0, 1, 0)

// Options configures engine tuning.
type Options struct {
	// DepthLimit caps iterative deepening, if set. Unset means no depth ceiling; the
	// search runs until the terminator's wall-clock deadline fires.
	DepthLimit lang.Optional[uint]
	// HashMB is the transposition table size in MB. Zero disables the table.
	HashMB uint
}

func (o Options) String() string {
	depth := "none"
	if d, ok := o.DepthLimit.V(); ok {
		depth = fmt.Sprintf("%v", d)
	}
	return fmt.Sprintf("{depth=%v, hash=%vMB}", depth, o.HashMB)
}

// Engine is the compute_move facade: it owns a Zobrist table for position hashing, a time
// allocator, and the lookup sources to consult before search.
type Engine struct {
	name, author string

	zobrist   *board.ZobristTable
	allocator timectl.Allocator
	opts      Options
	openings  LookupSource
	endgame   LookupSource

	// active guards against two ComputeMove calls running at once: a Position is not
	// thread-safe, so a second call while one is in flight is a caller bug rather than
	// something to queue or merge.
	active atomic.Bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithOptions sets the engine's tuning options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithZobrist configures the engine to hash positions with the given random seed instead
// of the default seed of zero. All positions passed to the same Engine must be parsed
// against its zobrist table for key comparisons (lookup sources, transposition table) to
// be meaningful.
func WithZobrist(seed int64) Option {
	return func(e *Engine) { e.zobrist = board.NewZobristTable(seed) }
}

// WithOpenings configures the opening-book lookup source.
func WithOpenings(src LookupSource) Option {
	return func(e *Engine) { e.openings = src }
}

// WithEndgame configures the endgame-tablebase lookup source.
func WithEndgame(src LookupSource) Option {
	return func(e *Engine) { e.endgame = src }
}

// WithAllocator overrides the default time allocator.
func WithAllocator(a timectl.Allocator) Option {
	return func(e *Engine) { e.allocator = a }
}

// New constructs an Engine. Without WithOpenings/WithEndgame, both lookup sources default
// to NoLookup, so compute_move always falls through to search.
func New(name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:     name,
		author:   author,
		zobrist:  board.NewZobristTable(0),
		openings: NoLookup{},
		endgame:  NoLookup{},
	}
	for _, fn := range opts {
		fn(e)
	}
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the engine author.
func (e *Engine) Author() string {
	return e.author
}

// Features selectively disables individual lookup sources for a single ComputeMove call.
type Features struct {
	DisableOpeningsLookup bool `json:"disableOpeningsLookup,omitempty"`
	DisableEndgameLookup  bool `json:"disableEndgameLookup,omitempty"`
}

// Input is the engine's move-request payload.
type Input struct {
	// StartFEN is the position MovesPlayed is applied to. Empty means the standard
	// starting position.
	StartFEN string `json:"startFen,omitempty"`
	// MovesPlayed is a UCI long-algebraic move sequence applied to StartFEN in order.
	MovesPlayed []string `json:"movesPlayed,omitempty"`
	// RemainingMillis and IncrementMillis describe the side to move's clock.
	RemainingMillis int64    `json:"remainingMillis"`
	IncrementMillis int64    `json:"incrementMillis"`
	Features        Features `json:"features,omitempty"`
}

// SearchDetails reports how the best move was found, populated only when it came from
// search rather than a lookup source.
type SearchDetails struct {
	Depth          int         `json:"depth"`
	DurationMillis int64       `json:"durationMs"`
	Eval           board.Score `json:"eval"`
}

// Output is the engine's move-response payload.
type Output struct {
	BestMove      string         `json:"bestMove"`
	SearchDetails *SearchDetails `json:"searchDetails,omitempty"`
}

// ComputeMove implements compute_move: query each lookup source in order, short-circuiting
// on the first hit; otherwise allocate a time budget from the clock and run search.
func (e *Engine) ComputeMove(ctx context.Context, in Input) (Output, error) {
	if !e.active.CAS(false, true) {
		return Output{}, board.NewError(board.InvariantViolation, "compute_move already in progress")
	}
	defer e.active.Store(false)

	pos, err := e.replay(in)
	if err != nil {
		return Output{}, err
	}

	if out, ok := e.consultLookups(ctx, pos, in.Features); ok {
		return out, nil
	}

	remaining := time.Duration(in.RemainingMillis) * time.Millisecond
	increment := time.Duration(in.IncrementMillis) * time.Millisecond
	budget := e.allocator.Allocate(pos.Ply(), remaining, increment)

	tt, err := e.newTable(ctx)
	if err != nil {
		return Output{}, err
	}

	maxDepth := 0
	if d, ok := e.opts.DepthLimit.V(); ok {
		maxDepth = int(d)
	}
	terminator := search.TimeTerminator{Start: time.Now(), Duration: budget, MaxDepth: maxDepth}

	logw.Infof(ctx, "Searching %v: budget=%v depthLimit=%v", pos, budget, maxDepth)
	result := search.Search(ctx, pos, tt, terminator)
	if result.BestMove == (board.Move{}) {
		return Output{}, board.NewError(board.NotFound, "no legal move in position")
	}
	logw.Infof(ctx, "Best move: %v", result)

	return Output{
		BestMove: result.BestMove.UCI(),
		SearchDetails: &SearchDetails{
			Depth:          result.DepthReached,
			DurationMillis: result.WallTime.Milliseconds(),
			Eval:           result.Eval,
		},
	}, nil
}

// consultLookups queries the configured lookup sources in turn. A lookup I/O error is
// logged and treated the same as a clean miss: fall through to the next source, and
// eventually to search.
func (e *Engine) consultLookups(ctx context.Context, pos *board.Position, f Features) (Output, bool) {
	sources := []struct {
		name     string
		disabled bool
		src      LookupSource
	}{
		{"opening book", f.DisableOpeningsLookup, e.openings},
		{"endgame tablebase", f.DisableEndgameLookup, e.endgame},
	}

	for _, s := range sources {
		if s.disabled || contextx.IsCancelled(ctx) {
			continue
		}
		m, ok, err := s.src.Lookup(ctx, pos)
		if err != nil {
			logw.Errorf(ctx, "%v lookup failed: %v", s.name, err)
			continue
		}
		if ok {
			logw.Infof(ctx, "%v hit: %v", s.name, m)
			return Output{BestMove: m.UCI()}, true
		}
	}
	return Output{}, false
}

func (e *Engine) replay(in Input) (*board.Position, error) {
	start := in.StartFEN
	if start == "" {
		start = fen.Initial
	}
	pos, err := fen.Parse(e.zobrist, start)
	if err != nil {
		return nil, err
	}
	for _, uci := range in.MovesPlayed {
		m, err := pos.ResolveUCIMove(uci)
		if err != nil {
			return nil, err
		}
		pos.Make(m)
	}
	return pos, nil
}

// entrySize is the in-memory footprint of one transposition table slot, used to convert
// Options.HashMB into an entry count.
const entrySize = unsafe.Sizeof(search.Entry{})

func (e *Engine) newTable(ctx context.Context) (search.TranspositionTable, error) {
	if e.opts.HashMB == 0 {
		return search.NoTable{}, nil
	}

	entries := int(uint64(e.opts.HashMB) << 20 / uint64(entrySize))
	if entries > search.MaxTableEntries {
		entries = search.MaxTableEntries
	}
	if entries < 1 {
		entries = 1
	}

	tt, err := search.NewTable(entries)
	if err != nil {
		return nil, err
	}
	logw.Infof(ctx, "Allocated %vMB transposition table: %v entries", e.opts.HashMB, entries)
	return tt, nil
}
