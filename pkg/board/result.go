package board

// Reason names why a game ended.
type Reason uint8

const (
	NoReason Reason = iota
	Checkmate
	Stalemate
	FiftyMoveRule
	ThreefoldRepetition
	InsufficientMaterial
)

func (r Reason) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveRule:
		return "fifty_move_rule"
	case ThreefoldRepetition:
		return "threefold_repetition"
	case InsufficientMaterial:
		return "insufficient_material"
	default:
		return "none"
	}
}

// Outcome names the overall game result, independent of which side is "to move".
type Outcome uint8

const (
	Undecided Outcome = iota
	Loss
	Draw
)

// Result is the terminal classification of a position from the perspective of the side
// to move: Loss if that side has no legal moves and is in check (checkmate), Draw for
// stalemate, the fifty-move rule, threefold repetition or insufficient material, and
// Undecided otherwise. There is no Win case from the side-to-move's own perspective,
// since a side can never force checkmate against a position with itself to move.
type Result struct {
	Outcome Outcome
	Reason  Reason
}

// IsTerminal reports whether the game is over.
func (r Result) IsTerminal() bool {
	return r.Outcome != Undecided
}

var undecided = Result{Outcome: Undecided, Reason: NoReason}

func lossBy(reason Reason) Result { return Result{Outcome: Loss, Reason: reason} }
func drawBy(reason Reason) Result { return Result{Outcome: Draw, Reason: reason} }

// Result classifies whether the game is over in p, from the side-to-move's perspective.
// The "king can move" fast path is implicit: LegalMoves is only as expensive as the board
// actually is, and is consulted first since checkmate/stalemate take priority over the
// move-count based draws below.
func (p *Position) Result() Result {
	if p.hasResult {
		return p.resultCache
	}
	r := p.computeResult()
	p.resultCache = r
	p.hasResult = true
	return r
}

func (p *Position) computeResult() Result {
	if len(p.LegalMoves(AllMoves)) == 0 {
		if p.IsChecked(p.active) {
			return lossBy(Checkmate)
		}
		return drawBy(Stalemate)
	}
	if p.halfmoveClock >= 100 {
		return drawBy(FiftyMoveRule)
	}
	if p.repetitionCount() >= 3 {
		return drawBy(ThreefoldRepetition)
	}
	if p.hasInsufficientMaterial() {
		return drawBy(InsufficientMaterial)
	}
	return undecided
}

// repetitionCount returns the number of times the current key occurs in the history kept
// since the last irreversible move, which always includes the current position itself.
func (p *Position) repetitionCount() int {
	count := 0
	for _, k := range p.keyHistory {
		if k == p.key {
			count++
		}
	}
	return count
}

// hasInsufficientMaterial reports whether no sequence of legal moves could lead to
// checkmate given the material on the board: king-only or king-plus-single-minor on both
// sides, or bishops of like color with otherwise bare kings.
func (p *Position) hasInsufficientMaterial() bool {
	heavy := p.Pieces(WhitePawn).Union(p.Pieces(BlackPawn)).
		Union(p.Pieces(WhiteRook)).Union(p.Pieces(BlackRook)).
		Union(p.Pieces(WhiteQueen)).Union(p.Pieces(BlackQueen))
	if !heavy.IsEmpty() {
		return false
	}

	whiteMinors := p.Pieces(WhiteKnight).Union(p.Pieces(WhiteBishop)).PopCount()
	blackMinors := p.Pieces(BlackKnight).Union(p.Pieces(BlackBishop)).PopCount()

	switch {
	case whiteMinors == 0 && blackMinors == 0:
		return true
	case whiteMinors+blackMinors == 1:
		return true
	case whiteMinors == 1 && blackMinors == 1 &&
		p.Pieces(WhiteBishop).PopCount() == 1 && p.Pieces(BlackBishop).PopCount() == 1:
		wb := p.Pieces(WhiteBishop).First()
		bb := p.Pieces(BlackBishop).First()
		return squareColor(wb) == squareColor(bb)
	default:
		return false
	}
}

func squareColor(sq Square) int {
	return (int(sq.File()) + int(sq.Rank())) % 2
}
