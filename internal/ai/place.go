package ai

import (
	"slices"

	"github.com/Jyouping/sevenhandpoker/internal/deck"
	"github.com/Jyouping/sevenhandpoker/internal/game"
	"github.com/Jyouping/sevenhandpoker/poker"
)

// ChooseColumn picks the column the opponent's confirmed cards are forced
// into. Valid columns are those where the opponent has not placed yet; if
// none remains (structurally impossible while the game runs) column 0 is
// the last resort.
func (e *Engine) ChooseColumn(view game.StateView, incoming []deck.Card) int {
	open := openColumns(view)
	if len(open) == 0 {
		return 0
	}

	switch e.level {
	case LevelEasy:
		if e.chance(e.cfg.EasyPlaceEscalate) {
			return e.placeMedium(view, incoming, open)
		}
		return open[e.rng.IntN(len(open))]
	case LevelMedium:
		if e.chance(e.cfg.MediumPlaceEscalate) {
			return e.placeHard(view, incoming, open)
		}
		return e.placeMedium(view, incoming, open)
	default:
		return e.placeHard(view, incoming, open)
	}
}

// placeMedium avoids gifting a three-in-a-row and otherwise looks for a
// column it already wins, falling back to a rotation from a random
// offset.
func (e *Engine) placeMedium(view game.StateView, incoming []deck.Card, open []int) int {
	incomingRank := evaluateIncoming(incoming)

	// Drop columns adjacent to one the opponent already owns.
	candidates := make([]int, 0, len(open))
	for _, col := range open {
		if !adjacentToOwned(view, col, false) {
			candidates = append(candidates, col)
		}
	}
	if len(candidates) == 0 {
		candidates = open
	}

	// Prefer a column our own placed cards already match or beat.
	bestCol, bestRank := -1, poker.HighCard
	for _, col := range candidates {
		rank, ok := ownRank(view, col)
		if !ok {
			continue
		}
		if rank >= incomingRank && (bestCol < 0 || rank > bestRank) {
			bestCol, bestRank = col, rank
		}
	}
	if bestCol >= 0 {
		return bestCol
	}

	// Random pick among the survivors keeps the fallback spread out.
	return candidates[e.rng.IntN(len(candidates))]
}

// placeHard applies the priority ladder: avoid handing over a run,
// sacrifice weak columns against strong incoming hands, bank columns the
// engine already wins, extend its own runs, then shape the fallback by
// the size of the incoming group.
func (e *Engine) placeHard(view game.StateView, incoming []deck.Card, open []int) int {
	incomingRank := evaluateIncoming(incoming)

	// Blocking pass: a column the incoming hand likely wins, sitting
	// where a win would complete an opponent run of three, is off the
	// table while any alternative exists.
	candidates := make([]int, 0, len(open))
	for _, col := range open {
		if e.likelyLoses(view, col, incomingRank) && completesOpponentRun(view, col) {
			continue
		}
		candidates = append(candidates, col)
	}
	if len(candidates) == 0 {
		candidates = open
	}

	// Strong incoming hand: dump it where our existing cards were weak
	// anyway, minimising what the loss costs.
	if incomingRank >= poker.TwoPair {
		sacCol, sacRank := -1, poker.HandRank(0)
		for _, col := range candidates {
			rank, ok := ownRank(view, col)
			if !ok || rank > poker.OnePair {
				continue
			}
			if sacCol < 0 || rank < sacRank {
				sacCol, sacRank = col, rank
			}
		}
		if sacCol >= 0 {
			return sacCol
		}
	}

	// Bank a column we strictly win, the bigger the margin the better.
	bestCol, bestMargin := -1, 0
	for _, col := range candidates {
		rank, ok := ownRank(view, col)
		if !ok || rank <= incomingRank {
			continue
		}
		margin := int(rank - incomingRank)
		if margin > bestMargin {
			bestCol, bestMargin = col, margin
		}
	}
	if bestCol >= 0 {
		return bestCol
	}

	// Build toward our own three-in-a-row.
	for _, col := range candidates {
		if adjacentToOwned(view, col, true) {
			return col
		}
	}

	// Big incoming groups go to the edges to cap the loss; small ones go
	// to the middle where placement stays flexible.
	order := middleFirst
	if len(incoming) >= 3 {
		order = outerFirst
	}
	for _, col := range order {
		if slices.Contains(candidates, col) {
			return col
		}
	}
	return candidates[0]
}

var (
	outerFirst  = []int{0, 6, 1, 5, 2, 4, 3}
	middleFirst = []int{3, 2, 4, 1, 5, 0, 6}
)

// likelyLoses estimates whether the incoming cards would beat what the
// engine has placed in a column. An empty own side counts as a loss risk
// against anything better than a lone high card.
func (e *Engine) likelyLoses(view game.StateView, col int, incomingRank poker.HandRank) bool {
	rank, ok := ownRank(view, col)
	if !ok {
		return incomingRank > poker.HighCard
	}
	return rank < incomingRank
}

// completesOpponentRun reports whether the opponent owning this column
// would give them three adjacent coins.
func completesOpponentRun(view game.StateView, col int) bool {
	owned := func(c int) bool {
		if c == col {
			return true
		}
		return c >= 0 && c < game.NumColumns && view.OwnedBy(false, c)
	}

	run := 0
	for c := 0; c < game.NumColumns; c++ {
		if owned(c) {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

// adjacentToOwned reports whether a neighbouring column's coin belongs to
// the engine (self) or the opponent.
func adjacentToOwned(view game.StateView, col int, self bool) bool {
	for _, c := range []int{col - 1, col + 1} {
		if c >= 0 && c < game.NumColumns && view.OwnedBy(self, c) {
			return true
		}
	}
	return false
}

// ownRank evaluates the engine's existing cards in a column.
func ownRank(view game.StateView, col int) (poker.HandRank, bool) {
	cards := view.OwnColumns[col]
	if len(cards) == 0 {
		return poker.HighCard, false
	}
	return poker.MustEvaluate(cards), true
}

// evaluateIncoming ranks the opponent's pending cards, treating malformed
// input as a high card rather than failing the placement.
func evaluateIncoming(incoming []deck.Card) poker.HandRank {
	rank, err := poker.Evaluate(incoming)
	if err != nil {
		return poker.HighCard
	}
	return rank
}

func openColumns(view game.StateView) []int {
	var open []int
	for col := 0; col < game.NumColumns; col++ {
		if isOpen(view, col) {
			open = append(open, col)
		}
	}
	return open
}

// isOpen reports whether the opponent can still place into a column.
func isOpen(view game.StateView, col int) bool {
	return len(view.OppColumns[col]) == 0
}
