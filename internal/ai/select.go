package ai

import (
	"github.com/Jyouping/sevenhandpoker/internal/deck"
	"github.com/Jyouping/sevenhandpoker/internal/game"
	"github.com/Jyouping/sevenhandpoker/poker"
)

// SelectCards picks the hand indices the computer commits this turn.
// Each tier may escalate to the next tier's logic with a configured
// probability.
func (e *Engine) SelectCards(view game.StateView) []int {
	if len(view.Hand) == 0 {
		return nil
	}

	switch e.level {
	case LevelEasy:
		if e.chance(e.cfg.EasySelectEscalate) {
			return e.selectMedium(view)
		}
		return e.selectEasy(view)
	case LevelMedium:
		if e.chance(e.cfg.MediumSelectEscalate) {
			return e.selectHard(view)
		}
		return e.selectMedium(view)
	default:
		return e.selectHard(view)
	}
}

// selectEasy plays a random count of random cards.
func (e *Engine) selectEasy(view game.StateView) []int {
	limit := len(view.Hand)
	if limit > 3 {
		limit = 3
	}
	count := 1 + e.rng.IntN(limit)

	perm := e.rng.Perm(len(view.Hand))
	return perm[:count]
}

// selectMedium plays the best rank group in the hand, falling back to the
// single highest card.
func (e *Engine) selectMedium(view game.StateView) []int {
	analysis := poker.Analyze(view.Hand)

	if quads, ok := analysis.Quads(); ok {
		return indicesOf(view.Hand, quads)
	}
	if trips, ok := analysis.Trips(); ok {
		return indicesOf(view.Hand, trips)
	}
	if pair, ok := analysis.Pair(); ok {
		return indicesOf(view.Hand, pair)
	}
	return []int{highestIndex(view.Hand)}
}

// selectHard analyses the full hand and plays to the game stage: bluff on
// weak holdings, commit the best combination when late or behind, hold
// back strength early.
func (e *Engine) selectHard(view game.StateView) []int {
	analysis := poker.Analyze(view.Hand)
	st := e.stage(view.FilledColumns)
	losing := view.OwnScore < view.OppScore

	best, bestRank := analysis.Best()
	weak := bestRank <= poker.OnePair

	if weak && !(losing && st == stageLate) && e.chance(e.cfg.Bluff) {
		e.logger.Debug("bluffing", "stage", int(st))
		return e.selectBluff(view)
	}

	if st == stageLate || losing {
		return indicesOf(view.Hand, best)
	}

	if st == stageEarly {
		return e.selectConservative(view, analysis)
	}

	// Mid game: quads and trips always commit; anything else plays best
	// only behind a probability gate.
	if quads, ok := analysis.Quads(); ok {
		return indicesOf(view.Hand, quads)
	}
	if trips, ok := analysis.Trips(); ok {
		return indicesOf(view.Hand, trips)
	}
	if e.chance(e.cfg.MidGameBestPlay) {
		return indicesOf(view.Hand, best)
	}
	return e.selectConservative(view, analysis)
}

// selectConservative withholds the strongest holding: two of a triple,
// the weaker of two pairs, otherwise the highest single card.
func (e *Engine) selectConservative(view game.StateView, analysis *poker.Analysis) []int {
	if trips, ok := analysis.Trips(); ok {
		return indicesOf(view.Hand, trips[:2])
	}
	if pairs := analysis.Pairs(); len(pairs) >= 2 {
		return indicesOf(view.Hand, pairs[len(pairs)-1])
	}
	if pair, ok := analysis.Pair(); ok {
		return indicesOf(view.Hand, pair)
	}
	return []int{highestIndex(view.Hand)}
}

// selectBluff fabricates a pair/triple/quad-sized commitment from random
// cards, looking like strength without holding it.
func (e *Engine) selectBluff(view game.StateView) []int {
	size := 2 + e.rng.IntN(3)
	if size > len(view.Hand) {
		size = len(view.Hand)
	}
	perm := e.rng.Perm(len(view.Hand))
	return perm[:size]
}

// indicesOf maps concrete cards back to their hand positions.
func indicesOf(hand []deck.Card, cards []deck.Card) []int {
	out := make([]int, 0, len(cards))
	for _, c := range cards {
		for i, hc := range hand {
			if hc == c {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

// highestIndex returns the position of the highest-ranked card.
func highestIndex(hand []deck.Card) int {
	best := 0
	for i, c := range hand {
		if c.Rank > hand[best].Rank {
			best = i
		}
	}
	return best
}
