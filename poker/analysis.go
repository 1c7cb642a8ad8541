package poker

import (
	"sort"

	"github.com/Jyouping/sevenhandpoker/internal/deck"
)

// Analysis is a breakdown of a player hand by rank and suit groups, used
// by the computer opponent to pick card groups to commit. All lookups
// return an explicit ok flag instead of assuming a group exists.
type Analysis struct {
	cards []deck.Card

	// quads, trips and pairs hold complete rank groups sorted by rank
	// descending, trimmed to the group size (a rank with four cards
	// appears in quads only).
	quads [][]deck.Card
	trips [][]deck.Card
	pairs [][]deck.Card

	flushDraw   []deck.Card
	straightRun []deck.Card
}

// Analyze builds an Analysis of the given hand.
func Analyze(cards []deck.Card) *Analysis {
	a := &Analysis{cards: make([]deck.Card, len(cards))}
	copy(a.cards, cards)

	byRank := make(map[deck.Rank][]deck.Card)
	bySuit := make(map[deck.Suit][]deck.Card)
	for _, c := range a.cards {
		byRank[c.Rank] = append(byRank[c.Rank], c)
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	ranks := make([]deck.Rank, 0, len(byRank))
	for r := range byRank {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	for _, r := range ranks {
		group := byRank[r]
		switch {
		case len(group) >= 4:
			a.quads = append(a.quads, group[:4])
		case len(group) == 3:
			a.trips = append(a.trips, group)
		case len(group) == 2:
			a.pairs = append(a.pairs, group)
		}
	}

	// Flush draw: four or more of one suit, strongest five kept.
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		group := bySuit[suit]
		if len(group) < 4 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Rank > group[j].Rank })
		if len(group) > 5 {
			group = group[:5]
		}
		if len(group) > len(a.flushDraw) {
			a.flushDraw = group
		}
	}

	a.straightRun = longestRun(a.cards)
	return a
}

// Quads returns the highest four of a kind in the hand.
func (a *Analysis) Quads() ([]deck.Card, bool) {
	if len(a.quads) == 0 {
		return nil, false
	}
	return a.quads[0], true
}

// Trips returns the highest three of a kind in the hand.
func (a *Analysis) Trips() ([]deck.Card, bool) {
	if len(a.trips) == 0 {
		return nil, false
	}
	return a.trips[0], true
}

// Pair returns the highest pair in the hand.
func (a *Analysis) Pair() ([]deck.Card, bool) {
	if len(a.pairs) == 0 {
		return nil, false
	}
	return a.pairs[0], true
}

// Pairs returns every pair in the hand, strongest first.
func (a *Analysis) Pairs() [][]deck.Card {
	return a.pairs
}

// FullHouse returns trips plus a pair when both exist.
func (a *Analysis) FullHouse() ([]deck.Card, bool) {
	trips, ok := a.Trips()
	if !ok {
		return nil, false
	}
	pair, ok := a.Pair()
	if !ok {
		return nil, false
	}
	return append(append([]deck.Card{}, trips...), pair...), true
}

// Flush returns five suited cards when the hand holds them.
func (a *Analysis) Flush() ([]deck.Card, bool) {
	if len(a.flushDraw) < 5 {
		return nil, false
	}
	return a.flushDraw, true
}

// FlushDraw returns the longest suited group of four or more cards.
func (a *Analysis) FlushDraw() ([]deck.Card, bool) {
	if len(a.flushDraw) < 4 {
		return nil, false
	}
	return a.flushDraw, true
}

// Straight returns five consecutive-rank cards when the hand holds them.
func (a *Analysis) Straight() ([]deck.Card, bool) {
	if len(a.straightRun) < 5 {
		return nil, false
	}
	return a.straightRun[len(a.straightRun)-5:], true
}

// StraightFlush returns five consecutive cards of one suit.
func (a *Analysis) StraightFlush() ([]deck.Card, bool) {
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		var suited []deck.Card
		for _, c := range a.cards {
			if c.Suit == suit {
				suited = append(suited, c)
			}
		}
		run := longestRun(suited)
		if len(run) >= 5 {
			return run[len(run)-5:], true
		}
	}
	return nil, false
}

// StraightDraw returns the longest run of three or more distinct
// consecutive ranks.
func (a *Analysis) StraightDraw() ([]deck.Card, bool) {
	if len(a.straightRun) < 3 {
		return nil, false
	}
	return a.straightRun, true
}

// TwoPair returns the two strongest pairs when at least two exist.
func (a *Analysis) TwoPair() ([]deck.Card, bool) {
	if len(a.pairs) < 2 {
		return nil, false
	}
	return append(append([]deck.Card{}, a.pairs[0]...), a.pairs[1]...), true
}

// HighCard returns the single strongest card in the hand.
func (a *Analysis) HighCard() (deck.Card, bool) {
	if len(a.cards) == 0 {
		return deck.Card{}, false
	}
	best := a.cards[0]
	for _, c := range a.cards[1:] {
		if c.Rank > best.Rank {
			best = c
		}
	}
	return best, true
}

// Best returns the strongest complete combination the hand can commit,
// checked in strict descending hand-rank order.
func (a *Analysis) Best() ([]deck.Card, HandRank) {
	if group, ok := a.StraightFlush(); ok {
		return group, StraightFlush
	}
	if group, ok := a.Quads(); ok {
		return group, FourOfAKind
	}
	if group, ok := a.FullHouse(); ok {
		return group, FullHouse
	}
	if group, ok := a.Flush(); ok {
		return group, Flush
	}
	if group, ok := a.Straight(); ok {
		return group, Straight
	}
	if group, ok := a.Trips(); ok {
		return group, ThreeOfAKind
	}
	if group, ok := a.TwoPair(); ok {
		return group, TwoPair
	}
	if group, ok := a.Pair(); ok {
		return group, OnePair
	}
	if card, ok := a.HighCard(); ok {
		return []deck.Card{card}, HighCard
	}
	return nil, HighCard
}

// longestRun returns the longest sequence of distinct consecutive ranks,
// preferring the highest-ending run on equal length. Duplicated ranks
// contribute one card each.
func longestRun(cards []deck.Card) []deck.Card {
	if len(cards) == 0 {
		return nil
	}

	byRank := make(map[deck.Rank]deck.Card, len(cards))
	for _, c := range cards {
		if _, ok := byRank[c.Rank]; !ok {
			byRank[c.Rank] = c
		}
	}
	ranks := make([]deck.Rank, 0, len(byRank))
	for r := range byRank {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })

	var best, current []deck.Rank
	for i, r := range ranks {
		if i > 0 && r == ranks[i-1]+1 {
			current = append(current, r)
		} else {
			current = []deck.Rank{r}
		}
		if len(current) >= len(best) {
			best = append([]deck.Rank{}, current...)
		}
	}

	run := make([]deck.Card, len(best))
	for i, r := range best {
		run[i] = byRank[r]
	}
	return run
}
