package poker

import (
	"sort"

	"github.com/Jyouping/sevenhandpoker/internal/deck"
)

// Result is the outcome of comparing two card groups.
type Result int

const (
	ResultTie Result = iota
	ResultFirst
	ResultSecond
)

// Compare decides which of two card groups wins a column. The ladder is
// total: hand rank first, then pairwise descending card ranks (a missing
// slot loses to any real card), then pairwise suit index with the lower
// suit winning. Suit is a strict tiebreak, so only identical groups tie.
func Compare(first, second []deck.Card) (Result, error) {
	rank1, err := Evaluate(first)
	if err != nil {
		return ResultTie, err
	}
	rank2, err := Evaluate(second)
	if err != nil {
		return ResultTie, err
	}

	if rank1 > rank2 {
		return ResultFirst, nil
	}
	if rank1 < rank2 {
		return ResultSecond, nil
	}

	sorted1 := sortedDescending(first)
	sorted2 := sortedDescending(second)
	n := len(sorted1)
	if len(sorted2) > n {
		n = len(sorted2)
	}

	for i := 0; i < n; i++ {
		r1, r2 := -1, -1
		if i < len(sorted1) {
			r1 = int(sorted1[i].Rank)
		}
		if i < len(sorted2) {
			r2 = int(sorted2[i].Rank)
		}
		if r1 > r2 {
			return ResultFirst, nil
		}
		if r1 < r2 {
			return ResultSecond, nil
		}
	}

	// Ranks identical: lower suit index wins, missing slots compare as a
	// sentinel beyond the last real suit.
	for i := 0; i < n; i++ {
		s1, s2 := int(deck.Clubs)+1, int(deck.Clubs)+1
		if i < len(sorted1) {
			s1 = int(sorted1[i].Suit)
		}
		if i < len(sorted2) {
			s2 = int(sorted2[i].Suit)
		}
		if s1 < s2 {
			return ResultFirst, nil
		}
		if s1 > s2 {
			return ResultSecond, nil
		}
	}

	return ResultTie, nil
}

func sortedDescending(cards []deck.Card) []deck.Card {
	sorted := make([]deck.Card, len(cards))
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})
	return sorted
}
