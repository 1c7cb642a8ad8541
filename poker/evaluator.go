// Package poker evaluates and compares the 1-5 card hands played into
// board columns. Groups of fewer than five cards rank only by their rank
// histogram; straights and flushes require exactly five cards.
package poker

import (
	"errors"
	"sort"

	"github.com/Jyouping/sevenhandpoker/internal/deck"
)

// ErrInvalidHandSize is returned for empty groups and groups of more than
// five cards. The original treated empty groups as a high card in one code
// path; here the zero case is always an error so misuse cannot hide.
var ErrInvalidHandSize = errors.New("poker: hand must contain 1 to 5 cards")

// HandRank is the poker category of a card group, ordered weakest first.
type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the display name of the hand rank
func (h HandRank) String() string {
	switch h {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Evaluate returns the best rank a card group qualifies for.
func Evaluate(cards []deck.Card) (HandRank, error) {
	switch {
	case len(cards) == 0 || len(cards) > 5:
		return HighCard, ErrInvalidHandSize
	case len(cards) < 5:
		return evaluatePartial(cards), nil
	default:
		return evaluateFull(cards), nil
	}
}

// MustEvaluate is Evaluate for groups already validated by the board
// (placement enforces the 1-5 card bound before any comparison happens).
func MustEvaluate(cards []deck.Card) HandRank {
	rank, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return rank
}

// evaluatePartial ranks groups of 1-4 cards, where only histogram-based
// categories are possible.
func evaluatePartial(cards []deck.Card) HandRank {
	counts := rankCounts(cards)

	maxCount := 0
	repeated := 0
	for _, n := range counts {
		if n > maxCount {
			maxCount = n
		}
		if n >= 2 {
			repeated++
		}
	}

	switch {
	case maxCount >= 4:
		return FourOfAKind
	case maxCount >= 3:
		return ThreeOfAKind
	case repeated >= 2:
		return TwoPair
	case repeated == 1:
		return OnePair
	default:
		return HighCard
	}
}

// evaluateFull ranks exactly five cards with straights and flushes in play.
func evaluateFull(cards []deck.Card) HandRank {
	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}
	straight := isStraight(cards)

	counts := rankCounts(cards)
	shape := make([]int, 0, len(counts))
	for _, n := range counts {
		shape = append(shape, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(shape)))

	switch {
	case flush && straight:
		return StraightFlush
	case shape[0] == 4:
		return FourOfAKind
	case shape[0] == 3 && shape[1] == 2:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case shape[0] == 3:
		return ThreeOfAKind
	case shape[0] == 2 && shape[1] == 2:
		return TwoPair
	case shape[0] == 2:
		return OnePair
	default:
		return HighCard
	}
}

// isStraight reports whether five cards form a run, including the wheel
// (A-2-3-4-5, where the ace plays low).
func isStraight(cards []deck.Card) bool {
	ranks := make([]int, len(cards))
	for i, c := range cards {
		ranks[i] = int(c.Rank)
	}
	sort.Ints(ranks)

	if ranks[0] == int(deck.Two) && ranks[1] == int(deck.Three) &&
		ranks[2] == int(deck.Four) && ranks[3] == int(deck.Five) &&
		ranks[4] == int(deck.Ace) {
		return true
	}

	for i := 1; i < len(ranks); i++ {
		if ranks[i] != ranks[i-1]+1 {
			return false
		}
	}
	return true
}

func rankCounts(cards []deck.Card) map[deck.Rank]int {
	counts := make(map[deck.Rank]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}
