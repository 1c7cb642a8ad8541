package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jyouping/sevenhandpoker/internal/deck"
)

func card(rank deck.Rank, suit deck.Suit) deck.Card {
	return deck.Card{Suit: suit, Rank: rank}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		cards []deck.Card
		want  HandRank
	}{
		{
			name: "full house",
			cards: []deck.Card{
				card(deck.Two, deck.Spades), card(deck.Two, deck.Hearts),
				card(deck.Seven, deck.Diamonds), card(deck.Seven, deck.Clubs), card(deck.Seven, deck.Spades),
			},
			want: FullHouse,
		},
		{
			name: "royal straight flush",
			cards: []deck.Card{
				card(deck.Ace, deck.Spades), card(deck.King, deck.Spades),
				card(deck.Queen, deck.Spades), card(deck.Jack, deck.Spades), card(deck.Ten, deck.Spades),
			},
			want: StraightFlush,
		},
		{
			name: "wheel straight",
			cards: []deck.Card{
				card(deck.Two, deck.Spades), card(deck.Three, deck.Hearts),
				card(deck.Four, deck.Diamonds), card(deck.Five, deck.Clubs), card(deck.Ace, deck.Spades),
			},
			want: Straight,
		},
		{
			name:  "two card pair",
			cards: []deck.Card{card(deck.Two, deck.Spades), card(deck.Two, deck.Hearts)},
			want:  OnePair,
		},
		{
			name: "four card trips",
			cards: []deck.Card{
				card(deck.Five, deck.Spades), card(deck.Five, deck.Hearts),
				card(deck.Five, deck.Diamonds), card(deck.Nine, deck.Clubs),
			},
			want: ThreeOfAKind,
		},
		{
			name:  "single high card",
			cards: []deck.Card{card(deck.Seven, deck.Spades)},
			want:  HighCard,
		},
		{
			name: "flush",
			cards: []deck.Card{
				card(deck.Two, deck.Hearts), card(deck.Five, deck.Hearts),
				card(deck.Nine, deck.Hearts), card(deck.Jack, deck.Hearts), card(deck.King, deck.Hearts),
			},
			want: Flush,
		},
		{
			name: "straight",
			cards: []deck.Card{
				card(deck.Six, deck.Spades), card(deck.Seven, deck.Hearts),
				card(deck.Eight, deck.Diamonds), card(deck.Nine, deck.Clubs), card(deck.Ten, deck.Spades),
			},
			want: Straight,
		},
		{
			name: "four of a kind",
			cards: []deck.Card{
				card(deck.Nine, deck.Spades), card(deck.Nine, deck.Hearts),
				card(deck.Nine, deck.Diamonds), card(deck.Nine, deck.Clubs), card(deck.Two, deck.Spades),
			},
			want: FourOfAKind,
		},
		{
			name: "two pair five cards",
			cards: []deck.Card{
				card(deck.Nine, deck.Spades), card(deck.Nine, deck.Hearts),
				card(deck.Four, deck.Diamonds), card(deck.Four, deck.Clubs), card(deck.Two, deck.Spades),
			},
			want: TwoPair,
		},
		{
			name: "four card two pair",
			cards: []deck.Card{
				card(deck.Nine, deck.Spades), card(deck.Nine, deck.Hearts),
				card(deck.Four, deck.Diamonds), card(deck.Four, deck.Clubs),
			},
			want: TwoPair,
		},
		{
			name: "high card five cards",
			cards: []deck.Card{
				card(deck.Two, deck.Spades), card(deck.Five, deck.Hearts),
				card(deck.Nine, deck.Diamonds), card(deck.Jack, deck.Clubs), card(deck.King, deck.Spades),
			},
			want: HighCard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.cards)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateInvalidSize(t *testing.T) {
	_, err := Evaluate(nil)
	assert.ErrorIs(t, err, ErrInvalidHandSize)

	six := make([]deck.Card, 6)
	_, err = Evaluate(six)
	assert.ErrorIs(t, err, ErrInvalidHandSize)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name   string
		first  []deck.Card
		second []deck.Card
		want   Result
	}{
		{
			name:   "higher rank wins",
			first:  []deck.Card{card(deck.Two, deck.Spades), card(deck.Two, deck.Hearts)},
			second: []deck.Card{card(deck.Ace, deck.Spades)},
			want:   ResultFirst,
		},
		{
			name:   "equal rank falls to high card",
			first:  []deck.Card{card(deck.King, deck.Spades), card(deck.King, deck.Hearts)},
			second: []deck.Card{card(deck.Queen, deck.Spades), card(deck.Queen, deck.Hearts)},
			want:   ResultFirst,
		},
		{
			name:   "missing slot loses to real card",
			first:  []deck.Card{card(deck.King, deck.Spades)},
			second: []deck.Card{card(deck.King, deck.Hearts), card(deck.Two, deck.Diamonds)},
			want:   ResultSecond,
		},
		{
			name:   "suit breaks full rank tie",
			first:  []deck.Card{card(deck.King, deck.Hearts)},
			second: []deck.Card{card(deck.King, deck.Spades)},
			want:   ResultSecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.first, tt.second)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// The comparison must be a consistent inverse when swapped.
			swapped, err := Compare(tt.second, tt.first)
			require.NoError(t, err)
			switch tt.want {
			case ResultFirst:
				assert.Equal(t, ResultSecond, swapped)
			case ResultSecond:
				assert.Equal(t, ResultFirst, swapped)
			default:
				assert.Equal(t, ResultTie, swapped)
			}
		})
	}
}

func TestCompareSelfIsTie(t *testing.T) {
	group := []deck.Card{
		card(deck.King, deck.Spades), card(deck.King, deck.Hearts),
		card(deck.Four, deck.Diamonds),
	}
	got, err := Compare(group, group)
	require.NoError(t, err)
	assert.Equal(t, ResultTie, got)
}

func TestCompareInvalidInput(t *testing.T) {
	_, err := Compare(nil, []deck.Card{card(deck.Two, deck.Spades)})
	assert.ErrorIs(t, err, ErrInvalidHandSize)
}
