package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleDeterminism(t *testing.T) {
	a := New(1)
	b := New(1)

	for i := 0; i < Size; i++ {
		ca, err := a.Draw()
		require.NoError(t, err)
		cb, err := b.Draw()
		require.NoError(t, err)
		assert.Equal(t, ca, cb, "draw %d", i)
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)

	same := true
	for i := 0; i < Size; i++ {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		if ca != cb {
			same = false
			break
		}
	}
	assert.False(t, same, "seeds 1 and 2 produced identical permutations")
}

func TestDeckCompleteness(t *testing.T) {
	d := New(7)

	seen := make(map[Card]bool, Size)
	for i := 0; i < Size; i++ {
		c, err := d.Draw()
		require.NoError(t, err)
		assert.False(t, seen[c], "card %s drawn twice", c)
		seen[c] = true
	}
	assert.Len(t, seen, Size)
}

func TestDrawExhausted(t *testing.T) {
	d := New(3)
	for i := 0; i < Size; i++ {
		_, err := d.Draw()
		require.NoError(t, err)
	}

	assert.False(t, d.CanDraw())
	assert.Equal(t, 0, d.Remaining())

	_, err := d.Draw()
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestRemaining(t *testing.T) {
	d := New(5)
	assert.Equal(t, Size, d.Remaining())

	_, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, Size-1, d.Remaining())
}

func TestNewRandomIsComplete(t *testing.T) {
	d := NewRandom()
	assert.GreaterOrEqual(t, d.Seed(), int64(0))
	assert.Less(t, d.Seed(), int64(maxAutoSeed))

	seen := make(map[Card]bool, Size)
	for d.CanDraw() {
		c, err := d.Draw()
		require.NoError(t, err)
		seen[c] = true
	}
	assert.Len(t, seen, Size)
}

func TestFromOrdinal(t *testing.T) {
	tests := []struct {
		n    int
		want Card
	}{
		{1, Card{Suit: Spades, Rank: Two}},
		{13, Card{Suit: Spades, Rank: Ace}},
		{14, Card{Suit: Hearts, Rank: Two}},
		{52, Card{Suit: Clubs, Rank: Ace}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromOrdinal(tt.n), "ordinal %d", tt.n)
	}
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", Card{Suit: Spades, Rank: Ace}.String())
	assert.Equal(t, "T♥", Card{Suit: Hearts, Rank: Ten}.String())
	assert.Equal(t, "2♣", Card{Suit: Clubs, Rank: Two}.String())
	assert.True(t, Card{Suit: Diamonds, Rank: Five}.IsRed())
	assert.False(t, Card{Suit: Spades, Rank: Five}.IsRed())
}
