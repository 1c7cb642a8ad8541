package deck

import (
	"errors"
	rand "math/rand/v2"

	"github.com/Jyouping/sevenhandpoker/internal/randutil"
)

// ErrExhausted is returned by Draw once all 52 cards have been dealt.
var ErrExhausted = errors.New("deck: no cards remaining")

// Size is the number of cards in a standard deck.
const Size = 52

// maxAutoSeed bounds randomly chosen seeds. Seeds are shown to players in
// the deck-confirmation view, so they stay small enough to read and retype.
const maxAutoSeed = 10000

// Deck is a shuffled permutation of the 52 unique cards plus a draw
// cursor. Cards before the cursor are dealt and are never dealt again.
type Deck struct {
	cards [Size]Card
	pos   int
	seed  int64
}

// New builds a deck shuffled with the given seed. The same seed always
// produces the same permutation; tutorial mode and replays depend on it.
func New(seed int64) *Deck {
	d := &Deck{seed: seed}
	for n := 1; n <= Size; n++ {
		d.cards[n-1] = FromOrdinal(n)
	}
	d.shuffle()
	return d
}

// NewRandom builds a deck with a freshly chosen seed.
func NewRandom() *Deck {
	return New(int64(rand.IntN(maxAutoSeed)))
}

// shuffle applies a Fisher–Yates pass driven by the seeded LCG stream.
func (d *Deck) shuffle() {
	rng := randutil.NewLCG(d.seed)
	for i := Size - 1; i >= 1; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Seed returns the seed this deck was shuffled with.
func (d *Deck) Seed() int64 {
	return d.seed
}

// Draw returns the next card and advances the cursor.
func (d *Deck) Draw() (Card, error) {
	if d.pos >= Size {
		return Card{}, ErrExhausted
	}
	card := d.cards[d.pos]
	d.pos++
	return card, nil
}

// Remaining returns the number of cards not yet drawn.
func (d *Deck) Remaining() int {
	return Size - d.pos
}

// CanDraw reports whether at least one card remains.
func (d *Deck) CanDraw() bool {
	return d.pos < Size
}
