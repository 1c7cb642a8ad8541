package game

import (
	"sort"

	"github.com/Jyouping/sevenhandpoker/internal/deck"
)

// maxSelection caps how many cards one placement may commit.
const maxSelection = 5

// handCard is a held card plus its selection flag.
type handCard struct {
	card     deck.Card
	selected bool
}

// Hand is the ordered set of unplaced cards held by one player. Order is
// display order: new cards append, sorting re-orders in place without
// touching selection flags.
type Hand struct {
	cards []handCard
}

// NewHand returns an empty hand.
func NewHand() *Hand {
	return &Hand{}
}

// Add appends a card to the hand.
func (h *Hand) Add(card deck.Card) {
	h.cards = append(h.cards, handCard{card: card})
}

// Len returns the number of cards held.
func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the held cards in display order.
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	for i, hc := range h.cards {
		out[i] = hc.card
	}
	return out
}

// IsSelected reports whether the card at index i is selected.
func (h *Hand) IsSelected(i int) bool {
	return i >= 0 && i < len(h.cards) && h.cards[i].selected
}

// Toggle flips the selection flag of the card at index i. Selecting a
// sixth card is rejected; deselecting is always allowed.
func (h *Hand) Toggle(i int) error {
	if i < 0 || i >= len(h.cards) {
		return ErrInvalidCard
	}
	if !h.cards[i].selected && h.SelectedCount() >= maxSelection {
		return ErrInvalidSelectionCount
	}
	h.cards[i].selected = !h.cards[i].selected
	return nil
}

// DeselectAll clears every selection flag.
func (h *Hand) DeselectAll() {
	for i := range h.cards {
		h.cards[i].selected = false
	}
}

// SelectedCount returns the number of selected cards.
func (h *Hand) SelectedCount() int {
	n := 0
	for _, hc := range h.cards {
		if hc.selected {
			n++
		}
	}
	return n
}

// Selected returns the selected cards in display order.
func (h *Hand) Selected() []deck.Card {
	var out []deck.Card
	for _, hc := range h.cards {
		if hc.selected {
			out = append(out, hc.card)
		}
	}
	return out
}

// RemoveSelected atomically removes and returns all selected cards in
// display order. The caller is responsible for placing them.
func (h *Hand) RemoveSelected() []deck.Card {
	var removed []deck.Card
	kept := h.cards[:0]
	for _, hc := range h.cards {
		if hc.selected {
			removed = append(removed, hc.card)
		} else {
			kept = append(kept, hc)
		}
	}
	h.cards = kept
	return removed
}

// SortByRank orders the hand ascending by rank, suits breaking ties.
func (h *Hand) SortByRank() {
	sort.SliceStable(h.cards, func(i, j int) bool {
		if h.cards[i].card.Rank != h.cards[j].card.Rank {
			return h.cards[i].card.Rank < h.cards[j].card.Rank
		}
		return h.cards[i].card.Suit < h.cards[j].card.Suit
	})
}

// SortBySuit orders the hand by suit, ranks breaking ties.
func (h *Hand) SortBySuit() {
	sort.SliceStable(h.cards, func(i, j int) bool {
		if h.cards[i].card.Suit != h.cards[j].card.Suit {
			return h.cards[i].card.Suit < h.cards[j].card.Suit
		}
		return h.cards[i].card.Rank < h.cards[j].card.Rank
	})
}
