package game

import "github.com/Jyouping/sevenhandpoker/internal/deck"

// StateView is a read-only snapshot of the session from one player's
// perspective, handed to decision strategies. Strategies never mutate
// game state; the engine applies whatever they return.
type StateView struct {
	Self Player

	// Hand holds the viewing player's unplaced cards in display order.
	Hand []deck.Card

	// OwnColumns and OppColumns hold the cards each side has placed,
	// indexed by column.
	OwnColumns [NumColumns][]deck.Card
	OppColumns [NumColumns][]deck.Card

	Coins [NumColumns]Outcome

	OwnScore int
	OppScore int
	OwnRun   int
	OppRun   int

	FilledColumns int
}

// OwnedBy reports whether the coin of a column belongs outright to the
// viewing player (ties count for neither side here, matching the run
// rules).
func (v StateView) OwnedBy(self bool, col int) bool {
	p := v.Self
	if !self {
		p = v.Self.Other()
	}
	return v.Coins[col] == outcomeFor(p)
}

// Strategy decides for the computer seat. SelectCards returns indices
// into view.Hand to commit (1-5 of them); ChooseColumn returns the column
// the opponent's confirmed cards should be forced into.
type Strategy interface {
	SelectCards(view StateView) []int
	ChooseColumn(view StateView, incoming []deck.Card) int
}
