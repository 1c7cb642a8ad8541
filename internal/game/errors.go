package game

import "errors"

// Every rejected command surfaces one of these; the state machine never
// advances on a rejected command and never drops one silently.
var (
	// ErrWrongPhase is returned when a command arrives in a phase that
	// does not accept it.
	ErrWrongPhase = errors.New("game: command not valid in current phase")

	// ErrInvalidSelectionCount is returned when a submit carries no cards,
	// or a toggle would push the selection past five cards.
	ErrInvalidSelectionCount = errors.New("game: selection must hold 1 to 5 cards")

	// ErrInvalidPlacement is returned when cards are placed into a column
	// the placing side already occupies, or the card set is empty or
	// larger than five.
	ErrInvalidPlacement = errors.New("game: invalid column placement")

	// ErrInvalidCard is returned when a card reference is out of range.
	ErrInvalidCard = errors.New("game: no such card in hand")

	// ErrInvalidColumn is returned for column indices outside 0..6.
	ErrInvalidColumn = errors.New("game: column index out of range")
)
