package game

import (
	"github.com/Jyouping/sevenhandpoker/internal/deck"
)

// NumColumns is the number of shared placement columns.
const NumColumns = 7

// Board holds the seven shared columns and their coin ownership. Each
// column has one card group per side; placement is permanent and a side
// never exceeds five cards.
type Board struct {
	sides [2][NumColumns][]deck.Card
	coins [NumColumns]Outcome
}

// NewBoard returns an empty board with all coins unclaimed.
func NewBoard() *Board {
	return &Board{}
}

// Place appends cards to the given player's side of a column. A side may
// receive cards exactly once.
func (b *Board) Place(p Player, col int, cards []deck.Card) error {
	if col < 0 || col >= NumColumns {
		return ErrInvalidColumn
	}
	if len(cards) == 0 || len(cards) > maxSelection {
		return ErrInvalidPlacement
	}
	if len(b.sides[p][col]) > 0 {
		return ErrInvalidPlacement
	}
	b.sides[p][col] = append([]deck.Card{}, cards...)
	return nil
}

// Side returns a copy of the cards a player has placed into a column.
func (b *Board) Side(p Player, col int) []deck.Card {
	if col < 0 || col >= NumColumns {
		return nil
	}
	return append([]deck.Card{}, b.sides[p][col]...)
}

// SideLen returns how many cards a player has placed into a column.
func (b *Board) SideLen(p Player, col int) int {
	if col < 0 || col >= NumColumns {
		return 0
	}
	return len(b.sides[p][col])
}

// IsColumnFull reports whether both sides of a column hold cards.
func (b *Board) IsColumnFull(col int) bool {
	return b.SideLen(Player1, col) > 0 && b.SideLen(Player2, col) > 0
}

// Coin returns the recorded ownership of a column's coin.
func (b *Board) Coin(col int) Outcome {
	if col < 0 || col >= NumColumns {
		return Unclaimed
	}
	return b.coins[col]
}

// setCoin records a column result. Ownership is set exactly once; a second
// write for the same column is ignored so a re-run win check cannot
// mutate settled columns.
func (b *Board) setCoin(col int, o Outcome) {
	if b.coins[col] == Unclaimed {
		b.coins[col] = o
	}
}

// Score returns a player's coin total. Ties count for both players.
func (b *Board) Score(p Player) int {
	n := 0
	for col := 0; col < NumColumns; col++ {
		if b.coins[col] != Unclaimed && b.coins[col].Won(p) {
			n++
		}
	}
	return n
}

// LongestRun returns the longest run of adjacent columns owned outright by
// the player. Ties and unclaimed columns break runs for both players.
func (b *Board) LongestRun(p Player) int {
	best, current := 0, 0
	for col := 0; col < NumColumns; col++ {
		if b.coins[col] == outcomeFor(p) {
			current++
			if current > best {
				best = current
			}
		} else {
			current = 0
		}
	}
	return best
}

// FilledColumns returns how many columns have both sides placed.
func (b *Board) FilledColumns() int {
	n := 0
	for col := 0; col < NumColumns; col++ {
		if b.IsColumnFull(col) {
			n++
		}
	}
	return n
}

// AllFull reports whether every column has both sides placed.
func (b *Board) AllFull() bool {
	return b.FilledColumns() == NumColumns
}
