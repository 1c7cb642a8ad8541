package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jyouping/sevenhandpoker/internal/deck"
)

func someCards(n int) []deck.Card {
	cards := make([]deck.Card, n)
	for i := range cards {
		cards[i] = deck.Card{Suit: deck.Suit(i % 4), Rank: deck.Rank(i)}
	}
	return cards
}

func TestBoardPlaceValidation(t *testing.T) {
	b := NewBoard()

	assert.ErrorIs(t, b.Place(Player1, -1, someCards(1)), ErrInvalidColumn)
	assert.ErrorIs(t, b.Place(Player1, NumColumns, someCards(1)), ErrInvalidColumn)
	assert.ErrorIs(t, b.Place(Player1, 0, nil), ErrInvalidPlacement)
	assert.ErrorIs(t, b.Place(Player1, 0, someCards(6)), ErrInvalidPlacement)

	require.NoError(t, b.Place(Player1, 0, someCards(3)))
	assert.ErrorIs(t, b.Place(Player1, 0, someCards(1)), ErrInvalidPlacement,
		"a side accepts cards exactly once")

	// The other side of the same column is still open.
	require.NoError(t, b.Place(Player2, 0, someCards(2)))
	assert.True(t, b.IsColumnFull(0))
}

func TestBoardSidesAreIndependent(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Place(Player1, 3, someCards(5)))

	assert.Equal(t, 5, b.SideLen(Player1, 3))
	assert.Equal(t, 0, b.SideLen(Player2, 3))
	assert.False(t, b.IsColumnFull(3))

	// Side returns a copy; mutating it must not reach the board.
	side := b.Side(Player1, 3)
	side[0] = deck.Card{Suit: deck.Clubs, Rank: deck.Ace}
	assert.NotEqual(t, side[0], b.Side(Player1, 3)[0])
}

func TestBoardCoinSetOnce(t *testing.T) {
	b := NewBoard()
	b.setCoin(2, WonByPlayer1)
	b.setCoin(2, WonByPlayer2)

	assert.Equal(t, WonByPlayer1, b.Coin(2), "coin ownership is immutable once set")
}

func TestBoardScoreCountsTiesForBoth(t *testing.T) {
	b := NewBoard()
	b.setCoin(0, WonByPlayer1)
	b.setCoin(1, Tied)
	b.setCoin(2, WonByPlayer2)

	assert.Equal(t, 2, b.Score(Player1))
	assert.Equal(t, 2, b.Score(Player2))
}

func TestBoardLongestRun(t *testing.T) {
	b := NewBoard()
	b.setCoin(0, WonByPlayer1)
	b.setCoin(1, WonByPlayer1)
	b.setCoin(2, Tied)
	b.setCoin(3, WonByPlayer1)
	b.setCoin(4, WonByPlayer1)
	b.setCoin(5, WonByPlayer1)

	assert.Equal(t, 3, b.LongestRun(Player1))
	assert.Equal(t, 0, b.LongestRun(Player2), "ties count for neither run")
}

func TestBoardFilledAndAllFull(t *testing.T) {
	b := NewBoard()
	for col := 0; col < NumColumns; col++ {
		require.NoError(t, b.Place(Player1, col, someCards(1)))
		require.NoError(t, b.Place(Player2, col, someCards(1)))
		assert.Equal(t, col+1, b.FilledColumns())
	}
	assert.True(t, b.AllFull())
}

func TestTotalsOutcome(t *testing.T) {
	assert.Equal(t, WonByPlayer1, totalsOutcome(3, 2))
	assert.Equal(t, WonByPlayer2, totalsOutcome(1, 2))
	assert.Equal(t, Tied, totalsOutcome(2, 2))
}
