package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects published events for assertions.
type recorder struct {
	events []GameEvent
}

func (r *recorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *recorder) phases() []Phase {
	var out []Phase
	for _, ev := range r.events {
		if pc, ok := ev.(PhaseChangedEvent); ok {
			out = append(out, pc.New)
		}
	}
	return out
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func newStartedSession(t *testing.T, seed int64, starting Player) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)
	s := NewSession(bus, testLogger())
	require.NoError(t, s.Start(&seed, starting))
	return s, rec
}

func TestStartDealsThirteenEach(t *testing.T) {
	s, rec := newStartedSession(t, 1, Player1)

	assert.Len(t, s.HandCards(Player1), 13)
	assert.Len(t, s.HandCards(Player2), 13)
	assert.Equal(t, 52-26, s.deck.Remaining())
	assert.Equal(t, PhasePlayer1Selecting, s.Phase())
	assert.Equal(t, int64(1), s.Seed())

	assert.Equal(t, []Phase{PhaseDealing, PhasePlayer1Selecting}, rec.phases())
}

func TestStartRejectedMidGame(t *testing.T) {
	s, _ := newStartedSession(t, 1, Player1)
	seed := int64(2)
	assert.ErrorIs(t, s.Start(&seed, Player1), ErrWrongPhase)
}

// A full turn end to end: player1 submits two cards, the opponent
// places them into column 0, three replacements are drawn, and because
// only one side of the column is populated play passes to player2.
func TestFirstTurnFlow(t *testing.T) {
	s, rec := newStartedSession(t, 1, Player1)

	require.NoError(t, s.Toggle(Player1, 0))
	require.NoError(t, s.Toggle(Player1, 1))
	require.NoError(t, s.Submit(Player1))
	require.NoError(t, s.Confirm(Player1))

	assert.Equal(t, PhasePlayer1Waiting, s.Phase())
	require.NoError(t, s.ChoosePlacement(Player2, 0))

	// 13 - 2 placed + 3 replacements.
	assert.Len(t, s.HandCards(Player1), 14)
	assert.Equal(t, 2, s.Board().SideLen(Player1, 0))
	assert.False(t, s.Board().IsColumnFull(0))
	assert.Equal(t, PhasePlayer2Selecting, s.Phase())

	assert.Equal(t, []Phase{
		PhaseDealing,
		PhasePlayer1Selecting,
		PhasePlayer1Confirming,
		PhasePlayer1Waiting,
		PhasePlayer2Selecting,
	}, rec.phases())
}

func TestCancelReturnsToSelecting(t *testing.T) {
	s, _ := newStartedSession(t, 1, Player1)

	require.NoError(t, s.Toggle(Player1, 0))
	require.NoError(t, s.Submit(Player1))
	assert.Equal(t, PhasePlayer1Confirming, s.Phase())

	require.NoError(t, s.Cancel(Player1))
	assert.Equal(t, PhasePlayer1Selecting, s.Phase())
	assert.Len(t, s.Selection(Player1), 1, "cancel keeps the selection for editing")
}

func TestSubmitValidation(t *testing.T) {
	s, _ := newStartedSession(t, 1, Player1)

	assert.ErrorIs(t, s.Submit(Player1), ErrInvalidSelectionCount, "empty submit")
	assert.ErrorIs(t, s.Submit(Player2), ErrWrongPhase, "not player2's turn")
	assert.ErrorIs(t, s.Toggle(Player2, 0), ErrWrongPhase)
	assert.ErrorIs(t, s.ChoosePlacement(Player2, 0), ErrWrongPhase)
}

func TestPlacementValidation(t *testing.T) {
	s, _ := newStartedSession(t, 1, Player1)

	require.NoError(t, s.Toggle(Player1, 0))
	require.NoError(t, s.Submit(Player1))
	require.NoError(t, s.Confirm(Player1))

	// Only the opposing player may choose the column.
	assert.ErrorIs(t, s.ChoosePlacement(Player1, 0), ErrWrongPhase)
	assert.ErrorIs(t, s.ChoosePlacement(Player2, -1), ErrInvalidColumn)
	assert.ErrorIs(t, s.ChoosePlacement(Player2, 7), ErrInvalidColumn)
	require.NoError(t, s.ChoosePlacement(Player2, 4))

	// Player1's side of column 4 is now permanently occupied.
	require.NoError(t, s.Toggle(Player2, 0))
	require.NoError(t, s.Submit(Player2))
	require.NoError(t, s.Confirm(Player2))
	require.NoError(t, s.ChoosePlacement(Player1, 4))

	// Column 4 filled: it was compared and its coin settled.
	assert.True(t, s.Board().IsColumnFull(4))
	assert.NotEqual(t, Unclaimed, s.Board().Coin(4))
}

func TestColumnFillTriggersComparison(t *testing.T) {
	s, rec := newStartedSession(t, 9, Player1)

	require.NoError(t, s.Toggle(Player1, 0))
	require.NoError(t, s.Submit(Player1))
	require.NoError(t, s.Confirm(Player1))
	require.NoError(t, s.ChoosePlacement(Player2, 2))

	require.NoError(t, s.Toggle(Player2, 0))
	require.NoError(t, s.Submit(Player2))
	require.NoError(t, s.Confirm(Player2))
	rec.events = nil
	require.NoError(t, s.ChoosePlacement(Player1, 2))

	var sawFilled, sawResult, sawScore bool
	for _, ev := range rec.events {
		switch ev := ev.(type) {
		case ColumnFilledEvent:
			sawFilled = true
			assert.Equal(t, 2, ev.Column)
		case ColumnResultEvent:
			sawResult = true
			assert.Equal(t, 2, ev.Column)
			assert.NotEqual(t, Unclaimed, ev.Winner)
		case ScoreChangedEvent:
			sawScore = true
		}
	}
	assert.True(t, sawFilled)
	assert.True(t, sawResult)
	assert.True(t, sawScore)

	// One coin cannot end the game; play continues with player1, who
	// placed last... the turn passes to the opponent of the last owner.
	assert.Equal(t, PhasePlayer1Selecting, s.Phase())
}

// scripted drives both seats with a trivial policy until the game ends:
// each player plays their first card, the opponent places into the lowest
// open column. Columns fill one by one, so a result is guaranteed.
func playScripted(t *testing.T, seed int64) (*Session, *recorder) {
	t.Helper()
	s, rec := newStartedSession(t, seed, Player1)

	for steps := 0; s.Phase() != PhaseGameOver; steps++ {
		require.Less(t, steps, 200, "game failed to terminate")

		var active Player
		switch s.Phase() {
		case PhasePlayer1Selecting:
			active = Player1
		case PhasePlayer2Selecting:
			active = Player2
		default:
			t.Fatalf("unexpected resting phase %s", s.Phase())
		}

		require.NoError(t, s.Toggle(active, 0))
		require.NoError(t, s.Submit(active))
		require.NoError(t, s.Confirm(active))

		placer := active.Other()
		placed := false
		for col := 0; col < NumColumns; col++ {
			if s.Board().SideLen(active, col) == 0 {
				require.NoError(t, s.ChoosePlacement(placer, col))
				placed = true
				break
			}
		}
		require.True(t, placed, "no open column for %s", active)
	}
	return s, rec
}

func TestScriptedGameTerminates(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 17, 42} {
		s, _ := playScripted(t, seed)

		assert.Equal(t, PhaseGameOver, s.Phase(), "seed %d", seed)
		assert.NotEqual(t, Unclaimed, s.Winner(), "seed %d", seed)

		// Column invariant held throughout: at most 5 per side, settled
		// columns keep exactly one recorded owner.
		for col := 0; col < NumColumns; col++ {
			assert.LessOrEqual(t, s.Board().SideLen(Player1, col), 5)
			assert.LessOrEqual(t, s.Board().SideLen(Player2, col), 5)
			if s.Board().IsColumnFull(col) {
				assert.NotEqual(t, Unclaimed, s.Board().Coin(col))
			}
		}
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	s, _ := playScripted(t, 1)

	winner := s.Winner()
	p1, p2 := s.Board().Score(Player1), s.Board().Score(Player2)

	// Commands are rejected and nothing shifts.
	assert.ErrorIs(t, s.Toggle(Player1, 0), ErrWrongPhase)
	assert.ErrorIs(t, s.Submit(Player1), ErrWrongPhase)
	assert.ErrorIs(t, s.ChoosePlacement(Player2, 0), ErrWrongPhase)

	assert.Equal(t, winner, s.Winner())
	assert.Equal(t, p1, s.Board().Score(Player1))
	assert.Equal(t, p2, s.Board().Score(Player2))
}

func TestNewGameResetsState(t *testing.T) {
	s, _ := playScripted(t, 1)

	seed := int64(5)
	require.NoError(t, s.Start(&seed, Player2))

	assert.Equal(t, PhasePlayer2Selecting, s.Phase())
	assert.Len(t, s.HandCards(Player1), 13)
	assert.Len(t, s.HandCards(Player2), 13)
	assert.Equal(t, Unclaimed, s.Winner())
	for col := 0; col < NumColumns; col++ {
		assert.Equal(t, Unclaimed, s.Board().Coin(col))
		assert.Equal(t, 0, s.Board().SideLen(Player1, col))
	}
}

func TestViewSnapshot(t *testing.T) {
	s, _ := newStartedSession(t, 1, Player1)

	require.NoError(t, s.Toggle(Player1, 0))
	require.NoError(t, s.Submit(Player1))
	require.NoError(t, s.Confirm(Player1))
	require.NoError(t, s.ChoosePlacement(Player2, 3))

	view := s.View(Player2)
	assert.Equal(t, Player2, view.Self)
	assert.Len(t, view.Hand, 13)
	assert.Len(t, view.OppColumns[3], 1, "player1's placement visible as opponent cards")
	assert.Empty(t, view.OwnColumns[3])

	// Mutating the view must not reach the session.
	view.OppColumns[3][0] = view.Hand[0]
	assert.NotEqual(t, view.OppColumns[3][0], s.Board().Side(Player1, 3)[0])
}
