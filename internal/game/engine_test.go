package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jyouping/sevenhandpoker/internal/deck"
	"github.com/Jyouping/sevenhandpoker/internal/statistics"
)

// scriptStrategy is a canned opponent: it selects fixed indices and drops
// incoming cards into a fixed column sequence.
type scriptStrategy struct {
	selects [][]int
	columns []int
	level   int
}

func (s *scriptStrategy) SelectCards(view StateView) []int {
	if len(s.selects) == 0 {
		return []int{0}
	}
	next := s.selects[0]
	s.selects = s.selects[1:]
	return next
}

func (s *scriptStrategy) ChooseColumn(view StateView, incoming []deck.Card) int {
	if len(s.columns) == 0 {
		return -1
	}
	next := s.columns[0]
	s.columns = s.columns[1:]
	return next
}

func (s *scriptStrategy) SetLevel(level int) { s.level = level }
func (s *scriptStrategy) Level() int         { return s.level }

// firstCardStrategy always plays its first card and places into the
// lowest open column, enough to drive any game to completion.
type firstCardStrategy struct{}

func (firstCardStrategy) SelectCards(view StateView) []int { return []int{0} }

func (firstCardStrategy) ChooseColumn(view StateView, incoming []deck.Card) int {
	for col := 0; col < NumColumns; col++ {
		if len(view.OppColumns[col]) == 0 {
			return col
		}
	}
	return 0
}

func newTestEngine(strategy Strategy, stats statistics.Store) *Engine {
	logger := testLogger()
	session := NewSession(nil, logger)
	return NewEngine(session, strategy, Player1, stats, logger)
}

func TestEngineStepOrder(t *testing.T) {
	script := &scriptStrategy{
		selects: [][]int{{2, 5}},
		columns: []int{6},
	}
	e := newTestEngine(script, nil)
	seed := int64(1)
	require.NoError(t, e.StartGame(&seed, Player1))

	// Human turn first, so nothing is owed by the computer yet.
	assert.False(t, e.AIActionPending())
	assert.ErrorIs(t, e.StepAI(), ErrWrongPhase)

	require.NoError(t, e.Toggle(0))
	require.NoError(t, e.Submit())
	require.NoError(t, e.Confirm())

	// Obligation one: place the human's cards.
	require.True(t, e.AIActionPending())
	require.NoError(t, e.StepAI())
	assert.Len(t, e.Session().Board().Side(Player1, 6), 1)

	// Obligations two and three: select, then confirm.
	assert.Equal(t, PhasePlayer2Selecting, e.Session().Phase())
	require.NoError(t, e.StepAI())
	assert.Equal(t, PhasePlayer2Confirming, e.Session().Phase())
	assert.Len(t, e.Session().Selection(Player2), 2)
	require.NoError(t, e.StepAI())

	// Now the human must place, and the computer owes nothing.
	assert.Equal(t, PhasePlayer2Waiting, e.Session().Phase())
	assert.False(t, e.AIActionPending())
	require.NoError(t, e.PlaceOpponentCards(3))
	assert.Len(t, e.Session().Board().Side(Player2, 3), 2)
	assert.Equal(t, PhasePlayer1Selecting, e.Session().Phase())
}

func TestEngineInvalidColumnFallsBack(t *testing.T) {
	script := &scriptStrategy{columns: []int{-1}}
	e := newTestEngine(script, nil)
	seed := int64(1)
	require.NoError(t, e.StartGame(&seed, Player1))

	require.NoError(t, e.Toggle(0))
	require.NoError(t, e.Submit())
	require.NoError(t, e.Confirm())

	require.NoError(t, e.StepAI())
	assert.Len(t, e.Session().Board().Side(Player1, 0), 1,
		"invalid choice falls back to the first open column")
}

func TestEngineEmptySelectionFallsBack(t *testing.T) {
	script := &scriptStrategy{
		selects: [][]int{{}},
		columns: []int{0},
	}
	e := newTestEngine(script, nil)
	seed := int64(1)
	require.NoError(t, e.StartGame(&seed, Player2))

	require.NoError(t, e.StepAI())
	assert.Equal(t, PhasePlayer2Confirming, e.Session().Phase())
	assert.Len(t, e.Session().Selection(Player2), 1)
}

func TestEngineSanitizesSelection(t *testing.T) {
	indices := sanitizeSelection([]int{4, 4, -1, 99, 2, 0, 1, 3, 5}, 13)
	assert.Equal(t, []int{4, 2, 0, 1, 3}, indices, "dedup, bounds, five-card cap")
}

func TestEngineRecordsResult(t *testing.T) {
	stats := statistics.NewMemoryStore()

	// Play full games until both a human win and a loss have been seen,
	// varying the seed. The strategy is symmetric so both happen quickly.
	for seed := int64(1); seed <= 20; seed++ {
		e := newTestEngine(firstCardStrategy{}, stats)
		s := seed
		require.NoError(t, e.StartGame(&s, Player1))

		for steps := 0; e.Session().Phase() != PhaseGameOver; steps++ {
			require.Less(t, steps, 400)
			if e.AIActionPending() {
				require.NoError(t, e.StepAI())
				continue
			}
			switch e.Session().Phase() {
			case PhasePlayer1Selecting:
				require.NoError(t, e.Toggle(0))
				require.NoError(t, e.Submit())
			case PhasePlayer1Confirming:
				require.NoError(t, e.Confirm())
			case PhasePlayer2Waiting:
				col := firstCardStrategy{}.ChooseColumn(e.Session().View(Player1), nil)
				require.NoError(t, e.PlaceOpponentCards(col))
			default:
				t.Fatalf("unexpected phase %s", e.Session().Phase())
			}
		}
	}

	rec, err := stats.Get(statistics.LevelEasy)
	require.NoError(t, err)
	assert.Positive(t, rec.TotalGames(), "decisive games must be recorded")
}

func TestEngineDifficultyPassthrough(t *testing.T) {
	script := &scriptStrategy{}
	e := newTestEngine(script, nil)

	assert.Equal(t, 0, e.Difficulty())
	e.SetDifficulty(2)
	assert.Equal(t, 2, e.Difficulty())
	assert.Equal(t, 2, script.level)
}
