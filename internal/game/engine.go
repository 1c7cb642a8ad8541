package game

import (
	"github.com/charmbracelet/log"

	"github.com/Jyouping/sevenhandpoker/internal/statistics"
)

// Leveler is implemented by strategies with difficulty tiers.
type Leveler interface {
	SetLevel(level int)
	Level() int
}

// Engine runs a human-versus-computer game: it owns the session, drives
// the computer seat through the configured Strategy, and records the
// result against the statistics store at game over. Frontends call the
// human commands and step the AI whenever AIActionPending reports an
// obligation; all pacing between the two is theirs.
type Engine struct {
	session  *Session
	strategy Strategy
	human    Player
	ai       Player
	stats    statistics.Store
	logger   *log.Logger
}

// NewEngine wires a session to a computer strategy. stats may be nil when
// results should not be recorded (simulations, tests).
func NewEngine(session *Session, strategy Strategy, human Player, stats statistics.Store, logger *log.Logger) *Engine {
	e := &Engine{
		session:  session,
		strategy: strategy,
		human:    human,
		ai:       human.Other(),
		stats:    stats,
		logger:   logger.WithPrefix("engine"),
	}
	session.Bus().Subscribe(EventFunc(e.onEvent))
	return e
}

// Session returns the underlying session for read access.
func (e *Engine) Session() *Session {
	return e.session
}

// Human returns the seat the human controls.
func (e *Engine) Human() Player {
	return e.human
}

// StartGame starts a fresh game. A nil seed picks one at random.
func (e *Engine) StartGame(seed *int64, starting Player) error {
	return e.session.Start(seed, starting)
}

// SetDifficulty switches the computer's tier (0 easy, 1 medium, 2 hard).
func (e *Engine) SetDifficulty(level int) {
	if l, ok := e.strategy.(Leveler); ok {
		l.SetLevel(level)
	}
}

// Difficulty returns the computer's current tier.
func (e *Engine) Difficulty() int {
	if l, ok := e.strategy.(Leveler); ok {
		return l.Level()
	}
	return 0
}

// Human commands, bound to the human seat.

// Toggle flips selection of the human's card at the given index.
func (e *Engine) Toggle(cardIndex int) error {
	return e.session.Toggle(e.human, cardIndex)
}

// DeselectAll clears the human's selection.
func (e *Engine) DeselectAll() error {
	return e.session.DeselectAll(e.human)
}

// Submit locks in the human's selection for confirmation.
func (e *Engine) Submit() error {
	return e.session.Submit(e.human)
}

// Cancel abandons the human's submitted selection.
func (e *Engine) Cancel() error {
	return e.session.Cancel(e.human)
}

// Confirm commits the human's submitted selection.
func (e *Engine) Confirm() error {
	return e.session.Confirm(e.human)
}

// PlaceOpponentCards chooses the column the computer's confirmed cards
// are forced into.
func (e *Engine) PlaceOpponentCards(col int) error {
	return e.session.ChoosePlacement(e.human, col)
}

// SortHand reorders the human's hand for display.
func (e *Engine) SortHand(byRank bool) {
	e.session.SortHand(e.human, byRank)
}

// AIActionPending reports whether the computer seat owes an action.
func (e *Engine) AIActionPending() bool {
	switch e.session.Phase() {
	case selectingPhase(e.ai), confirmingPhase(e.ai), waitingPhase(e.human):
		return true
	default:
		return false
	}
}

// StepAI performs the computer's next obligation: selecting and
// confirming its own cards, or choosing a column for the human's. One
// call performs one step so frontends can pace the reveals.
func (e *Engine) StepAI() error {
	switch e.session.Phase() {
	case selectingPhase(e.ai):
		return e.aiSelect()
	case confirmingPhase(e.ai):
		return e.session.Confirm(e.ai)
	case waitingPhase(e.human):
		return e.aiPlace()
	default:
		return ErrWrongPhase
	}
}

// aiSelect applies the strategy's card choice and submits it.
func (e *Engine) aiSelect() error {
	if err := e.session.DeselectAll(e.ai); err != nil {
		return err
	}

	view := e.session.View(e.ai)
	indices := sanitizeSelection(e.strategy.SelectCards(view), len(view.Hand))
	if len(indices) == 0 && len(view.Hand) > 0 {
		// A strategy returning nothing still has to play a card.
		e.logger.Warn("strategy returned empty selection, playing first card")
		indices = []int{0}
	}

	for _, i := range indices {
		if err := e.session.Toggle(e.ai, i); err != nil {
			return err
		}
	}
	if err := e.session.Submit(e.ai); err != nil {
		return err
	}
	return nil
}

// aiPlace applies the strategy's column choice for the human's cards.
func (e *Engine) aiPlace() error {
	view := e.session.View(e.ai)
	incoming := e.session.Selection(e.human)

	col := e.strategy.ChooseColumn(view, incoming)
	if !validPlacement(view, col) {
		fallback := firstOpenColumn(view)
		e.logger.Warn("strategy chose an invalid column", "column", col, "fallback", fallback)
		col = fallback
	}
	return e.session.ChoosePlacement(e.ai, col)
}

// onEvent records wins and losses once per finished game. Ties are not
// recorded.
func (e *Engine) onEvent(event GameEvent) {
	over, ok := event.(GameOverEvent)
	if !ok || e.stats == nil {
		return
	}
	level := e.Difficulty()
	switch over.Winner {
	case outcomeFor(e.human):
		if err := e.stats.RecordWin(level); err != nil {
			e.logger.Error("failed to record win", "error", err)
		}
	case outcomeFor(e.ai):
		if err := e.stats.RecordLoss(level); err != nil {
			e.logger.Error("failed to record loss", "error", err)
		}
	}
}

// sanitizeSelection deduplicates indices, drops out-of-range entries and
// clamps the count to the placement bound.
func sanitizeSelection(indices []int, handLen int) []int {
	seen := make(map[int]bool, len(indices))
	var out []int
	for _, i := range indices {
		if i < 0 || i >= handLen || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
		if len(out) == maxSelection {
			break
		}
	}
	return out
}

// validPlacement reports whether the incoming cards may land in col: the
// column must exist and the human side must be empty.
func validPlacement(view StateView, col int) bool {
	return col >= 0 && col < NumColumns && len(view.OppColumns[col]) == 0
}

// firstOpenColumn returns the lowest column open for the human's cards,
// or 0 as the structural last resort.
func firstOpenColumn(view StateView) int {
	for col := 0; col < NumColumns; col++ {
		if len(view.OppColumns[col]) == 0 {
			return col
		}
	}
	return 0
}
