// Package tui implements interactive local play as a Bubble Tea program
// over the game engine. The model owns no rules; every key press maps to
// an engine command and the view renders the session state.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Jyouping/sevenhandpoker/internal/ai"
	"github.com/Jyouping/sevenhandpoker/internal/deck"
	"github.com/Jyouping/sevenhandpoker/internal/game"
)

// aiTickMsg fires when the computer's next move is due.
type aiTickMsg struct{}

const maxLogLines = 6

// Model is the Bubble Tea model for a human-versus-computer game.
type Model struct {
	engine *game.Engine
	keys   keyMap
	help   help.Model
	logger *log.Logger

	stepDelay time.Duration

	handCursor int
	colCursor  int
	sortByRank bool
	status     string
	gameLog    []string

	aiScheduled bool
	quitting    bool
	width       int
}

// New creates a model around a started engine.
func New(engine *game.Engine, stepDelay time.Duration, logger *log.Logger) *Model {
	m := &Model{
		engine:     engine,
		keys:       defaultKeyMap(),
		help:       help.New(),
		logger:     logger.WithPrefix("tui"),
		stepDelay:  stepDelay,
		sortByRank: true,
	}
	engine.Session().Bus().Subscribe(game.EventFunc(m.onEvent))
	return m
}

// Init schedules the computer's first move when it has one.
func (m *Model) Init() tea.Cmd {
	return m.maybeTick()
}

// Update handles input and AI pacing.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case aiTickMsg:
		m.aiScheduled = false
		if m.engine.AIActionPending() {
			if err := m.engine.StepAI(); err != nil {
				m.logger.Error("ai step failed", "error", err)
			}
		}
		return m, m.maybeTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Sort):
		m.sortByRank = !m.sortByRank
		m.engine.SortHand(m.sortByRank)
		return m, nil

	case key.Matches(msg, m.keys.Level):
		next := (m.engine.Difficulty() + 1) % 3
		m.engine.SetDifficulty(next)
		m.status = "difficulty: " + ai.ParseLevel(next).String()
		return m, nil

	case key.Matches(msg, m.keys.NewGame):
		if m.engine.Session().Phase() != game.PhaseGameOver {
			return m, nil
		}
		m.gameLog = nil
		m.handCursor = 0
		m.colCursor = 0
		if err := m.engine.StartGame(nil, game.Player1); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
		return m, m.maybeTick()
	}

	switch m.engine.Session().Phase() {
	case game.PhasePlayer1Selecting:
		return m.handleSelectingKey(msg)
	case game.PhasePlayer1Confirming:
		return m.handleConfirmingKey(msg)
	case game.PhasePlayer2Waiting:
		return m.handlePlacingKey(msg)
	}
	return m, nil
}

func (m *Model) handleSelectingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	handLen := len(m.engine.Session().HandCards(m.engine.Human()))

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.handCursor > 0 {
			m.handCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.handCursor < handLen-1 {
			m.handCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.command(m.engine.Toggle(m.handCursor))
	case key.Matches(msg, m.keys.Cancel):
		m.command(m.engine.DeselectAll())
	case key.Matches(msg, m.keys.Enter):
		m.command(m.engine.Submit())
	}
	return m, nil
}

func (m *Model) handleConfirmingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Enter):
		m.command(m.engine.Confirm())
		return m, m.maybeTick()
	case key.Matches(msg, m.keys.Cancel):
		m.command(m.engine.Cancel())
	}
	return m, nil
}

func (m *Model) handlePlacingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.colCursor > 0 {
			m.colCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.colCursor < game.NumColumns-1 {
			m.colCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		m.command(m.engine.PlaceOpponentCards(m.colCursor))
		return m, m.maybeTick()
	}
	return m, nil
}

// command runs an engine command and surfaces its error in the status
// line.
func (m *Model) command(err error) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	m.clampCursor()
}

func (m *Model) clampCursor() {
	handLen := len(m.engine.Session().HandCards(m.engine.Human()))
	if m.handCursor >= handLen && handLen > 0 {
		m.handCursor = handLen - 1
	}
}

// maybeTick schedules the next computer move when one is owed.
func (m *Model) maybeTick() tea.Cmd {
	if m.aiScheduled || !m.engine.AIActionPending() {
		return nil
	}
	m.aiScheduled = true
	return tea.Tick(m.stepDelay, func(time.Time) tea.Msg {
		return aiTickMsg{}
	})
}

// onEvent appends human-readable lines to the game log.
func (m *Model) onEvent(event game.GameEvent) {
	switch ev := event.(type) {
	case game.CardsPlacedEvent:
		m.appendLog(fmt.Sprintf("%s placed %d card(s) in column %d",
			m.seatName(ev.Player), len(ev.Cards), ev.Column+1))

	case game.ColumnResultEvent:
		switch ev.Winner {
		case game.Tied:
			m.appendLog(fmt.Sprintf("column %d: %s ties %s",
				ev.Column+1, ev.Player1Rank, ev.Player2Rank))
		case game.WonByPlayer1:
			m.appendLog(fmt.Sprintf("column %d: your %s beats %s",
				ev.Column+1, ev.Player1Rank, ev.Player2Rank))
		case game.WonByPlayer2:
			m.appendLog(fmt.Sprintf("column %d: %s loses to %s",
				ev.Column+1, ev.Player1Rank, ev.Player2Rank))
		}

	case game.GameOverEvent:
		switch ev.Winner {
		case game.WonByPlayer1:
			m.appendLog(fmt.Sprintf("you win %d-%d!", ev.Player1Score, ev.Player2Score))
		case game.WonByPlayer2:
			m.appendLog(fmt.Sprintf("computer wins %d-%d", ev.Player2Score, ev.Player1Score))
		default:
			m.appendLog(fmt.Sprintf("game tied %d-%d", ev.Player1Score, ev.Player2Score))
		}
	}
}

func (m *Model) appendLog(line string) {
	m.gameLog = append(m.gameLog, line)
	if len(m.gameLog) > maxLogLines {
		m.gameLog = m.gameLog[len(m.gameLog)-maxLogLines:]
	}
}

func (m *Model) seatName(p game.Player) string {
	if p == m.engine.Human() {
		return "you"
	}
	return "computer"
}

// View renders the whole game screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	session := m.engine.Session()
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Seven Hand Poker"))
	b.WriteString("  ")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("seed %d · %s",
		session.Seed(), ai.ParseLevel(m.engine.Difficulty()))))
	b.WriteString("\n\n")

	computer := m.engine.Human().Other()
	b.WriteString(FaceDownStyle.Render(fmt.Sprintf("computer hand: %d cards",
		len(session.HandCards(computer)))))
	b.WriteString("\n\n")

	b.WriteString(m.viewBoard())
	b.WriteString("\n")

	board := session.Board()
	b.WriteString(ScoreStyle.Render(fmt.Sprintf("coins  you %d · computer %d",
		board.Score(game.Player1), board.Score(game.Player2))))
	b.WriteString("\n\n")

	b.WriteString(m.viewHand())
	b.WriteString("\n")

	b.WriteString(m.viewStatus())
	b.WriteString("\n")

	for _, line := range m.gameLog {
		b.WriteString(InfoStyle.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// viewBoard renders the seven columns, the computer's side on top.
func (m *Model) viewBoard() string {
	session := m.engine.Session()
	board := session.Board()
	placing := session.Phase() == game.PhasePlayer2Waiting

	columns := make([]string, game.NumColumns)
	for col := 0; col < game.NumColumns; col++ {
		var lines []string

		header := fmt.Sprintf("  %d  ", col+1)
		if placing && col == m.colCursor {
			header = CursorStyle.Render(fmt.Sprintf("[ %d ]", col+1))
		}
		lines = append(lines, header)

		for _, c := range board.Side(game.Player2, col) {
			lines = append(lines, " "+m.cardText(c, false)+" ")
		}
		lines = append(lines, m.coinText(board.Coin(col)))
		for _, c := range board.Side(game.Player1, col) {
			lines = append(lines, " "+m.cardText(c, false)+" ")
		}

		columns[col] = lipgloss.JoinVertical(lipgloss.Center, lines...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m *Model) coinText(coin game.Outcome) string {
	switch coin {
	case game.WonByPlayer1:
		return CoinP1Style.Render("(you)")
	case game.WonByPlayer2:
		return CoinP2Style.Render("(cpu)")
	case game.Tied:
		return CoinTieStyle.Render("(tie)")
	default:
		return InfoStyle.Render("( · )")
	}
}

// viewHand renders the human hand with cursor and selection markers.
func (m *Model) viewHand() string {
	session := m.engine.Session()
	human := m.engine.Human()
	selecting := session.Phase() == game.PhasePlayer1Selecting

	var b strings.Builder
	b.WriteString("your hand: ")
	for i, c := range session.HandCards(human) {
		if selecting && i == m.handCursor {
			b.WriteString(CursorStyle.Render(">"))
		} else {
			b.WriteString(" ")
		}
		b.WriteString(m.cardText(c, session.IsSelected(human, i)))
	}
	return b.String()
}

func (m *Model) cardText(c deck.Card, selected bool) string {
	text := c.String()
	if selected {
		return SelectedCardStyle.Render(text)
	}
	if c.IsRed() {
		return RedCardStyle.Render(text)
	}
	return BlackCardStyle.Render(text)
}

// viewStatus names what the game is waiting for.
func (m *Model) viewStatus() string {
	if m.status != "" {
		return ErrorStyle.Render(m.status)
	}

	switch m.engine.Session().Phase() {
	case game.PhasePlayer1Selecting:
		return StatusStyle.Render("select 1-5 cards, enter to submit")
	case game.PhasePlayer1Confirming:
		return StatusStyle.Render("enter to confirm, esc to cancel")
	case game.PhasePlayer1Waiting:
		return StatusStyle.Render("computer is choosing a column...")
	case game.PhasePlayer2Selecting, game.PhasePlayer2Confirming:
		return StatusStyle.Render("computer is thinking...")
	case game.PhasePlayer2Waiting:
		return StatusStyle.Render("choose a column for the computer's cards")
	case game.PhaseGameOver:
		return StatusStyle.Render("game over, press n for a new game")
	default:
		return ""
	}
}
