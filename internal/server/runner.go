package server

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/Jyouping/sevenhandpoker/internal/game"
)

// Sender delivers outbound messages to the client.
type Sender interface {
	Send(msg *Message)
}

// Runner drives one game for one client: it owns the engine, applies the
// client's commands in order on a single goroutine, and paces the
// computer's moves through the clock so they land one at a time on the
// wire. The human always sits in seat 1.
type Runner struct {
	engine    *game.Engine
	out       Sender
	clock     quartz.Clock
	stepDelay time.Duration
	logger    *log.Logger

	commands chan *Message
	stepReq  chan struct{}

	// stepScheduled is touched only on the run loop goroutine.
	stepScheduled bool
}

// NewRunner wires a runner around an engine. The engine's session bus
// must be otherwise unused; the runner subscribes for outbound events.
func NewRunner(engine *game.Engine, out Sender, clock quartz.Clock, stepDelay time.Duration, logger *log.Logger) *Runner {
	r := &Runner{
		engine:    engine,
		out:       out,
		clock:     clock,
		stepDelay: stepDelay,
		logger:    logger.WithPrefix("runner"),
		commands:  make(chan *Message, 64),
		stepReq:   make(chan struct{}, 1),
	}
	engine.Session().Bus().Subscribe(game.EventFunc(r.onEvent))
	return r
}

// Handle queues a client message for the run loop. Messages beyond the
// buffer are dropped with an error so a flooding client cannot block the
// read pump.
func (r *Runner) Handle(msg *Message) {
	select {
	case r.commands <- msg:
	default:
		r.logger.Warn("command buffer full, dropping message", "type", msg.Type)
		r.sendError("overloaded", "too many pending commands")
	}
}

// Run processes commands and paced AI steps until the context ends.
func (r *Runner) Run(ctx context.Context) error {
	for {
		select {
		case msg := <-r.commands:
			r.dispatch(msg)
			r.scheduleAIStep()
		case <-r.stepReq:
			r.stepScheduled = false
			r.stepAI()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// scheduleAIStep arms a delayed AI step when the computer owes an action
// and no step is already in flight.
func (r *Runner) scheduleAIStep() {
	if r.stepScheduled || !r.engine.AIActionPending() {
		return
	}
	r.stepScheduled = true
	r.clock.AfterFunc(r.stepDelay, func() {
		select {
		case r.stepReq <- struct{}{}:
		default:
		}
	})
}

func (r *Runner) stepAI() {
	if !r.engine.AIActionPending() {
		return
	}
	if err := r.engine.StepAI(); err != nil {
		r.logger.Error("ai step failed", "error", err)
		return
	}
	r.scheduleAIStep()
}

func (r *Runner) dispatch(msg *Message) {
	switch msg.Type {
	case MessageTypeStartGame:
		var data StartGameData
		if !r.decode(msg, &data) {
			return
		}
		starting := game.Player1
		if data.StartingPlayer == 2 {
			starting = game.Player2
		}
		if data.Difficulty != nil {
			r.engine.SetDifficulty(*data.Difficulty)
		}
		r.reply(r.engine.StartGame(data.Seed, starting))

	case MessageTypeToggleCard:
		var data ToggleCardData
		if !r.decode(msg, &data) {
			return
		}
		r.reply(r.engine.Toggle(data.CardIndex))

	case MessageTypeDeselectAll:
		r.reply(r.engine.DeselectAll())

	case MessageTypeSubmit:
		r.reply(r.engine.Submit())

	case MessageTypeCancel:
		r.reply(r.engine.Cancel())

	case MessageTypeConfirm:
		r.reply(r.engine.Confirm())

	case MessageTypeChooseColumn:
		var data ChooseColumnData
		if !r.decode(msg, &data) {
			return
		}
		r.reply(r.engine.PlaceOpponentCards(data.Column))

	case MessageTypeSetDifficulty:
		var data SetDifficultyData
		if !r.decode(msg, &data) {
			return
		}
		r.engine.SetDifficulty(data.Difficulty)

	case MessageTypeSortHand:
		var data SortHandData
		if !r.decode(msg, &data) {
			return
		}
		r.engine.SortHand(data.By != "suit")
		r.sendState()

	case MessageTypeRequestState:
		r.sendState()

	default:
		r.sendError("unknown_type", "unknown message type: "+msg.Type.String())
	}
}

func (r *Runner) decode(msg *Message, dest interface{}) bool {
	if err := json.Unmarshal(msg.Data, dest); err != nil {
		r.sendError("bad_request", "failed to parse "+msg.Type.String()+" data")
		return false
	}
	return true
}

// reply converts a command error into an error message; success is
// answered by the events the command produced.
func (r *Runner) reply(err error) {
	if err == nil {
		return
	}
	r.sendError(errorCode(err), err.Error())
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrWrongPhase):
		return "wrong_phase"
	case errors.Is(err, game.ErrInvalidSelectionCount):
		return "invalid_selection"
	case errors.Is(err, game.ErrInvalidPlacement):
		return "invalid_placement"
	case errors.Is(err, game.ErrInvalidCard):
		return "invalid_card"
	case errors.Is(err, game.ErrInvalidColumn):
		return "invalid_column"
	default:
		return "internal"
	}
}

// onEvent translates session events into outbound messages. The
// computer's face-down cards are reported by count only.
func (r *Runner) onEvent(event game.GameEvent) {
	human := r.engine.Human()

	switch ev := event.(type) {
	case game.PhaseChangedEvent:
		r.send(MessageTypePhaseChanged, PhaseChangedData{Phase: ev.New.String()})

	case game.CardsDealtEvent:
		data := CardsDealtData{Player: playerCode(ev.Player), Count: len(ev.Cards)}
		if ev.Player == human {
			data.Cards = ev.Cards
		}
		r.send(MessageTypeCardsDealt, data)

	case game.SelectionChangedEvent:
		if ev.Player != human {
			return
		}
		r.send(MessageTypeSelectionChanged, SelectionChangedData{
			Player:   playerCode(ev.Player),
			Selected: ev.Selected,
		})

	case game.CardsPlacedEvent:
		r.send(MessageTypeCardsPlaced, CardsPlacedData{
			Player: playerCode(ev.Player),
			Column: ev.Column,
			Cards:  ev.Cards,
		})

	case game.ColumnFilledEvent:
		r.send(MessageTypeColumnFilled, ColumnFilledData{Column: ev.Column})

	case game.ColumnResultEvent:
		r.send(MessageTypeColumnResult, ColumnResultData{
			Column:      ev.Column,
			Winner:      outcomeCode(ev.Winner),
			Player1Rank: rankName(ev.Player1Rank),
			Player2Rank: rankName(ev.Player2Rank),
		})

	case game.ScoreChangedEvent:
		r.send(MessageTypeScoreChanged, ScoreChangedData{
			Player1Score: ev.Player1Score,
			Player2Score: ev.Player2Score,
		})

	case game.GameOverEvent:
		r.send(MessageTypeGameOver, GameOverData{
			Winner:       outcomeCode(ev.Winner),
			Player1Score: ev.Player1Score,
			Player2Score: ev.Player2Score,
		})
	}
}

func (r *Runner) sendState() {
	session := r.engine.Session()
	human := r.engine.Human()
	computer := human.Other()
	board := session.Board()

	hand := session.HandCards(human)
	var selected []int
	for i := range hand {
		if session.IsSelected(human, i) {
			selected = append(selected, i)
		}
	}

	data := StateData{
		Phase:        session.Phase().String(),
		Seed:         session.Seed(),
		Hand:         hand,
		Selected:     selected,
		OpponentHand: len(session.HandCards(computer)),
		Player1Score: board.Score(game.Player1),
		Player2Score: board.Score(game.Player2),
		Difficulty:   r.engine.Difficulty(),
		Winner:       outcomeCode(session.Winner()),
	}
	for col := 0; col < game.NumColumns; col++ {
		data.Columns = append(data.Columns, ColumnState{
			Player1Cards: board.Side(game.Player1, col),
			Player2Cards: board.Side(game.Player2, col),
			Coin:         outcomeCode(board.Coin(col)),
		})
	}
	r.send(MessageTypeState, data)
}

func (r *Runner) send(messageType MessageType, data interface{}) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		r.logger.Error("failed to encode message", "type", messageType, "error", err)
		return
	}
	r.out.Send(msg)
}

func (r *Runner) sendError(code, message string) {
	r.send(MessageTypeError, ErrorData{Code: code, Message: message})
}
