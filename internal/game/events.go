package game

import (
	"time"

	"github.com/Jyouping/sevenhandpoker/internal/deck"
	"github.com/Jyouping/sevenhandpoker/poker"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypePhaseChanged     EventType = "phase_changed"
	EventTypeCardsDealt       EventType = "cards_dealt"
	EventTypeSelectionChanged EventType = "selection_changed"
	EventTypeCardsPlaced      EventType = "cards_placed"
	EventTypeColumnFilled     EventType = "column_filled"
	EventTypeColumnResult     EventType = "column_result"
	EventTypeScoreChanged     EventType = "score_changed"
	EventTypeGameOver         EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any observable state change in a session.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// PhaseChangedEvent is published on every state machine transition.
type PhaseChangedEvent struct {
	Old       Phase
	New       Phase
	timestamp time.Time
}

func (e PhaseChangedEvent) EventType() EventType { return EventTypePhaseChanged }
func (e PhaseChangedEvent) Timestamp() time.Time { return e.timestamp }

// CardsDealtEvent is published when cards enter a player's hand, both for
// the opening deal and for post-placement replacement draws.
type CardsDealtEvent struct {
	Player    Player
	Cards     []deck.Card
	FaceUp    bool
	timestamp time.Time
}

func (e CardsDealtEvent) EventType() EventType { return EventTypeCardsDealt }
func (e CardsDealtEvent) Timestamp() time.Time { return e.timestamp }

// SelectionChangedEvent is published whenever a player's selection set
// changes.
type SelectionChangedEvent struct {
	Player    Player
	Selected  []deck.Card
	timestamp time.Time
}

func (e SelectionChangedEvent) EventType() EventType { return EventTypeSelectionChanged }
func (e SelectionChangedEvent) Timestamp() time.Time { return e.timestamp }

// CardsPlacedEvent is published when a confirmed selection lands in a
// column.
type CardsPlacedEvent struct {
	Player    Player
	Column    int
	Cards     []deck.Card
	timestamp time.Time
}

func (e CardsPlacedEvent) EventType() EventType { return EventTypeCardsPlaced }
func (e CardsPlacedEvent) Timestamp() time.Time { return e.timestamp }

// ColumnFilledEvent is published when both sides of a column hold cards.
type ColumnFilledEvent struct {
	Column    int
	timestamp time.Time
}

func (e ColumnFilledEvent) EventType() EventType { return EventTypeColumnFilled }
func (e ColumnFilledEvent) Timestamp() time.Time { return e.timestamp }

// ColumnResultEvent is published after a filled column is evaluated.
type ColumnResultEvent struct {
	Column      int
	Winner      Outcome
	Player1Rank poker.HandRank
	Player2Rank poker.HandRank
	timestamp   time.Time
}

func (e ColumnResultEvent) EventType() EventType { return EventTypeColumnResult }
func (e ColumnResultEvent) Timestamp() time.Time { return e.timestamp }

// ScoreChangedEvent is published after each column result.
type ScoreChangedEvent struct {
	Player1Score int
	Player2Score int
	timestamp    time.Time
}

func (e ScoreChangedEvent) EventType() EventType { return EventTypeScoreChanged }
func (e ScoreChangedEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published when a win condition triggers.
type GameOverEvent struct {
	Winner       Outcome
	Player1Score int
	Player2Score int
	timestamp    time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives published events.
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation.
// Delivery is synchronous and in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, s := range bus.subscribers {
		if s == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			return
		}
	}
}

// Publish delivers an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

func now() time.Time { return time.Now() }

// EventFunc adapts a function to the EventSubscriber interface.
type EventFunc func(event GameEvent)

// OnEvent calls the wrapped function
func (f EventFunc) OnEvent(event GameEvent) { f(event) }
