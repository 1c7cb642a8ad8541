package server

import (
	"encoding/json"
	"time"

	"github.com/Jyouping/sevenhandpoker/internal/deck"
	"github.com/Jyouping/sevenhandpoker/internal/game"
	"github.com/Jyouping/sevenhandpoker/poker"
)

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeStartGame     MessageType = "start_game"
	MessageTypeToggleCard    MessageType = "toggle_card"
	MessageTypeDeselectAll   MessageType = "deselect_all"
	MessageTypeSubmit        MessageType = "submit_selection"
	MessageTypeCancel        MessageType = "cancel_selection"
	MessageTypeConfirm       MessageType = "confirm_selection"
	MessageTypeChooseColumn  MessageType = "choose_column"
	MessageTypeSetDifficulty MessageType = "set_difficulty"
	MessageTypeSortHand      MessageType = "sort_hand"
	MessageTypeRequestState  MessageType = "request_state"

	// Server to client messages
	MessageTypeError            MessageType = "error"
	MessageTypeState            MessageType = "state"
	MessageTypePhaseChanged     MessageType = "phase_changed"
	MessageTypeCardsDealt       MessageType = "cards_dealt"
	MessageTypeSelectionChanged MessageType = "selection_changed"
	MessageTypeCardsPlaced      MessageType = "cards_placed"
	MessageTypeColumnFilled     MessageType = "column_filled"
	MessageTypeColumnResult     MessageType = "column_result"
	MessageTypeScoreChanged     MessageType = "score_changed"
	MessageTypeGameOver         MessageType = "game_over"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server payloads

type StartGameData struct {
	// Seed fixes the deck; nil deals at random.
	Seed *int64 `json:"seed,omitempty"`

	// StartingPlayer is 1 or 2; zero defaults to 1 (the human).
	StartingPlayer int `json:"startingPlayer,omitempty"`

	// Difficulty is the 0/1/2 AI tier; nil keeps the current one.
	Difficulty *int `json:"difficulty,omitempty"`
}

type ToggleCardData struct {
	CardIndex int `json:"cardIndex"`
}

type ChooseColumnData struct {
	Column int `json:"column"`
}

type SetDifficultyData struct {
	Difficulty int `json:"difficulty"`
}

type SortHandData struct {
	// By is "rank" or "suit".
	By string `json:"by"`
}

// Server → Client payloads

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type PhaseChangedData struct {
	Phase string `json:"phase"`
}

// CardsDealtData carries the human's cards face up; the computer's deal
// is reported by count only.
type CardsDealtData struct {
	Player int         `json:"player"`
	Cards  []deck.Card `json:"cards,omitempty"`
	Count  int         `json:"count"`
}

type SelectionChangedData struct {
	Player   int         `json:"player"`
	Selected []deck.Card `json:"selected"`
}

type CardsPlacedData struct {
	Player int         `json:"player"`
	Column int         `json:"column"`
	Cards  []deck.Card `json:"cards"`
}

type ColumnFilledData struct {
	Column int `json:"column"`
}

type ColumnResultData struct {
	Column      int    `json:"column"`
	Winner      int    `json:"winner"`
	Player1Rank string `json:"player1Rank"`
	Player2Rank string `json:"player2Rank"`
}

type ScoreChangedData struct {
	Player1Score int `json:"player1Score"`
	Player2Score int `json:"player2Score"`
}

type GameOverData struct {
	Winner       int `json:"winner"`
	Player1Score int `json:"player1Score"`
	Player2Score int `json:"player2Score"`
}

// ColumnState is one column in a full state snapshot.
type ColumnState struct {
	Player1Cards []deck.Card `json:"player1Cards"`
	Player2Cards []deck.Card `json:"player2Cards"`
	Coin         int         `json:"coin"`
}

// StateData is a full snapshot for reconnecting or late-joining clients.
type StateData struct {
	Phase        string        `json:"phase"`
	Seed         int64         `json:"seed"`
	Hand         []deck.Card   `json:"hand"`
	Selected     []int         `json:"selected"`
	OpponentHand int           `json:"opponentHandCount"`
	Columns      []ColumnState `json:"columns"`
	Player1Score int           `json:"player1Score"`
	Player2Score int           `json:"player2Score"`
	Difficulty   int           `json:"difficulty"`
	Winner       int           `json:"winner"`
}

// wire codes for players and outcomes: 0 none/tie context dependent.
func playerCode(p game.Player) int {
	if p == game.Player2 {
		return 2
	}
	return 1
}

func outcomeCode(o game.Outcome) int {
	switch o {
	case game.WonByPlayer1:
		return 1
	case game.WonByPlayer2:
		return 2
	case game.Tied:
		return 3
	default:
		return 0
	}
}

func rankName(r poker.HandRank) string {
	return r.String()
}
