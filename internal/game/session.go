package game

import (
	"github.com/charmbracelet/log"

	"github.com/Jyouping/sevenhandpoker/internal/deck"
	"github.com/Jyouping/sevenhandpoker/poker"
)

const (
	// handSize is the number of cards dealt to each player at game start.
	handSize = 13

	// replacementDraw is how many cards a player draws back after placing,
	// regardless of how many were placed. Truncated near deck exhaustion.
	replacementDraw = 3
)

// Session owns one game's mutable state: the deck, both hands, the board
// and the turn state machine. All mutation happens through its command
// methods; illegal commands return a typed error and leave the state
// untouched. A session is single-threaded; distinct games get distinct
// sessions.
type Session struct {
	deck    *deck.Deck
	hands   [2]*Hand
	board   *Board
	phase   Phase
	current Player
	winner  Outcome
	bus     EventBus
	logger  *log.Logger
}

// NewSession creates an idle session publishing to the given bus.
func NewSession(bus EventBus, logger *log.Logger) *Session {
	if bus == nil {
		bus = NewEventBus()
	}
	return &Session{
		hands:  [2]*Hand{NewHand(), NewHand()},
		board:  NewBoard(),
		phase:  PhaseIdle,
		bus:    bus,
		logger: logger.WithPrefix("game"),
	}
}

// Bus returns the session's event bus.
func (s *Session) Bus() EventBus {
	return s.bus
}

// Phase returns the current state machine phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Current returns the player whose turn obligation is active.
func (s *Session) Current() Player {
	return s.current
}

// Winner returns the game result; valid once the phase is PhaseGameOver.
func (s *Session) Winner() Outcome {
	return s.winner
}

// Seed returns the seed of the deck in play.
func (s *Session) Seed() int64 {
	if s.deck == nil {
		return 0
	}
	return s.deck.Seed()
}

// Board returns the shared board.
func (s *Session) Board() *Board {
	return s.board
}

// HandCards returns a player's hand in display order.
func (s *Session) HandCards(p Player) []deck.Card {
	return s.hands[p].Cards()
}

// Selection returns a player's currently selected cards in display order.
func (s *Session) Selection(p Player) []deck.Card {
	return s.hands[p].Selected()
}

// IsSelected reports whether a player's card at index i is selected.
func (s *Session) IsSelected(p Player, i int) bool {
	return s.hands[p].IsSelected(i)
}

// Start begins a new game. Valid from idle or after a game over; resets
// the deck, hands, board and coins. A nil seed picks a random one.
func (s *Session) Start(seed *int64, starting Player) error {
	if s.phase != PhaseIdle && s.phase != PhaseGameOver {
		return ErrWrongPhase
	}

	if seed != nil {
		s.deck = deck.New(*seed)
	} else {
		s.deck = deck.NewRandom()
	}
	s.hands = [2]*Hand{NewHand(), NewHand()}
	s.board = NewBoard()
	s.winner = Unclaimed
	s.current = starting

	s.logger.Info("starting game", "seed", s.deck.Seed(), "starting", starting)
	s.setPhase(PhaseDealing)
	s.deal()
	s.setPhase(selectingPhase(starting))
	return nil
}

// deal gives each player their opening hand, player1 face up and player2
// face down.
func (s *Session) deal() {
	var dealt [2][]deck.Card
	for i := 0; i < handSize; i++ {
		for _, p := range []Player{Player1, Player2} {
			card, err := s.deck.Draw()
			if err != nil {
				// Unreachable with a fresh 52-card deck and 13-card hands.
				s.logger.Error("deck exhausted during deal", "error", err)
				break
			}
			s.hands[p].Add(card)
			dealt[p] = append(dealt[p], card)
		}
	}
	s.publish(CardsDealtEvent{Player: Player1, Cards: dealt[Player1], FaceUp: true, timestamp: now()})
	s.publish(CardsDealtEvent{Player: Player2, Cards: dealt[Player2], FaceUp: false, timestamp: now()})
}

// Toggle flips the selection state of a card during its owner's selecting
// phase.
func (s *Session) Toggle(p Player, cardIndex int) error {
	if s.phase != selectingPhase(p) {
		return ErrWrongPhase
	}
	if err := s.hands[p].Toggle(cardIndex); err != nil {
		return err
	}
	s.publish(SelectionChangedEvent{Player: p, Selected: s.hands[p].Selected(), timestamp: now()})
	return nil
}

// DeselectAll clears a player's selection during their selecting phase.
func (s *Session) DeselectAll(p Player) error {
	if s.phase != selectingPhase(p) {
		return ErrWrongPhase
	}
	s.hands[p].DeselectAll()
	s.publish(SelectionChangedEvent{Player: p, Selected: nil, timestamp: now()})
	return nil
}

// Submit locks in the current selection (1-5 cards) for confirmation.
func (s *Session) Submit(p Player) error {
	if s.phase != selectingPhase(p) {
		return ErrWrongPhase
	}
	n := s.hands[p].SelectedCount()
	if n < 1 || n > maxSelection {
		return ErrInvalidSelectionCount
	}
	s.setPhase(confirmingPhase(p))
	return nil
}

// Cancel returns a submitted selection to the selecting phase.
func (s *Session) Cancel(p Player) error {
	if s.phase != confirmingPhase(p) {
		return ErrWrongPhase
	}
	s.setPhase(selectingPhase(p))
	return nil
}

// Confirm hands the submitted selection over to the opponent, who must
// choose the column it lands in.
func (s *Session) Confirm(p Player) error {
	if s.phase != confirmingPhase(p) {
		return ErrWrongPhase
	}
	s.setPhase(waitingPhase(p))
	return nil
}

// ChoosePlacement places the waiting opponent's confirmed cards into the
// chosen column. Valid only for the player whose opponent is waiting, and
// only into a column where the waiting player has no cards yet.
func (s *Session) ChoosePlacement(chooser Player, col int) error {
	owner := chooser.Other()
	if s.phase != waitingPhase(owner) {
		return ErrWrongPhase
	}
	if col < 0 || col >= NumColumns {
		return ErrInvalidColumn
	}
	if s.board.SideLen(owner, col) > 0 {
		return ErrInvalidPlacement
	}

	cards := s.hands[owner].RemoveSelected()
	if err := s.board.Place(owner, col, cards); err != nil {
		// Validation above makes this unreachable; restore the hand so a
		// bug here cannot destroy cards.
		for _, c := range cards {
			s.hands[owner].Add(c)
		}
		return err
	}

	s.logger.Info("cards placed", "player", owner, "column", col, "count", len(cards))
	s.publish(CardsPlacedEvent{Player: owner, Column: col, Cards: cards, timestamp: now()})

	s.replenish(owner)

	if s.board.IsColumnFull(col) {
		s.compareColumn(col, owner)
		return nil
	}
	s.nextTurn(owner)
	return nil
}

// replenish draws the fixed replacement count back into a hand, stopping
// early when the deck runs out.
func (s *Session) replenish(p Player) {
	var drawn []deck.Card
	for i := 0; i < replacementDraw && s.deck.CanDraw(); i++ {
		card, err := s.deck.Draw()
		if err != nil {
			break
		}
		s.hands[p].Add(card)
		drawn = append(drawn, card)
	}
	if len(drawn) > 0 {
		s.publish(CardsDealtEvent{Player: p, Cards: drawn, FaceUp: p == Player1, timestamp: now()})
	}
}

// compareColumn evaluates a just-filled column, awards its coin and runs
// the win check.
func (s *Session) compareColumn(col int, lastOwner Player) {
	s.setPhase(PhaseComparing)
	s.publish(ColumnFilledEvent{Column: col, timestamp: now()})

	p1Cards := s.board.Side(Player1, col)
	p2Cards := s.board.Side(Player2, col)
	p1Rank := poker.MustEvaluate(p1Cards)
	p2Rank := poker.MustEvaluate(p2Cards)

	result, err := poker.Compare(p1Cards, p2Cards)
	if err != nil {
		// Placement bounds make this unreachable.
		s.logger.Error("column comparison failed", "column", col, "error", err)
		result = poker.ResultTie
	}

	outcome := Tied
	switch result {
	case poker.ResultFirst:
		outcome = WonByPlayer1
	case poker.ResultSecond:
		outcome = WonByPlayer2
	}
	s.board.setCoin(col, outcome)

	s.logger.Info("column decided", "column", col, "winner", outcome,
		"p1", p1Rank, "p2", p2Rank)
	s.publish(ColumnResultEvent{
		Column: col, Winner: outcome,
		Player1Rank: p1Rank, Player2Rank: p2Rank, timestamp: now(),
	})
	s.publish(ScoreChangedEvent{
		Player1Score: s.board.Score(Player1),
		Player2Score: s.board.Score(Player2),
		timestamp:    now(),
	})

	s.checkWin(lastOwner)
}

// checkWin applies the win conditions in order: four coins, three
// consecutive columns, then full-board totals. If nothing triggers, play
// passes to the next turn.
func (s *Session) checkWin(lastOwner Player) {
	s.setPhase(PhaseCheckingWin)

	p1Score, p2Score := s.board.Score(Player1), s.board.Score(Player2)

	switch {
	case p1Score >= 4 || s.board.LongestRun(Player1) >= 3:
		s.gameOver(WonByPlayer1)
	case p2Score >= 4 || s.board.LongestRun(Player2) >= 3:
		s.gameOver(WonByPlayer2)
	case s.board.AllFull():
		s.gameOver(totalsOutcome(p1Score, p2Score))
	default:
		s.nextTurn(lastOwner)
	}
}

// nextTurn hands the selecting obligation to the opponent of whoever just
// placed, skipping a player whose hand has emptied. If neither player can
// play, remaining columns can never fill and the game settles on totals.
func (s *Session) nextTurn(lastOwner Player) {
	next := lastOwner.Other()
	if s.hands[next].Len() == 0 {
		if s.hands[lastOwner].Len() == 0 {
			s.setPhase(PhaseCheckingWin)
			s.gameOver(totalsOutcome(s.board.Score(Player1), s.board.Score(Player2)))
			return
		}
		next = lastOwner
	}
	s.current = next
	s.setPhase(selectingPhase(next))
}

func (s *Session) gameOver(winner Outcome) {
	s.winner = winner
	p1Score, p2Score := s.board.Score(Player1), s.board.Score(Player2)
	s.logger.Info("game over", "winner", winner, "p1", p1Score, "p2", p2Score)
	s.setPhase(PhaseGameOver)
	s.publish(GameOverEvent{
		Winner:       winner,
		Player1Score: p1Score,
		Player2Score: p2Score,
		timestamp:    now(),
	})
}

// SortHand reorders a player's hand for display without touching
// selections. Allowed in any phase; ordering has no rules effect.
func (s *Session) SortHand(p Player, byRank bool) {
	if byRank {
		s.hands[p].SortByRank()
	} else {
		s.hands[p].SortBySuit()
	}
}

// View builds the read-only snapshot a strategy sees from p's seat.
func (s *Session) View(p Player) StateView {
	view := StateView{
		Self:          p,
		Hand:          s.hands[p].Cards(),
		OwnScore:      s.board.Score(p),
		OppScore:      s.board.Score(p.Other()),
		OwnRun:        s.board.LongestRun(p),
		OppRun:        s.board.LongestRun(p.Other()),
		FilledColumns: s.board.FilledColumns(),
	}
	for col := 0; col < NumColumns; col++ {
		view.OwnColumns[col] = s.board.Side(p, col)
		view.OppColumns[col] = s.board.Side(p.Other(), col)
		view.Coins[col] = s.board.Coin(col)
	}
	return view
}

func (s *Session) setPhase(next Phase) {
	if next == s.phase {
		return
	}
	old := s.phase
	s.phase = next
	s.logger.Debug("phase change", "from", old, "to", next)
	s.publish(PhaseChangedEvent{Old: old, New: next, timestamp: now()})
}

func (s *Session) publish(event GameEvent) {
	s.bus.Publish(event)
}

func totalsOutcome(p1Score, p2Score int) Outcome {
	switch {
	case p1Score > p2Score:
		return WonByPlayer1
	case p2Score > p1Score:
		return WonByPlayer2
	default:
		return Tied
	}
}
