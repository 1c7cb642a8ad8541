package game

// Player identifies one of the two seats.
type Player int

const (
	Player1 Player = iota
	Player2
)

// Other returns the opposing player.
func (p Player) Other() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// String returns the string representation of a player
func (p Player) String() string {
	if p == Player1 {
		return "player1"
	}
	return "player2"
}

// Outcome records who claimed a column's coin, or the final game result.
type Outcome int

const (
	Unclaimed Outcome = iota
	WonByPlayer1
	WonByPlayer2
	Tied
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case WonByPlayer1:
		return "player1"
	case WonByPlayer2:
		return "player2"
	case Tied:
		return "tie"
	default:
		return "unclaimed"
	}
}

// Won reports whether the outcome counts as a point for the given player.
// Ties count for both sides.
func (o Outcome) Won(p Player) bool {
	if o == Tied {
		return true
	}
	return o == outcomeFor(p)
}

func outcomeFor(p Player) Outcome {
	if p == Player1 {
		return WonByPlayer1
	}
	return WonByPlayer2
}

// Phase is the state of the turn state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDealing
	PhasePlayer1Selecting
	PhasePlayer1Confirming
	PhasePlayer1Waiting
	PhasePlayer2Selecting
	PhasePlayer2Confirming
	PhasePlayer2Waiting
	PhaseComparing
	PhaseCheckingWin
	PhaseGameOver
)

// String returns the string representation of a phase
func (ph Phase) String() string {
	switch ph {
	case PhaseIdle:
		return "idle"
	case PhaseDealing:
		return "dealing"
	case PhasePlayer1Selecting:
		return "player1_selecting"
	case PhasePlayer1Confirming:
		return "player1_confirming"
	case PhasePlayer1Waiting:
		return "player1_waiting"
	case PhasePlayer2Selecting:
		return "player2_selecting"
	case PhasePlayer2Confirming:
		return "player2_confirming"
	case PhasePlayer2Waiting:
		return "player2_waiting"
	case PhaseComparing:
		return "comparing"
	case PhaseCheckingWin:
		return "checking_win"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// selectingPhase returns the phase in which the given player picks cards.
func selectingPhase(p Player) Phase {
	if p == Player1 {
		return PhasePlayer1Selecting
	}
	return PhasePlayer2Selecting
}

// confirmingPhase returns the phase in which the given player reviews a
// submitted selection.
func confirmingPhase(p Player) Phase {
	if p == Player1 {
		return PhasePlayer1Confirming
	}
	return PhasePlayer2Confirming
}

// waitingPhase returns the phase in which the given player waits for the
// opponent to choose a column for their confirmed selection.
func waitingPhase(p Player) Phase {
	if p == Player1 {
		return PhasePlayer1Waiting
	}
	return PhasePlayer2Waiting
}
