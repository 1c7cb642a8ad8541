// Package ai implements the computer opponent: tiered card selection and
// column placement over a read-only view of the session. Decisions are
// recommendations only; the game engine applies them.
package ai

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
)

// Level is the difficulty tier.
type Level int

const (
	LevelEasy Level = iota
	LevelMedium
	LevelHard
)

// String returns the string representation of a level
func (l Level) String() string {
	switch l {
	case LevelEasy:
		return "easy"
	case LevelMedium:
		return "medium"
	case LevelHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseLevel maps the 0/1/2 wire values onto a Level, folding anything
// else to medium.
func ParseLevel(n int) Level {
	switch n {
	case 0:
		return LevelEasy
	case 2:
		return LevelHard
	default:
		return LevelMedium
	}
}

// Config holds the tunable probabilities of the decision engine. Lower
// tiers escalate to the next tier's logic with a fixed chance per
// decision, trading predictability for occasional stronger play.
type Config struct {
	// EasySelectEscalate is the chance an easy-tier card selection runs
	// the medium logic instead.
	EasySelectEscalate float64

	// MediumSelectEscalate is the chance a medium-tier card selection
	// runs the hard logic instead.
	MediumSelectEscalate float64

	// EasyPlaceEscalate and MediumPlaceEscalate are the placement
	// equivalents.
	EasyPlaceEscalate   float64
	MediumPlaceEscalate float64

	// Bluff is the chance the hard tier commits a fake combination when
	// holding a weak hand. Suppressed when behind in the late game.
	Bluff float64

	// MidGameBestPlay is the chance the hard tier commits its best
	// combination mid-game rather than holding back.
	MidGameBestPlay float64

	// MidGameColumns and LateGameColumns are the filled-column counts at
	// which the game is considered mid and late stage.
	MidGameColumns  int
	LateGameColumns int
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() Config {
	return Config{
		EasySelectEscalate:   0.30,
		MediumSelectEscalate: 0.40,
		EasyPlaceEscalate:    0.25,
		MediumPlaceEscalate:  0.35,
		Bluff:                0.15,
		MidGameBestPlay:      0.50,
		MidGameColumns:       2,
		LateGameColumns:      5,
	}
}

// stage buckets the game by how many columns are decided.
type stage int

const (
	stageEarly stage = iota
	stageMid
	stageLate
)

// Engine is the computer decision engine. It holds no game state beyond
// its tier and tuning; every decision reads a fresh view.
type Engine struct {
	level  Level
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger
}

// New creates an engine at the given tier. The rand source is injected so
// tests and tutorial mode can fix the decision stream.
func New(level Level, cfg Config, rng *rand.Rand, logger *log.Logger) *Engine {
	return &Engine{
		level:  level,
		cfg:    cfg,
		rng:    rng,
		logger: logger.WithPrefix("ai"),
	}
}

// SetLevel switches the difficulty tier using the 0/1/2 wire values.
func (e *Engine) SetLevel(level int) {
	e.level = ParseLevel(level)
}

// Level returns the tier as its 0/1/2 wire value.
func (e *Engine) Level() int {
	return int(e.level)
}

func (e *Engine) stage(filledColumns int) stage {
	switch {
	case filledColumns >= e.cfg.LateGameColumns:
		return stageLate
	case filledColumns >= e.cfg.MidGameColumns:
		return stageMid
	default:
		return stageEarly
	}
}

func (e *Engine) chance(p float64) bool {
	return e.rng.Float64() < p
}
