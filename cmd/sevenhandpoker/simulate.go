package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Jyouping/sevenhandpoker/internal/ai"
	"github.com/Jyouping/sevenhandpoker/internal/game"
	"github.com/Jyouping/sevenhandpoker/internal/randutil"
)

// SimulateCmd pits two computer strategies against each other
type SimulateCmd struct {
	Games   int    `default:"1000" help:"Number of games to simulate"`
	Player1 string `default:"medium" help:"Player 1 difficulty: easy, medium or hard"`
	Player2 string `default:"medium" help:"Player 2 difficulty: easy, medium or hard"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Verbose bool   `help:"Verbose logging"`
}

type simTally struct {
	Player1Wins int
	Player2Wins int
	Ties        int
	Turns       int
}

func (c *SimulateCmd) Run() error {
	level1, err := levelFromName(c.Player1)
	if err != nil {
		return err
	}
	level2, err := levelFromName(c.Player2)
	if err != nil {
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := setupLogger("error", c.Verbose)

	fmt.Printf("Simulating %d games: %s vs %s (seed %d)\n\n", c.Games, level1, level2, seed)

	rng := randutil.New(seed)
	tally := simTally{}
	start := time.Now()

	for i := 0; i < c.Games; i++ {
		gameSeed := int64(rng.Uint64() >> 1)
		starting := game.Player1
		if i%2 == 1 {
			starting = game.Player2
		}

		winner, turns, err := playGame(gameSeed, starting, level1, level2, rng, logger)
		if err != nil {
			return fmt.Errorf("game %d (seed %d): %w", i+1, gameSeed, err)
		}

		tally.Turns += turns
		switch winner {
		case game.WonByPlayer1:
			tally.Player1Wins++
		case game.WonByPlayer2:
			tally.Player2Wins++
		default:
			tally.Ties++
		}
	}

	elapsed := time.Since(start)
	printSummary(c.Games, level1, level2, tally, elapsed)
	return nil
}

// playGame runs one full game between two strategies and returns the
// outcome plus the number of decision steps it took.
func playGame(seed int64, starting game.Player, level1, level2 ai.Level, rng *rand.Rand, logger *log.Logger) (game.Outcome, int, error) {
	session := game.NewSession(nil, logger)
	strategies := map[game.Player]*ai.Engine{
		game.Player1: ai.New(level1, ai.DefaultConfig(), randutil.New(int64(rng.Uint64()>>1)), logger),
		game.Player2: ai.New(level2, ai.DefaultConfig(), randutil.New(int64(rng.Uint64()>>1)), logger),
	}

	if err := session.Start(&seed, starting); err != nil {
		return game.Unclaimed, 0, err
	}

	// Both sides combined never need more steps than this in a legal
	// game; exceeding it means the state machine stalled.
	const maxSteps = 400

	turns := 0
	for steps := 0; session.Phase() != game.PhaseGameOver; steps++ {
		if steps >= maxSteps {
			return game.Unclaimed, turns, fmt.Errorf("game did not terminate within %d steps", maxSteps)
		}
		if err := stepGame(session, strategies); err != nil {
			return game.Unclaimed, turns, err
		}
		turns++
	}

	return session.Winner(), turns, nil
}

// stepGame performs the next owed action: a selection, a confirmation or
// a column choice, whichever the current phase demands.
func stepGame(session *game.Session, strategies map[game.Player]*ai.Engine) error {
	switch session.Phase() {
	case game.PhasePlayer1Selecting:
		return selectFor(session, game.Player1, strategies[game.Player1])
	case game.PhasePlayer2Selecting:
		return selectFor(session, game.Player2, strategies[game.Player2])
	case game.PhasePlayer1Confirming:
		return session.Confirm(game.Player1)
	case game.PhasePlayer2Confirming:
		return session.Confirm(game.Player2)
	case game.PhasePlayer1Waiting:
		return placeFor(session, game.Player2, game.Player1, strategies[game.Player2])
	case game.PhasePlayer2Waiting:
		return placeFor(session, game.Player1, game.Player2, strategies[game.Player1])
	default:
		return fmt.Errorf("no action owed in phase %s", session.Phase())
	}
}

func selectFor(session *game.Session, p game.Player, strategy *ai.Engine) error {
	if err := session.DeselectAll(p); err != nil {
		return err
	}
	view := session.View(p)
	indices := strategy.SelectCards(view)
	if len(indices) == 0 && len(view.Hand) > 0 {
		indices = []int{0}
	}
	for _, i := range indices {
		if err := session.Toggle(p, i); err != nil {
			return err
		}
	}
	return session.Submit(p)
}

func placeFor(session *game.Session, chooser, owner game.Player, strategy *ai.Engine) error {
	view := session.View(chooser)
	incoming := session.Selection(owner)
	col := strategy.ChooseColumn(view, incoming)
	return session.ChoosePlacement(chooser, col)
}

func levelFromName(name string) (ai.Level, error) {
	switch name {
	case "easy":
		return ai.LevelEasy, nil
	case "medium":
		return ai.LevelMedium, nil
	case "hard":
		return ai.LevelHard, nil
	default:
		return ai.LevelEasy, fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", name)
	}
}

func printSummary(games int, level1, level2 ai.Level, tally simTally, elapsed time.Duration) {
	pct := func(n int) float64 {
		if games == 0 {
			return 0
		}
		return 100 * float64(n) / float64(games)
	}

	fmt.Printf("=== Results (%d games in %s) ===\n", games, elapsed.Round(time.Millisecond))
	fmt.Printf("Player 1 (%s): %6d wins  %5.1f%%\n", level1, tally.Player1Wins, pct(tally.Player1Wins))
	fmt.Printf("Player 2 (%s): %6d wins  %5.1f%%\n", level2, tally.Player2Wins, pct(tally.Player2Wins))
	fmt.Printf("Ties:            %6d       %5.1f%%\n", tally.Ties, pct(tally.Ties))
	if games > 0 {
		fmt.Printf("Average game length: %.1f steps\n", float64(tally.Turns)/float64(games))
	}
	fmt.Printf("Throughput: %.0f games/sec\n", float64(games)/elapsed.Seconds())
}
