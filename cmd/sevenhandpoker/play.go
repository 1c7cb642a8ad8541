package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Jyouping/sevenhandpoker/internal/ai"
	"github.com/Jyouping/sevenhandpoker/internal/config"
	"github.com/Jyouping/sevenhandpoker/internal/game"
	"github.com/Jyouping/sevenhandpoker/internal/randutil"
	"github.com/Jyouping/sevenhandpoker/internal/statistics"
	"github.com/Jyouping/sevenhandpoker/internal/tui"
)

// PlayCmd runs the interactive terminal game
type PlayCmd struct {
	Config     string `help:"Path to HCL config file" default:"sevenhandpoker.hcl"`
	Seed       *int64 `help:"Deterministic deck seed"`
	Tutorial   bool   `help:"Play the fixed tutorial deal"`
	Difficulty string `help:"AI difficulty: easy, medium or hard (overrides config)"`
	Debug      bool   `help:"Write debug logs to sevenhandpoker.log"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Difficulty != "" {
		cfg.AI.Level = c.Difficulty
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	logOutput := io.Discard
	if c.Debug {
		file, err := os.OpenFile("sevenhandpoker.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer func() { _ = file.Close() }()
		logOutput = file
	}
	logger := log.NewWithOptions(logOutput, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           log.DebugLevel,
	})

	stats := statistics.NewFileStore(cfg.Stats.Path)

	session := game.NewSession(nil, logger)
	strategy := ai.New(cfg.AILevel(), cfg.AITuning(), randutil.New(time.Now().UnixNano()), logger)
	engine := game.NewEngine(session, strategy, game.Player1, stats, logger)

	seed := c.Seed
	if c.Tutorial {
		seed = &cfg.Game.TutorialSeed
	}
	if err := engine.StartGame(seed, game.Player1); err != nil {
		return err
	}
	engine.SortHand(cfg.Game.HandSort != "suit")

	stepDelay := time.Duration(cfg.Server.AIStepDelayMS) * time.Millisecond
	model := tui.New(engine, stepDelay, logger)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
