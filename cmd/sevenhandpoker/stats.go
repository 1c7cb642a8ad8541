package main

import (
	"fmt"

	"github.com/Jyouping/sevenhandpoker/internal/config"
	"github.com/Jyouping/sevenhandpoker/internal/statistics"
)

// StatsCmd prints or resets the saved win/loss records
type StatsCmd struct {
	Config string `help:"Path to HCL config file" default:"sevenhandpoker.hcl"`
	Reset  bool   `help:"Clear all recorded results"`
}

func (c *StatsCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store := statistics.NewFileStore(cfg.Stats.Path)

	if c.Reset {
		if err := store.Reset(); err != nil {
			return fmt.Errorf("failed to reset statistics: %w", err)
		}
		fmt.Println("Statistics cleared.")
		return nil
	}

	fmt.Printf("%-8s %6s %8s %9s\n", "Level", "Wins", "Losses", "Win rate")
	for _, level := range []struct {
		name string
		id   int
	}{
		{"easy", statistics.LevelEasy},
		{"medium", statistics.LevelMedium},
		{"hard", statistics.LevelHard},
	} {
		record, err := store.Get(level.id)
		if err != nil {
			return err
		}
		if record.TotalGames() == 0 {
			fmt.Printf("%-8s %6d %8d %9s\n", level.name, 0, 0, "-")
			continue
		}
		fmt.Printf("%-8s %6d %8d %8.1f%%\n", level.name, record.Wins, record.Losses, record.WinRate())
	}
	return nil
}
