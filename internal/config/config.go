// Package config loads the application configuration from an HCL file.
// A missing file is not an error; every setting has a shipped default so
// the game runs with no configuration at all.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/Jyouping/sevenhandpoker/internal/ai"
)

// Config represents the complete application configuration
type Config struct {
	Game   *GameSettings   `hcl:"game,block"`
	AI     *AISettings     `hcl:"ai,block"`
	Server *ServerSettings `hcl:"server,block"`
	Stats  *StatsSettings  `hcl:"stats,block"`
}

// GameSettings contains rules-facing configuration
type GameSettings struct {
	// TutorialSeed is the fixed deck seed tutorial mode plays with, so
	// the walkthrough always sees the same cards.
	TutorialSeed int64 `hcl:"tutorial_seed,optional"`

	// HandSort is the initial hand ordering, "rank" or "suit".
	HandSort string `hcl:"hand_sort,optional"`
}

// AISettings tunes the computer opponent
type AISettings struct {
	Level string `hcl:"level,optional"`

	EasySelectEscalate   float64 `hcl:"easy_select_escalate,optional"`
	MediumSelectEscalate float64 `hcl:"medium_select_escalate,optional"`
	EasyPlaceEscalate    float64 `hcl:"easy_place_escalate,optional"`
	MediumPlaceEscalate  float64 `hcl:"medium_place_escalate,optional"`
	Bluff                float64 `hcl:"bluff,optional"`
	MidGameBestPlay      float64 `hcl:"mid_game_best_play,optional"`
	MidGameColumns       int     `hcl:"mid_game_columns,optional"`
	LateGameColumns      int     `hcl:"late_game_columns,optional"`
}

// ServerSettings contains the websocket server configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`

	// AIStepDelayMS paces the computer's moves so remote clients see
	// them land one at a time instead of instantly.
	AIStepDelayMS int `hcl:"ai_step_delay_ms,optional"`
}

// StatsSettings locates the win/loss record file
type StatsSettings struct {
	Path string `hcl:"path,optional"`
}

// Default returns the shipped configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	if c.Game.TutorialSeed == 0 {
		c.Game.TutorialSeed = 1
	}
	if c.Game.HandSort == "" {
		c.Game.HandSort = "rank"
	}

	if c.AI == nil {
		c.AI = &AISettings{}
	}
	tuning := ai.DefaultConfig()
	if c.AI.Level == "" {
		c.AI.Level = "medium"
	}
	if c.AI.EasySelectEscalate == 0 {
		c.AI.EasySelectEscalate = tuning.EasySelectEscalate
	}
	if c.AI.MediumSelectEscalate == 0 {
		c.AI.MediumSelectEscalate = tuning.MediumSelectEscalate
	}
	if c.AI.EasyPlaceEscalate == 0 {
		c.AI.EasyPlaceEscalate = tuning.EasyPlaceEscalate
	}
	if c.AI.MediumPlaceEscalate == 0 {
		c.AI.MediumPlaceEscalate = tuning.MediumPlaceEscalate
	}
	if c.AI.Bluff == 0 {
		c.AI.Bluff = tuning.Bluff
	}
	if c.AI.MidGameBestPlay == 0 {
		c.AI.MidGameBestPlay = tuning.MidGameBestPlay
	}
	if c.AI.MidGameColumns == 0 {
		c.AI.MidGameColumns = tuning.MidGameColumns
	}
	if c.AI.LateGameColumns == 0 {
		c.AI.LateGameColumns = tuning.LateGameColumns
	}

	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.AIStepDelayMS == 0 {
		c.Server.AIStepDelayMS = 600
	}

	if c.Stats == nil {
		c.Stats = &StatsSettings{}
	}
	if c.Stats.Path == "" {
		c.Stats.Path = defaultStatsPath()
	}
}

func defaultStatsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sevenhandpoker-stats.json"
	}
	return filepath.Join(home, ".sevenhandpoker", "stats.json")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	switch c.AI.Level {
	case "easy", "medium", "hard":
	default:
		return fmt.Errorf("invalid ai level: %s", c.AI.Level)
	}

	switch c.Game.HandSort {
	case "rank", "suit":
	default:
		return fmt.Errorf("invalid hand sort: %s", c.Game.HandSort)
	}

	probabilities := map[string]float64{
		"easy_select_escalate":   c.AI.EasySelectEscalate,
		"medium_select_escalate": c.AI.MediumSelectEscalate,
		"easy_place_escalate":    c.AI.EasyPlaceEscalate,
		"medium_place_escalate":  c.AI.MediumPlaceEscalate,
		"bluff":                  c.AI.Bluff,
		"mid_game_best_play":     c.AI.MidGameBestPlay,
	}
	for name, p := range probabilities {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %v", name, p)
		}
	}

	if c.AI.MidGameColumns < 1 || c.AI.LateGameColumns <= c.AI.MidGameColumns {
		return fmt.Errorf("mid_game_columns (%d) must be at least 1 and below late_game_columns (%d)",
			c.AI.MidGameColumns, c.AI.LateGameColumns)
	}

	if c.Server.AIStepDelayMS < 0 {
		return fmt.Errorf("ai_step_delay_ms must not be negative")
	}
	return nil
}

// ListenAddr returns the full server listen address.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// AILevel maps the configured level name onto the AI tier.
func (c *Config) AILevel() ai.Level {
	switch c.AI.Level {
	case "easy":
		return ai.LevelEasy
	case "hard":
		return ai.LevelHard
	default:
		return ai.LevelMedium
	}
}

// AITuning builds the decision engine tuning from the configured values.
func (c *Config) AITuning() ai.Config {
	return ai.Config{
		EasySelectEscalate:   c.AI.EasySelectEscalate,
		MediumSelectEscalate: c.AI.MediumSelectEscalate,
		EasyPlaceEscalate:    c.AI.EasyPlaceEscalate,
		MediumPlaceEscalate:  c.AI.MediumPlaceEscalate,
		Bluff:                c.AI.Bluff,
		MidGameBestPlay:      c.AI.MidGameBestPlay,
		MidGameColumns:       c.AI.MidGameColumns,
		LateGameColumns:      c.AI.LateGameColumns,
	}
}
