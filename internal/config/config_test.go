package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jyouping/sevenhandpoker/internal/ai"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "medium", cfg.AI.Level)
	assert.Equal(t, int64(1), cfg.Game.TutorialSeed)
	assert.Equal(t, "localhost:8080", cfg.ListenAddr())
	assert.Equal(t, ai.DefaultConfig(), cfg.AITuning())
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
game {
  tutorial_seed = 42
}

ai {
  level = "hard"
  bluff = 0.5
}

server {
  port = 9000
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int64(42), cfg.Game.TutorialSeed)
	assert.Equal(t, ai.LevelHard, cfg.AILevel())
	assert.Equal(t, 0.5, cfg.AITuning().Bluff)
	assert.Equal(t, "localhost:9000", cfg.ListenAddr())

	// Untouched settings keep their defaults.
	assert.Equal(t, "rank", cfg.Game.HandSort)
	assert.Equal(t, ai.DefaultConfig().MidGameBestPlay, cfg.AITuning().MidGameBestPlay)
	assert.Equal(t, 600, cfg.Server.AIStepDelayMS)
	assert.NotEmpty(t, cfg.Stats.Path)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, `game { tutorial_seed = `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.AI.Level = "brutal"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.AI.Bluff = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.AI.LateGameColumns = cfg.AI.MidGameColumns
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Game.HandSort = "color"
	assert.Error(t, cfg.Validate())
}
