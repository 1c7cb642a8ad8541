package statistics

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.RecordWin(LevelEasy))
	require.NoError(t, store.RecordWin(LevelEasy))
	require.NoError(t, store.RecordLoss(LevelEasy))
	require.NoError(t, store.RecordWin(LevelHard))

	easy, err := store.Get(LevelEasy)
	require.NoError(t, err)
	assert.Equal(t, 2, easy.Wins)
	assert.Equal(t, 1, easy.Losses)
	assert.Equal(t, 3, easy.TotalGames())
	assert.InDelta(t, 66.7, easy.WinRate(), 0.1)

	hard, err := store.Get(LevelHard)
	require.NoError(t, err)
	assert.Equal(t, 1, hard.Wins)

	medium, err := store.Get(LevelMedium)
	require.NoError(t, err)
	assert.Zero(t, medium.TotalGames())
	assert.Zero(t, medium.WinRate())

	require.NoError(t, store.Reset())
	easy, err = store.Get(LevelEasy)
	require.NoError(t, err)
	assert.Zero(t, easy.TotalGames())
}

func TestMemoryStoreUnknownLevelFoldsToMedium(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.RecordWin(99))

	medium, err := store.Get(LevelMedium)
	require.NoError(t, err)
	assert.Equal(t, 1, medium.Wins)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	store := NewFileStore(path)

	// Reading before any write yields empty records.
	rec, err := store.Get(LevelMedium)
	require.NoError(t, err)
	assert.Zero(t, rec.TotalGames())

	require.NoError(t, store.RecordWin(LevelMedium))
	require.NoError(t, store.RecordLoss(LevelMedium))
	require.NoError(t, store.RecordLoss(LevelMedium))

	// A fresh store over the same path sees the persisted tallies.
	reopened := NewFileStore(path)
	rec, err = reopened.Get(LevelMedium)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Wins)
	assert.Equal(t, 2, rec.Losses)

	require.NoError(t, reopened.Reset())
	rec, err = reopened.Get(LevelMedium)
	require.NoError(t, err)
	assert.Zero(t, rec.TotalGames())
}

func TestFileStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "stats.json")
	store := NewFileStore(path)

	require.NoError(t, store.RecordWin(LevelEasy))

	rec, err := store.Get(LevelEasy)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Wins)
}
