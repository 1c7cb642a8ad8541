// Package statistics tracks per-difficulty win/loss records. The engine
// records a result at game over; the stats CLI command and the menu read
// them back.
package statistics

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Difficulty tiers as stored. These match the AI levels.
const (
	LevelEasy = iota
	LevelMedium
	LevelHard
	numLevels
)

// levelName maps a tier to its storage key.
func levelName(level int) string {
	switch level {
	case LevelEasy:
		return "easy"
	case LevelHard:
		return "hard"
	default:
		return "medium"
	}
}

// Record is the win/loss tally for one difficulty tier.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// TotalGames returns how many recorded games the tier has.
func (r Record) TotalGames() int {
	return r.Wins + r.Losses
}

// WinRate returns the win percentage, 0 when no games are recorded.
func (r Record) WinRate() float64 {
	total := r.TotalGames()
	if total == 0 {
		return 0
	}
	return float64(r.Wins) / float64(total) * 100
}

// Store persists win/loss records per difficulty tier.
type Store interface {
	RecordWin(level int) error
	RecordLoss(level int) error
	Get(level int) (Record, error)
	Reset() error
}

// clampLevel folds unknown tiers onto medium, mirroring how the AI
// treats unknown levels.
func clampLevel(level int) int {
	if level < LevelEasy || level >= numLevels {
		return LevelMedium
	}
	return level
}

// MemoryStore keeps records in memory; used by simulations and tests.
type MemoryStore struct {
	records [numLevels]Record
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// RecordWin increments the win tally for a tier
func (m *MemoryStore) RecordWin(level int) error {
	m.records[clampLevel(level)].Wins++
	return nil
}

// RecordLoss increments the loss tally for a tier
func (m *MemoryStore) RecordLoss(level int) error {
	m.records[clampLevel(level)].Losses++
	return nil
}

// Get returns the record for a tier
func (m *MemoryStore) Get(level int) (Record, error) {
	return m.records[clampLevel(level)], nil
}

// Reset clears all records
func (m *MemoryStore) Reset() error {
	m.records = [numLevels]Record{}
	return nil
}

// FileStore persists records as a small JSON document. Writes go through
// a temp file plus rename so a crash cannot leave a half-written file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the given path. The file is
// created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// RecordWin increments the win tally for a tier
func (f *FileStore) RecordWin(level int) error {
	return f.update(level, func(r *Record) { r.Wins++ })
}

// RecordLoss increments the loss tally for a tier
func (f *FileStore) RecordLoss(level int) error {
	return f.update(level, func(r *Record) { r.Losses++ })
}

// Get returns the record for a tier
func (f *FileStore) Get(level int) (Record, error) {
	records, err := f.load()
	if err != nil {
		return Record{}, err
	}
	return records[levelName(clampLevel(level))], nil
}

// Reset removes the backing file.
func (f *FileStore) Reset() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *FileStore) update(level int, apply func(*Record)) error {
	records, err := f.load()
	if err != nil {
		return err
	}
	rec := records[levelName(clampLevel(level))]
	apply(&rec)
	records[levelName(clampLevel(level))] = rec
	return f.save(records)
}

func (f *FileStore) load() (map[string]Record, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading statistics: %w", err)
	}

	records := map[string]Record{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing statistics: %w", err)
	}
	return records, nil
}

func (f *FileStore) save(records map[string]Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating statistics dir: %w", err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing statistics: %w", err)
	}
	return os.Rename(tmp, f.path)
}
