package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

// StatStore appends alarm occurrence records to a JSON file.
type StatStore struct {
	path string
	flk  *flock.Flock
	mu   sync.Mutex
}

// NewStatStore opens the stat file at path.
func NewStatStore(path string) (*StatStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &StatStore{
		path: path,
		flk:  flock.New(path + ".lock"),
	}, nil
}

// Append adds one record to the end of the stat log.
func (s *StatStore) Append(stat models.AlarmStat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", s.path, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	stats, err := s.readLocked()
	if err != nil {
		return err
	}
	stats = append(stats, stat)
	return writeJSONFile(s.path, stats)
}

// LoadAll returns every recorded stat in append order.
func (s *StatStore) LoadAll() ([]models.AlarmStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flk.RLock(); err != nil {
		return nil, fmt.Errorf("lock %s: %w", s.path, err)
	}
	defer func() { _ = s.flk.Unlock() }()
	return s.readLocked()
}

func (s *StatStore) readLocked() ([]models.AlarmStat, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var stats []models.AlarmStat
	if len(data) > 0 {
		if err := json.Unmarshal(data, &stats); err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.path, err)
		}
	}
	return stats, nil
}
