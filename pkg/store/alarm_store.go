// Package store persists alarms, stats and custom sounds as JSON files.
// The CLI and the daemon share these files, so writes go through a
// cross-process file lock and the daemon can watch for outside edits.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/flock"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("store: not found")

// AlarmStore keeps the ordered alarm collection in a JSON file and
// serves reads from an in-memory copy.
type AlarmStore struct {
	path string
	flk  *flock.Flock

	mu      sync.RWMutex
	alarms  []models.Alarm
	loaded  bool
	watcher *fsnotify.Watcher
}

// NewAlarmStore opens (or prepares to create) the alarm file at path.
func NewAlarmStore(path string) (*AlarmStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &AlarmStore{
		path: path,
		flk:  flock.New(path + ".lock"),
	}, nil
}

// LoadAll returns a copy of every stored alarm in stored order. A
// missing or empty file is a valid empty collection.
func (s *AlarmStore) LoadAll() ([]models.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		if err := s.reloadLocked(); err != nil {
			return nil, err
		}
	}
	out := make([]models.Alarm, len(s.alarms))
	copy(out, s.alarms)
	return out, nil
}

// Get returns the alarm with the given id.
func (s *AlarmStore) Get(id string) (models.Alarm, error) {
	alarms, err := s.LoadAll()
	if err != nil {
		return models.Alarm{}, err
	}
	for _, a := range alarms {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Alarm{}, fmt.Errorf("alarm %q: %w", id, ErrNotFound)
}

// Save upserts the alarm by id. New alarms append at the end, keeping
// stored order stable for the monitor's first-match scan.
func (s *AlarmStore) Save(alarm models.Alarm) error {
	if err := alarm.Validate(); err != nil {
		return fmt.Errorf("invalid alarm: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// One flock span covers the read-modify-write so a concurrent
	// process cannot slip a write in between.
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", s.path, err)
	}
	defer func() { _ = s.flk.Unlock() }()
	if err := s.readFileLocked(); err != nil {
		return err
	}
	replaced := false
	for i, a := range s.alarms {
		if a.ID == alarm.ID {
			s.alarms[i] = alarm
			replaced = true
			break
		}
	}
	if !replaced {
		s.alarms = append(s.alarms, alarm)
	}
	return writeJSONFile(s.path, s.alarms)
}

// Delete removes the alarm with the given id.
func (s *AlarmStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", s.path, err)
	}
	defer func() { _ = s.flk.Unlock() }()
	if err := s.readFileLocked(); err != nil {
		return err
	}
	for i, a := range s.alarms {
		if a.ID == id {
			s.alarms = append(s.alarms[:i], s.alarms[i+1:]...)
			return writeJSONFile(s.path, s.alarms)
		}
	}
	return fmt.Errorf("alarm %q: %w", id, ErrNotFound)
}

// Reload discards the in-memory copy and re-reads the file.
func (s *AlarmStore) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

// Watch re-reads the alarm file whenever another process rewrites it
// and then invokes onChange. It returns once the watcher is armed;
// events are handled on a background goroutine until Close.
func (s *AlarmStore) Watch(onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch alarms: %w", err)
	}
	// Watch the directory: saves replace the file via rename, which
	// would silently drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch alarms: %w", err)
	}
	s.mu.Lock()
	s.watcher = watcher
	s.mu.Unlock()

	base := filepath.Base(s.path)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if err := s.Reload(); err == nil && onChange != nil {
					onChange()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}

// Close stops the file watcher if one is running.
func (s *AlarmStore) Close() error {
	s.mu.Lock()
	watcher := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if watcher != nil {
		return watcher.Close()
	}
	return nil
}

func (s *AlarmStore) reloadLocked() error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", s.path, err)
	}
	defer func() { _ = s.flk.Unlock() }()
	return s.readFileLocked()
}

// readFileLocked reads the alarm file into memory. Callers hold both
// the mutex and the flock.
func (s *AlarmStore) readFileLocked() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.alarms = nil
			s.loaded = true
			return nil
		}
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	var alarms []models.Alarm
	if len(data) > 0 {
		if err := json.Unmarshal(data, &alarms); err != nil {
			return fmt.Errorf("parse %s: %w", s.path, err)
		}
	}
	s.alarms = alarms
	s.loaded = true
	return nil
}

// writeJSONFile marshals v and replaces path atomically via a temp file.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
