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
	"github.com/google/uuid"

	"github.com/Tejas-00/wake-up-quests-alarm/pkg/models"
)

// SoundStore merges the built-in sleep sound library with custom
// sounds persisted in a JSON file.
type SoundStore struct {
	path string
	flk  *flock.Flock
	mu   sync.Mutex
}

// NewSoundStore opens the custom-sounds file at path.
func NewSoundStore(path string) (*SoundStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &SoundStore{
		path: path,
		flk:  flock.New(path + ".lock"),
	}, nil
}

// Sounds returns the default library followed by all custom sounds.
// A failure to read the custom file degrades to defaults only.
func (s *SoundStore) Sounds() ([]models.SleepSound, error) {
	custom, err := s.loadCustom()
	if err != nil {
		return models.DefaultSounds(), err
	}
	return append(models.DefaultSounds(), custom...), nil
}

// Find looks a sound up by id across defaults and custom entries.
func (s *SoundStore) Find(id string) (models.SleepSound, error) {
	sounds, err := s.Sounds()
	if err != nil {
		return models.SleepSound{}, err
	}
	for _, snd := range sounds {
		if snd.ID == id {
			return snd, nil
		}
	}
	return models.SleepSound{}, fmt.Errorf("sound %q: %w", id, ErrNotFound)
}

// SaveCustom adds a custom sound and returns it with a fresh id.
func (s *SoundStore) SaveCustom(name, source string) (models.SleepSound, error) {
	sound := models.SleepSound{
		ID:       uuid.New().String(),
		Name:     name,
		Source:   source,
		IsCustom: true,
	}
	if err := models.ValidateStruct(&sound); err != nil {
		return models.SleepSound{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flk.Lock(); err != nil {
		return models.SleepSound{}, fmt.Errorf("lock %s: %w", s.path, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	custom, err := s.readCustomLocked()
	if err != nil {
		return models.SleepSound{}, err
	}
	custom = append(custom, sound)
	if err := writeJSONFile(s.path, custom); err != nil {
		return models.SleepSound{}, err
	}
	return sound, nil
}

// DeleteCustom removes a custom sound by id. Built-in sounds cannot be
// deleted.
func (s *SoundStore) DeleteCustom(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", s.path, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	custom, err := s.readCustomLocked()
	if err != nil {
		return err
	}
	for i, snd := range custom {
		if snd.ID == id {
			custom = append(custom[:i], custom[i+1:]...)
			return writeJSONFile(s.path, custom)
		}
	}
	return fmt.Errorf("sound %q: %w", id, ErrNotFound)
}

func (s *SoundStore) loadCustom() ([]models.SleepSound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flk.RLock(); err != nil {
		return nil, fmt.Errorf("lock %s: %w", s.path, err)
	}
	defer func() { _ = s.flk.Unlock() }()
	return s.readCustomLocked()
}

func (s *SoundStore) readCustomLocked() ([]models.SleepSound, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	var custom []models.SleepSound
	if len(data) > 0 {
		if err := json.Unmarshal(data, &custom); err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.path, err)
		}
	}
	return custom, nil
}

// SoundPath resolves a sound's source file within the sounds directory.
func SoundPath(soundsDir string, sound models.SleepSound) string {
	return filepath.Join(soundsDir, sound.Source)
}
