// storage/progress_json.go

package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"streethunt/models"
)

// JSONProgressStore keeps the whole progress state in one JSON file:
// player code -> question id (string) -> solved record. The mutex covers
// each load-modify-save cycle; writes go through a tmp file + rename so a
// crash mid-write cannot corrupt the store.
type JSONProgressStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONProgressStore(path string) *JSONProgressStore {
	return &JSONProgressStore{path: path}
}

func (s *JSONProgressStore) Load() (models.ProgressState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *JSONProgressStore) Save(state models.ProgressState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(state)
}

func (s *JSONProgressStore) PlayerProgress(code string, set models.QuestionSet) (models.PlayerProgress, error) {
	if code == "" {
		return models.PlayerProgress{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadLocked()
	if err != nil {
		return nil, err
	}

	progress := state[code]
	if progress == nil {
		return models.PlayerProgress{}, nil
	}

	// Write back only when the sheet data actually moved, so repeated page
	// views do not rewrite the file.
	if reconcile(progress, set) {
		state[code] = progress
		if err := s.saveLocked(state); err != nil {
			return nil, err
		}
	}

	return progress, nil
}

func (s *JSONProgressStore) SetSolved(code string, questionID int, rec models.SolvedRecord) error {
	if code == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.loadLocked()
	if err != nil {
		return err
	}

	progress := state[code]
	if progress == nil {
		progress = models.PlayerProgress{}
	}
	progress[strconv.Itoa(questionID)] = rec
	state[code] = progress

	return s.saveLocked(state)
}

func (s *JSONProgressStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(models.ProgressState{})
}

// loadLocked treats a missing or corrupt file as an empty store: losing
// progress beats refusing to serve the page.
func (s *JSONProgressStore) loadLocked() (models.ProgressState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.ProgressState{}, nil
		}
		return nil, err
	}

	var state models.ProgressState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.ProgressState{}, nil
	}
	if state == nil {
		state = models.ProgressState{}
	}
	return state, nil
}

func (s *JSONProgressStore) saveLocked(state models.ProgressState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
