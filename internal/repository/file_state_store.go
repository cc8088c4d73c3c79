package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"ChipTick/internal/domain/models"
	drepo "ChipTick/internal/domain/repository"
)

// FileStateStore persists the private simulation state as JSON on disk,
// separate from the public history.
type FileStateStore struct {
	path string
}

func NewFileStateStore(path string) drepo.StateStore {
	return &FileStateStore{path: path}
}

// Load reads the state, returning a zero state when the file is missing.
func (s *FileStateStore) Load() (*models.SimState, error) {
	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &models.SimState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state %s: %w", s.path, err)
	}

	var st models.SimState
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("parse state %s: %w", s.path, err)
	}
	if st.BearLeft < 0 {
		return nil, fmt.Errorf("parse state %s: bear_left is negative", s.path)
	}
	if cd, ok := st.ShockCountdown(); ok && cd < 0 {
		return nil, fmt.Errorf("parse state %s: next_shock_in is negative", s.path)
	}
	return &st, nil
}

// Save writes the state atomically.
func (s *FileStateStore) Save(st *models.SimState) error {
	return writeJSONAtomic(s.path, st)
}
