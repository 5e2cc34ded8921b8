package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store keeps the UI preferences in state.json under the state directory.
// It remembers the last state it read or wrote so repeated saves of the
// same preferences do not touch the disk.
type Store struct {
	path  string
	last  State
	known bool
}

func NewStore(stateDir string) *Store {
	return &Store{path: filepath.Join(stateDir, "state.json")}
}

func (s *Store) Path() string { return s.path }

// Load returns the saved preferences, or the defaults when nothing was
// saved yet. A files directory that has since disappeared is dropped so
// the files pane opens in the start directory instead.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read session state: %w", err)
	}

	state := Default()
	if err := json.Unmarshal(data, &state); err != nil {
		return Default(), fmt.Errorf("decode %s: %w", s.path, err)
	}
	s.last, s.known = state, true

	if state.FilesDir != "" {
		if info, err := os.Stat(state.FilesDir); err != nil || !info.IsDir() {
			state.FilesDir = ""
		}
	}
	return state, nil
}

// Save replaces state.json. The file is written beside the old one and
// renamed over it, so a crash never leaves half a file.
func (s *Store) Save(state State) error {
	if s.known && state == s.last {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	s.last, s.known = state, true
	return nil
}
