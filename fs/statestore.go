// Package fs provides a file-based implementation of newswatch.StateStore.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mkowalik/newswatch"
)

// Ensure StateStore implements newswatch.StateStore at compile time.
var _ newswatch.StateStore = (*StateStore)(nil)

// StateStore persists notification state as a single JSON file.
// The whole file is read at run start and atomically replaced at run end.
type StateStore struct {
	path string
}

// NewStateStore creates a StateStore backed by the file at path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// stateFile is the on-disk schema: recipient key to sorted notified URLs.
type stateFile struct {
	Notified map[string][]string `json:"notified"`
}

// Load reads the state file. A missing file yields an empty state.
func (s *StateStore) Load(_ context.Context) (*newswatch.State, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return newswatch.NewState(), nil
	}
	if err != nil {
		return nil, err
	}

	var file stateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, newswatch.Errorf(newswatch.EINTERNAL, "corrupt state file %s: %v", s.path, err)
	}

	state := newswatch.NewState()
	for recipient, urls := range file.Notified {
		for _, u := range urls {
			state.MarkNotified(recipient, u)
		}
	}
	return state, nil
}

// Save atomically replaces the state file: the new state is written to a
// temporary file in the same directory, then renamed over the old one.
func (s *StateStore) Save(_ context.Context, state *newswatch.State) error {
	file := stateFile{Notified: make(map[string][]string)}
	for _, recipient := range state.Recipients() {
		file.Notified[recipient] = state.URLs(recipient)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
