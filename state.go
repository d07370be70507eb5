package newswatch

import (
	"context"
	"sort"
)

// State records which items have already been delivered to which recipients.
// It is the sole source of truth for exactly-once delivery across runs.
// Sets only grow; there is no pruning for the lifetime of the store.
type State struct {
	notified map[string]map[string]struct{}
}

// NewState returns an empty State.
func NewState() *State {
	return &State{notified: make(map[string]map[string]struct{})}
}

// IsNotified reports whether the item URL has already been delivered to the
// recipient.
func (s *State) IsNotified(recipient, url string) bool {
	_, ok := s.notified[recipient][url]
	return ok
}

// MarkNotified records a completed delivery. Callers must only mark an item
// after its entire delivery sequence has succeeded.
func (s *State) MarkNotified(recipient, url string) {
	set, ok := s.notified[recipient]
	if !ok {
		set = make(map[string]struct{})
		s.notified[recipient] = set
	}
	set[url] = struct{}{}
}

// Recipients returns the recipient keys present in the state, sorted.
func (s *State) Recipients() []string {
	keys := make([]string, 0, len(s.notified))
	for k := range s.notified {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// URLs returns the notified item URLs for a recipient, sorted.
func (s *State) URLs(recipient string) []string {
	set := s.notified[recipient]
	urls := make([]string, 0, len(set))
	for u := range set {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// StateStore persists notification state between runs.
// The state is loaded once at run start and saved once at run end.
type StateStore interface {
	// Load reads the persisted state. A missing store yields an empty state,
	// not an error.
	Load(ctx context.Context) (*State, error)

	// Save atomically replaces the persisted state.
	Save(ctx context.Context, state *State) error
}
