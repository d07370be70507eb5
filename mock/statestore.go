package mock

import (
	"context"

	"github.com/mkowalik/newswatch"
)

var _ newswatch.StateStore = (*StateStore)(nil)

// StateStore is a mock implementation of newswatch.StateStore.
type StateStore struct {
	LoadFn func(ctx context.Context) (*newswatch.State, error)
	SaveFn func(ctx context.Context, state *newswatch.State) error
}

func (s *StateStore) Load(ctx context.Context) (*newswatch.State, error) {
	return s.LoadFn(ctx)
}

func (s *StateStore) Save(ctx context.Context, state *newswatch.State) error {
	return s.SaveFn(ctx, state)
}
