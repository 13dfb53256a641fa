package db

import (
	"context"
	"sync"

	"github.com/BenjaminWie/docu-buddy/types"
)

// MockDB is an in-memory DB for tests. Unset funcs succeed; stored rankings
// are recorded in order.
type MockDB struct {
	InitializeFunc   func(ctx context.Context) error
	StoreRankingFunc func(ctx context.Context, ranking types.Ranking) error

	mu       sync.Mutex
	rankings []types.Ranking
}

func NewMockDB() *MockDB {
	return &MockDB{
		InitializeFunc: func(ctx context.Context) error {
			return nil
		},
	}
}

func (m *MockDB) Initialize(ctx context.Context) error {
	if m.InitializeFunc != nil {
		return m.InitializeFunc(ctx)
	}
	return nil
}

func (m *MockDB) StoreRanking(ctx context.Context, ranking types.Ranking) error {
	if m.StoreRankingFunc != nil {
		if err := m.StoreRankingFunc(ctx, ranking); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.rankings = append(m.rankings, ranking)
	m.mu.Unlock()
	return nil
}

// Rankings returns the rankings stored so far.
func (m *MockDB) Rankings() []types.Ranking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.Ranking(nil), m.rankings...)
}
