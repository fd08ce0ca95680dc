package query

import (
	"context"
	"testing"

	"github.com/kailas-cloud/lexord/internal/db"
)

const testPrefix = "lexord:"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	lexRangeScanFn func(ctx context.Context, key string, r db.LexRange, limit int) ([]string, error)
	lexCardFn      func(ctx context.Context, key string) (int64, error)
	searchKeysFn   func(ctx context.Context, q *db.SearchQuery) ([]string, int64, error)
}

func (m *mockStore) LexRangeScan(ctx context.Context, key string, r db.LexRange, limit int) ([]string, error) {
	if m.lexRangeScanFn != nil {
		return m.lexRangeScanFn(ctx, key, r, limit)
	}
	return nil, nil
}

func (m *mockStore) LexCard(ctx context.Context, key string) (int64, error) {
	if m.lexCardFn != nil {
		return m.lexCardFn(ctx, key)
	}
	return 0, nil
}

func (m *mockStore) SearchKeys(ctx context.Context, q *db.SearchQuery) ([]string, int64, error) {
	if m.searchKeysFn != nil {
		return m.searchKeysFn(ctx, q)
	}
	return nil, 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, testPrefix)
	return repo, ms
}
