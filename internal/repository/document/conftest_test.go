package document

import (
	"context"
	"testing"

	"github.com/kailas-cloud/lexord/internal/db"
	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
)

const testPrefix = "lexord:"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetMultiFn     func(ctx context.Context, items []db.HashSetItem) error
	lexAddMultiFn   func(ctx context.Context, items []db.LexAddItem) error
	hgetAllFn       func(ctx context.Context, key string) (map[string]string, error)
	indexDocCountFn func(ctx context.Context, name string) (int64, error)
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) LexAddMulti(ctx context.Context, items []db.LexAddItem) error {
	if m.lexAddMultiFn != nil {
		return m.lexAddMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) IndexDocCount(ctx context.Context, name string) (int64, error) {
	if m.indexDocCountFn != nil {
		return m.indexDocCountFn(ctx, name)
	}
	return 0, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, testPrefix)
	return repo, ms
}

func testDocs() []domdoc.Encoded {
	return []domdoc.Encoded{
		{
			ID: "a",
			Fields: map[string]string{
				"category":  "tools",
				"price":     "2147583648",
				"price_num": "100000",
			},
			Lex: map[string]string{"price": "2147583648"},
		},
		{
			ID: "b",
			Fields: map[string]string{
				"category":  "tools",
				"price":     "2147583748",
				"price_num": "100100",
			},
			Lex: map[string]string{"price": "2147583748"},
		},
	}
}
