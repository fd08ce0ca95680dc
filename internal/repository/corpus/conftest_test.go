package corpus

import (
	"context"
	"testing"

	"github.com/kailas-cloud/lexord/internal/db"
	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	"github.com/kailas-cloud/lexord/internal/domain/corpus/field"
)

const testPrefix = "lexord:"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn         func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	delFn          func(ctx context.Context, keys ...string) error
	existsFn       func(ctx context.Context, key string) (bool, error)
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
	createIndexFn  func(ctx context.Context, def *db.IndexDefinition) error
	dropIndexFn    func(ctx context.Context, name string, dropDocs bool) error
	indexExistsFn  func(ctx context.Context, name string) (bool, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return nil, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) DropIndex(ctx context.Context, name string, dropDocs bool) error {
	if m.dropIndexFn != nil {
		return m.dropIndexFn(ctx, name, dropDocs)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, testPrefix)
	return repo, ms
}

func testCorpus(t *testing.T) domcorp.Corpus {
	t.Helper()
	return domcorp.Reconstruct(
		"prices",
		[]field.Field{
			field.Reconstruct("category", field.Keyword),
			field.Reconstruct("price", field.Integer),
		},
		domcorp.CodecParams{Width: 10, Min: -2147483648, Max: 2147483647},
		true,
		1700000000000,
	)
}

// testCorpusHash mirrors what corpusToHash produces for testCorpus.
func testCorpusHash() map[string]string {
	return map[string]string{
		"name":           "prices",
		"fields_json":    `[{"name":"category","kind":"keyword"},{"name":"price","kind":"integer"}]`,
		"codec_width":    "10",
		"codec_min":      "-2147483648",
		"codec_max":      "2147483647",
		"numeric_mirror": "true",
		"created_at":     "1700000000000",
	}
}
