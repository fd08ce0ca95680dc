package report

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/lexord/internal/db"
	domver "github.com/kailas-cloud/lexord/internal/domain/verification"
)

const testPrefix = "lexord:"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, testPrefix, time.Hour), ms
}

func testReport() domver.Report {
	return domver.New(
		"prices", "price",
		42, 16,
		time.UnixMilli(1700000000000).UTC(),
		250*time.Millisecond,
		[]domver.CheckResult{
			{Name: "round_trip", Passed: true, Observed: "16/16 values round-trip", Expected: "16/16 values round-trip"},
			{Name: "oracle_lex_range", Passed: false, Observed: "11/12 intervals agree", Expected: "12/12 intervals agree", Detail: "interval [0,1]: got 2 ids, want 3"},
		},
	)
}
