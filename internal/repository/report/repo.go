package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/kailas-cloud/lexord/internal/db"
	"github.com/kailas-cloud/lexord/internal/domain"
	domver "github.com/kailas-cloud/lexord/internal/domain/verification"
)

// store is the consumer interface for report persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repo caches the latest verification report per corpus in the KV store.
type Repo struct {
	store  store
	prefix string
	ttl    time.Duration
}

// New creates a report repository. prefix namespaces every key the
// repository touches, e.g. "lexord:"; ttl bounds how long a cached
// report stays readable.
func New(s store, prefix string, ttl time.Duration) *Repo {
	return &Repo{store: s, prefix: prefix, ttl: ttl}
}

// Save stores rep as the corpus's latest report, replacing any previous one.
func (r *Repo) Save(ctx context.Context, corpus string, rep domver.Report) error {
	data, err := json.Marshal(reportToRow(rep))
	if err != nil {
		return fmt.Errorf("marshal report %s: %w", corpus, err)
	}
	if err := r.store.SetWithTTL(ctx, r.key(corpus), data, r.ttl); err != nil {
		return fmt.Errorf("store report %s: %w", corpus, err)
	}
	return nil
}

// Last returns the corpus's cached report, or domain.ErrReportNotFound
// when none is cached or the cache entry expired.
func (r *Repo) Last(ctx context.Context, corpus string) (domver.Report, error) {
	data, err := r.store.Get(ctx, r.key(corpus))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domver.Report{}, domain.ErrReportNotFound
		}
		return domver.Report{}, fmt.Errorf("get report %s: %w", corpus, err)
	}

	var row reportRow
	if err := json.Unmarshal(data, &row); err != nil {
		return domver.Report{}, fmt.Errorf("unmarshal report %s: %w", corpus, err)
	}
	return row.toDomain(), nil
}

// Redis key patterns: lexord:report:{corpus}

func (r *Repo) key(corpus string) string {
	return fmt.Sprintf("%sreport:%s", r.prefix, corpus)
}
