package corpus

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/lexord/internal/db"
	"github.com/kailas-cloud/lexord/internal/domain"
	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
)

// store is the consumer interface for corpora (ISP).
//
//nolint:interfacebloat // corpus repo needs hash + index management operations
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string, dropDocs bool) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/corpus.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a corpus repository. prefix namespaces every key the
// repository touches, e.g. "lexord:".
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Create stores a corpus: HSET metadata then FT.CREATE index.
// On FT.CREATE failure, rolls back the HSET via DEL.
func (r *Repo) Create(ctx context.Context, c domcorp.Corpus) error {
	name := c.Name()

	metaKey := r.metaKey(name)
	exists, err := r.store.Exists(ctx, metaKey)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return domain.ErrAlreadyExists
	}

	// Prepare index definition and hash data before writes
	indexDef := buildIndex(c, r.indexName(name), r.docPrefix(name))
	hashData, err := corpusToHash(c)
	if err != nil {
		return err
	}

	// Step 1: HSET metadata
	if err := r.store.HSet(ctx, metaKey, hashData); err != nil {
		return fmt.Errorf("hset corpus %s: %w", name, err)
	}

	// FT.CREATE, rolling back the HSET on error
	if err := r.store.CreateIndex(ctx, indexDef); err != nil {
		cleanupErr := r.store.Del(ctx, metaKey)
		return errors.Join(err, cleanupErr)
	}

	return nil
}

// Get retrieves a corpus by name.
func (r *Repo) Get(ctx context.Context, name string) (domcorp.Corpus, error) {
	m, err := r.store.HGetAll(ctx, r.metaKey(name))
	if err != nil {
		return domcorp.Corpus{}, fmt.Errorf("hgetall corpus %s: %w", name, err)
	}
	if len(m) == 0 {
		return domcorp.Corpus{}, domain.ErrNotFound
	}

	return corpusFromHash(m)
}

// List returns all corpora sorted by CreatedAt.
func (r *Repo) List(ctx context.Context) ([]domcorp.Corpus, error) {
	keys, err := r.store.Scan(ctx, r.metaKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan corpora: %w", err)
	}
	if len(keys) == 0 {
		return []domcorp.Corpus{}, nil
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi corpora: %w", err)
	}

	corpora := make([]domcorp.Corpus, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		c, err := corpusFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse corpus %s: %w", keys[i], err)
		}
		corpora = append(corpora, c)
	}

	sort.Slice(corpora, func(i, j int) bool {
		return corpora[i].CreatedAt() < corpora[j].CreatedAt()
	})

	return corpora, nil
}

// Delete removes a corpus: backup metadata, DEL hash, FT.DROPINDEX DD
// (rollback HSET on error), then DEL the oracle sorted sets. A missing
// index is treated as already dropped so a half-deleted corpus can be
// cleaned up by retrying.
func (r *Repo) Delete(ctx context.Context, name string) error {
	metaKey := r.metaKey(name)

	// Backup metadata
	metaBackup, err := r.store.HGetAll(ctx, metaKey)
	if err != nil {
		return fmt.Errorf("hgetall corpus %s: %w", name, err)
	}
	if len(metaBackup) == 0 {
		return domain.ErrNotFound
	}

	c, err := corpusFromHash(metaBackup)
	if err != nil {
		return fmt.Errorf("parse corpus %s: %w", name, err)
	}

	// Step 1: DEL metadata
	if err := r.store.Del(ctx, metaKey); err != nil {
		return fmt.Errorf("del corpus %s: %w", name, err)
	}

	// FT.DROPINDEX DD, rolling back the HSET on error
	if err := r.store.DropIndex(ctx, r.indexName(name), true); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		cleanupErr := r.store.HSet(ctx, metaKey, metaBackup)
		return errors.Join(err, cleanupErr)
	}

	// DD drops the document hashes but not the oracle sorted sets.
	lexKeys := make([]string, 0, len(c.Fields()))
	for _, f := range c.Fields() {
		if f.Encodable() {
			lexKeys = append(lexKeys, r.lexKey(name, f.Name()))
		}
	}
	if err := r.store.Del(ctx, lexKeys...); err != nil {
		return fmt.Errorf("del oracle sets for %s: %w", name, err)
	}

	return nil
}

// Redis key patterns: lexord:corpus:{name}, lexord:{name}:idx, lexord:{name}:, lexord:{name}:lex:{field}

func (r *Repo) metaKey(name string) string {
	return fmt.Sprintf("%scorpus:%s", r.prefix, name)
}

func (r *Repo) indexName(name string) string {
	return fmt.Sprintf("%s%s:idx", r.prefix, name)
}

func (r *Repo) docPrefix(name string) string {
	return fmt.Sprintf("%s%s:", r.prefix, name)
}

func (r *Repo) lexKey(corpus, field string) string {
	return fmt.Sprintf("%s%s:lex:%s", r.prefix, corpus, field)
}
