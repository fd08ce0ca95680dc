package document

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/lexord/internal/db"
	"github.com/kailas-cloud/lexord/internal/domain"
	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
)

// store is the consumer interface for documents (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	LexAddMulti(ctx context.Context, items []db.LexAddItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	IndexDocCount(ctx context.Context, name string) (int64, error)
}

// member builds the composite oracle entry for one encodable field:
// "<encoded>|<id>". IDs never contain '|', so members stay unique per
// document while sorting by the encoded prefix.
func member(encoded, id string) string {
	return encoded + "|" + id
}

// Repo implements the document storage side of usecase/ingest.
type Repo struct {
	store  store
	prefix string
}

// New creates a document repository. prefix namespaces every key the
// repository touches, e.g. "lexord:".
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// BulkUpsert writes a batch of encoded documents: one pipelined HSET round
// per batch, then one pipelined ZADD round for the oracle sorted sets.
// Any pipeline error fails the whole batch.
func (r *Repo) BulkUpsert(ctx context.Context, corpusName string, docs []domdoc.Encoded) error {
	if len(docs) == 0 {
		return nil
	}

	hashItems := make([]db.HashSetItem, 0, len(docs))
	lexMembers := make(map[string][]string)
	for _, d := range docs {
		hashItems = append(hashItems, db.HashSetItem{
			Key:    r.docKey(corpusName, d.ID),
			Fields: d.Fields,
		})
		for field, encoded := range d.Lex {
			key := r.lexKey(corpusName, field)
			lexMembers[key] = append(lexMembers[key], member(encoded, d.ID))
		}
	}

	if err := r.store.HSetMulti(ctx, hashItems); err != nil {
		return fmt.Errorf("hset batch %s: %w", corpusName, err)
	}

	lexItems := make([]db.LexAddItem, 0, len(lexMembers))
	for key, members := range lexMembers {
		lexItems = append(lexItems, db.LexAddItem{Key: key, Members: members})
	}
	if err := r.store.LexAddMulti(ctx, lexItems); err != nil {
		return fmt.Errorf("zadd batch %s: %w", corpusName, err)
	}

	return nil
}

// Get returns the stored hash of a document. Values are as written:
// encoded strings plus raw numeric mirrors. Decoding back to domain
// values is the caller's job since it needs the corpus schema.
func (r *Repo) Get(ctx context.Context, corpusName, id string) (map[string]string, error) {
	key := r.docKey(corpusName, id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return nil, domain.ErrDocumentNotFound
	}
	return m, nil
}

// Count returns the number of indexed documents in a corpus.
func (r *Repo) Count(ctx context.Context, corpusName string) (int64, error) {
	n, err := r.store.IndexDocCount(ctx, r.indexName(corpusName))
	if err != nil {
		return 0, fmt.Errorf("doc count %s: %w", corpusName, err)
	}
	return n, nil
}

// WaitForIndexed polls the index document count until it reaches want or
// the timeout expires. FT indexing is asynchronous, so a loader calls this
// after BulkUpsert before reading its own writes through the index.
func (r *Repo) WaitForIndexed(ctx context.Context, corpusName string, want int64, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	idxName := r.indexName(corpusName)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for %d docs in %s: %w", want, corpusName, ctx.Err())
		case <-ticker.C:
			n, err := r.store.IndexDocCount(ctx, idxName)
			if err != nil {
				continue // engine may still be building the index
			}
			if n >= want {
				return nil
			}
		}
	}
}

// Redis key patterns: lexord:{corpus}:{id}, lexord:{corpus}:idx, lexord:{corpus}:lex:{field}

func (r *Repo) docKey(corpus, id string) string {
	return fmt.Sprintf("%s%s:%s", r.prefix, corpus, id)
}

func (r *Repo) indexName(corpus string) string {
	return fmt.Sprintf("%s%s:idx", r.prefix, corpus)
}

func (r *Repo) lexKey(corpus, field string) string {
	return fmt.Sprintf("%s%s:lex:%s", r.prefix, corpus, field)
}
