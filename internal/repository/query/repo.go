package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/lexord/internal/db"
	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
)

// store is the consumer interface for query operations (ISP).
type store interface {
	LexRangeScan(ctx context.Context, key string, r db.LexRange, limit int) ([]string, error)
	LexCard(ctx context.Context, key string) (int64, error)
	SearchKeys(ctx context.Context, q *db.SearchQuery) ([]string, int64, error)
}

// Repo exposes the three read paths the verifier compares: the lex oracle,
// the numeric mirror and engine-side sorting.
type Repo struct {
	store  store
	prefix string
}

// New creates a query repository. prefix namespaces every key the
// repository touches, e.g. "lexord:".
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// LexRangeIDs returns the IDs of documents whose encoded field value lies
// in [minEnc, maxEnc], in encoding (= numeric) order. Bounds are encoded
// values; an empty bound is unbounded. limit <= 0 returns all matches.
func (r *Repo) LexRangeIDs(ctx context.Context, corpus, field, minEnc, maxEnc string, limit int) ([]string, error) {
	members, err := r.store.LexRangeScan(ctx, r.lexKey(corpus, field), db.LexRange{Min: minEnc, Max: maxEnc}, limit)
	if err != nil {
		return nil, fmt.Errorf("lex range %s.%s: %w", corpus, field, err)
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, splitMember(m).DocID)
	}
	return ids, nil
}

// LexMembers returns every member of a field's oracle set in lex order.
// The verifier derives its client-side ground truth from this scan.
func (r *Repo) LexMembers(ctx context.Context, corpus, field string) ([]domdoc.Member, error) {
	raw, err := r.store.LexRangeScan(ctx, r.lexKey(corpus, field), db.LexRange{}, 0)
	if err != nil {
		return nil, fmt.Errorf("lex scan %s.%s: %w", corpus, field, err)
	}

	members := make([]domdoc.Member, 0, len(raw))
	for _, m := range raw {
		members = append(members, splitMember(m))
	}
	return members, nil
}

// LexCount returns the member count of a field's oracle set.
func (r *Repo) LexCount(ctx context.Context, corpus, field string) (int64, error) {
	n, err := r.store.LexCard(ctx, r.lexKey(corpus, field))
	if err != nil {
		return 0, fmt.Errorf("lex card %s.%s: %w", corpus, field, err)
	}
	return n, nil
}

// NumericRangeIDs returns the IDs of documents whose raw mirror value lies
// in [min, max] according to the engine's NUMERIC index. Only meaningful
// for corpora created with the numeric mirror enabled.
func (r *Repo) NumericRangeIDs(ctx context.Context, corpus, field string, min, max int64, limit int) ([]string, error) {
	q := &db.SearchQuery{
		Index:   r.indexName(corpus),
		Numeric: &db.NumericFilter{Field: domcorp.MirrorName(field), Min: min, Max: max},
		Limit:   limit,
	}
	keys, _, err := r.store.SearchKeys(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("numeric range %s.%s: %w", corpus, field, err)
	}
	return r.keysToIDs(corpus, keys), nil
}

// SortedIDs returns document IDs ordered by the encoded field value as the
// engine sorts it. Byte order on encodings must equal numeric order on the
// underlying values, which is exactly what the verifier checks.
func (r *Repo) SortedIDs(ctx context.Context, corpus, field string, desc bool, limit int) ([]string, error) {
	q := &db.SearchQuery{
		Index:    r.indexName(corpus),
		SortBy:   field,
		SortDesc: desc,
		Limit:    limit,
	}
	keys, _, err := r.store.SearchKeys(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sorted scan %s.%s: %w", corpus, field, err)
	}
	return r.keysToIDs(corpus, keys), nil
}

func (r *Repo) keysToIDs(corpus string, keys []string) []string {
	prefix := fmt.Sprintf("%s%s:", r.prefix, corpus)
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids
}

// splitMember splits a composite oracle member "<encoded>|<id>" into its
// parts. A member without a separator yields an empty DocID.
func splitMember(member string) domdoc.Member {
	if i := strings.IndexByte(member, '|'); i >= 0 {
		return domdoc.Member{Encoded: member[:i], DocID: member[i+1:]}
	}
	return domdoc.Member{Encoded: member}
}

func (r *Repo) indexName(corpus string) string {
	return fmt.Sprintf("%s%s:idx", r.prefix, corpus)
}

func (r *Repo) lexKey(corpus, field string) string {
	return fmt.Sprintf("%s%s:lex:%s", r.prefix, corpus, field)
}
