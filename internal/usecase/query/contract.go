package query

import (
	"context"

	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
)

// CorpusReader reads corpora for schema and codec lookups.
type CorpusReader interface {
	Get(ctx context.Context, name string) (domcorp.Corpus, error)
}

// RangeScanner reads document IDs from the lexicographic oracle. Bounds are
// encoded values; results arrive in encoding order.
type RangeScanner interface {
	LexRangeIDs(ctx context.Context, corpus, field, minEnc, maxEnc string, limit int) ([]string, error)
}
