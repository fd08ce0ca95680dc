package ingest

import (
	"context"
	"time"

	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
)

// BulkUpserter writes encoded documents to storage.
type BulkUpserter interface {
	BulkUpsert(ctx context.Context, corpusName string, docs []domdoc.Encoded) error
}

// IndexWaiter blocks until the index has absorbed a write.
type IndexWaiter interface {
	WaitForIndexed(ctx context.Context, corpusName string, want int64, timeout time.Duration) error
	Count(ctx context.Context, corpusName string) (int64, error)
}

// CorpusReader reads corpora for schema lookups.
type CorpusReader interface {
	Get(ctx context.Context, name string) (domcorp.Corpus, error)
}
