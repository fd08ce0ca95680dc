package verify

import (
	"context"

	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
	domver "github.com/kailas-cloud/lexord/internal/domain/verification"
)

// Codec is the fixed-width integer encoding under verification.
type Codec interface {
	Encode(v int64) (string, error)
	Decode(s string) (int64, error)
	Width() int
	Min() int64
	Max() int64
	Contains(v int64) bool
}

// CodecFactory builds the codec for a corpus's encoding parameters.
type CodecFactory func(width int, min, max int64) (Codec, error)

// CorpusReader loads corpus metadata.
type CorpusReader interface {
	Get(ctx context.Context, name string) (domcorp.Corpus, error)
}

// OracleReader reads the oracle projections the checks compare: the lex
// sorted sets, the numeric mirror index and engine-side sorting.
type OracleReader interface {
	LexRangeIDs(ctx context.Context, corpus, field, minEnc, maxEnc string, limit int) ([]string, error)
	LexMembers(ctx context.Context, corpus, field string) ([]domdoc.Member, error)
	NumericRangeIDs(ctx context.Context, corpus, field string, min, max int64, limit int) ([]string, error)
	SortedIDs(ctx context.Context, corpus, field string, desc bool, limit int) ([]string, error)
}

// ReportCache persists the latest report per corpus.
type ReportCache interface {
	Save(ctx context.Context, corpus string, rep domver.Report) error
	Last(ctx context.Context, corpus string) (domver.Report, error)
}
