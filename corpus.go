package lexord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/lexord/internal/domain"
	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
	domver "github.com/kailas-cloud/lexord/internal/domain/verification"
	verifyuc "github.com/kailas-cloud/lexord/internal/usecase/verify"
)

// loadTimeout bounds how long Load waits for the index to absorb a batch.
const loadTimeout = 30 * time.Second

// VerifyReport is the outcome of a verification run.
type VerifyReport = domver.Report

// Corpus is a generic, schema-first corpus handle backed by a Client.
// Schema is inferred from T's struct tags at construction time.
type Corpus[T any] struct {
	name   string
	client *Client
	meta   *schemaMeta
	codec  Codec
	mirror bool
}

// NewCorpus creates a typed corpus handle for the given name. T must be a
// struct with lexord tags. Schema is parsed once and cached.
func NewCorpus[T any](client *Client, name string, opts ...CorpusOption) (*Corpus[T], error) {
	meta, err := parseSchema[T]()
	if err != nil {
		return nil, fmt.Errorf("new corpus %q: %w", name, err)
	}

	cfg := corpusConfig{codec: Int32()}
	for _, o := range opts {
		o(&cfg)
	}

	return &Corpus[T]{
		name:   name,
		client: client,
		meta:   meta,
		codec:  cfg.codec,
		mirror: cfg.numericMirror,
	}, nil
}

// Name returns the corpus name.
func (cp *Corpus[T]) Name() string { return cp.name }

// Codec returns the integer encoding domain of this corpus.
func (cp *Corpus[T]) Codec() Codec { return cp.codec }

// Ensure creates the corpus and its index if missing (idempotent).
func (cp *Corpus[T]) Ensure(ctx context.Context) error {
	c, err := domcorp.New(cp.name, cp.meta.fields(), domcorp.CodecParams{
		Width: cp.codec.Width(),
		Min:   cp.codec.Min(),
		Max:   cp.codec.Max(),
	}, cp.mirror)
	if err != nil {
		return fmt.Errorf("ensure %q: %w", cp.name, err)
	}

	if err := cp.client.corpora.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("ensure %q: %w", cp.name, err)
	}
	return nil
}

// ItemError is a per-item load failure.
type ItemError struct {
	ID  string
	Err error
}

// BatchReport summarizes a Load call.
type BatchReport struct {
	Total     int
	Succeeded int
	Failed    int
	Errors    []ItemError
}

// Load flattens items, bulk-indexes them and waits until the index reports
// the loaded document count. Items that fail to encode are reported in the
// BatchReport; a storage or wait failure fails the call.
func (cp *Corpus[T]) Load(ctx context.Context, items []T) (BatchReport, error) {
	report := BatchReport{Total: len(items)}
	if len(items) == 0 {
		return report, nil
	}

	docs := make([]domdoc.Encoded, 0, len(items))
	for i := range items {
		enc, err := cp.meta.encode(&items[i], cp.codec, cp.mirror)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, ItemError{
				ID:  enc.ID,
				Err: fmt.Errorf("item %d: %w", i, err),
			})
			continue
		}
		docs = append(docs, enc)
	}
	if len(docs) == 0 {
		return report, nil
	}

	if err := cp.client.docs.BulkUpsert(ctx, cp.name, docs); err != nil {
		return report, fmt.Errorf("load %q: %w", cp.name, err)
	}
	report.Succeeded = len(docs)

	if err := cp.client.docs.WaitForIndexed(ctx, cp.name, distinctIDs(docs), loadTimeout); err != nil {
		return report, fmt.Errorf("load %q: %w", cp.name, err)
	}
	return report, nil
}

// Get retrieves a typed item by ID.
func (cp *Corpus[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	stored, err := cp.client.docs.Get(ctx, cp.name, id)
	if err != nil {
		return zero, fmt.Errorf("get %q: %w", id, err)
	}

	item, err := cp.meta.decode(id, stored, cp.codec)
	if err != nil {
		return zero, fmt.Errorf("get %q: %w", id, err)
	}
	return item.(T), nil
}

// Count returns the number of indexed documents in the corpus.
func (cp *Corpus[T]) Count(ctx context.Context) (int64, error) {
	n, err := cp.client.docs.Count(ctx, cp.name)
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", cp.name, err)
	}
	return n, nil
}

// Range returns a fluent range query builder over an integer field.
func (cp *Corpus[T]) Range(field string) *RangeBuilder[T] {
	return &RangeBuilder[T]{corpus: cp, field: field}
}

// VerifyOption tunes a verification run.
type VerifyOption func(*verifyOptions)

type verifyOptions struct {
	field   string
	samples int
	seed    int64
}

// VerifyField targets a specific integer field. Default is the corpus's
// first integer field.
func VerifyField(name string) VerifyOption {
	return func(o *verifyOptions) { o.field = name }
}

// VerifySamples sets the random draw count of the run.
func VerifySamples(n int) VerifyOption {
	return func(o *verifyOptions) { o.samples = n }
}

// VerifySeed pins the sampling seed so a run can be replayed.
func VerifySeed(seed int64) VerifyOption {
	return func(o *verifyOptions) { o.seed = seed }
}

// Verify proves the order-preservation contract of this corpus against the
// live oracle and returns the check report.
func (cp *Corpus[T]) Verify(ctx context.Context, opts ...VerifyOption) (VerifyReport, error) {
	var vo verifyOptions
	for _, o := range opts {
		o(&vo)
	}

	rep, err := cp.client.verifier.Run(ctx, cp.name, verifyuc.Options{
		Field:   vo.field,
		Samples: vo.samples,
		Seed:    vo.seed,
	})
	if err != nil {
		return VerifyReport{}, fmt.Errorf("verify %q: %w", cp.name, err)
	}
	return rep, nil
}

// LastReport returns the corpus's cached verification report.
func (cp *Corpus[T]) LastReport(ctx context.Context) (VerifyReport, error) {
	rep, err := cp.client.verifier.LastReport(ctx, cp.name)
	if err != nil {
		return VerifyReport{}, fmt.Errorf("last report %q: %w", cp.name, err)
	}
	return rep, nil
}

// Drop removes the corpus, its documents and its oracle sets.
func (cp *Corpus[T]) Drop(ctx context.Context) error {
	if err := cp.client.corpora.Delete(ctx, cp.name); err != nil {
		return fmt.Errorf("drop %q: %w", cp.name, err)
	}
	return nil
}

// distinctIDs counts unique document IDs in a batch; upserts of the same ID
// land on one index entry.
func distinctIDs(docs []domdoc.Encoded) int64 {
	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		seen[d.ID] = true
	}
	return int64(len(seen))
}
