package ingest

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/lexord"
	"github.com/kailas-cloud/lexord/internal/domain"
	dombatch "github.com/kailas-cloud/lexord/internal/domain/batch"
	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	"github.com/kailas-cloud/lexord/internal/domain/corpus/field"
	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
)

// MaxBatchSize is the maximum number of items per bulk request.
const MaxBatchSize = 100

// Service handles bulk document ingestion with per-item error reporting.
type Service struct {
	docs         BulkUpserter
	waiter       IndexWaiter
	corpora      CorpusReader
	maxBatchSize int
}

// New creates an ingest service.
func New(docs BulkUpserter, waiter IndexWaiter, corpora CorpusReader) *Service {
	return &Service{docs: docs, waiter: waiter, corpora: corpora, maxBatchSize: MaxBatchSize}
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// Bulk encodes and stores documents, collecting a result per item instead
// of failing fast. Items that reach storage share the batch's fate: the
// pipelined write either applies or errors as a unit.
func (s *Service) Bulk(ctx context.Context, corpusName string, items []domdoc.Document) []dombatch.Result {
	results := make([]dombatch.Result, len(items))

	if len(items) > s.maxBatchSize {
		for i, item := range items {
			results[i] = dombatch.NewError(
				item.ID(),
				fmt.Errorf("batch size exceeds %d: %w", s.maxBatchSize, domain.ErrValidation),
			)
		}
		return results
	}

	c, err := s.corpora.Get(ctx, corpusName)
	if err != nil {
		for i, item := range items {
			results[i] = dombatch.NewError(item.ID(), fmt.Errorf("get corpus: %w", err))
		}
		return results
	}

	codec, err := lexord.New(c.Codec().Width, c.Codec().Min, c.Codec().Max)
	if err != nil {
		for i, item := range items {
			results[i] = dombatch.NewError(item.ID(), fmt.Errorf("corpus codec: %w", err))
		}
		return results
	}

	// Validate and encode all items; collect valid ones for the bulk write.
	valid := make([]domdoc.Encoded, 0, len(items))
	validIdx := make([]int, 0, len(items))

	for i := range items {
		enc, err := encodeDocument(c, codec, &items[i])
		if err != nil {
			results[i] = dombatch.NewError(items[i].ID(), err)
			continue
		}
		valid = append(valid, enc)
		validIdx = append(validIdx, i)
	}

	if len(valid) == 0 {
		return results
	}

	if err := s.docs.BulkUpsert(ctx, corpusName, valid); err != nil {
		for _, i := range validIdx {
			results[i] = dombatch.NewError(items[i].ID(), fmt.Errorf("bulk upsert: %w", err))
		}
		return results
	}

	for _, i := range validIdx {
		results[i] = dombatch.NewOK(items[i].ID())
	}
	return results
}

// WaitIndexed blocks until the corpus index reports at least want documents
// or the timeout expires.
func (s *Service) WaitIndexed(ctx context.Context, corpusName string, want int64, timeout time.Duration) error {
	if err := s.waiter.WaitForIndexed(ctx, corpusName, want, timeout); err != nil {
		return fmt.Errorf("wait indexed: %w", err)
	}
	return nil
}

// Count returns the number of indexed documents in a corpus.
func (s *Service) Count(ctx context.Context, corpusName string) (int64, error) {
	n, err := s.waiter.Count(ctx, corpusName)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// encodeDocument validates a document against the corpus schema and renders
// every value into its order-comparable string form. Keywords pass through
// raw, integers go through the corpus codec (plus a raw mirror copy when
// enabled), time fields use the fixed-width ISO-8601 encodings.
func encodeDocument(c domcorp.Corpus, codec lexord.Codec, doc *domdoc.Document) (domdoc.Encoded, error) {
	fields := make(map[string]string, doc.FieldCount())
	lex := make(map[string]string)

	for name, v := range doc.Keywords() {
		f, ok := c.FieldByName(name)
		if !ok {
			return domdoc.Encoded{}, fmt.Errorf("field %q: %w", name, domain.ErrUnknownField)
		}
		if f.FieldKind() != field.Keyword {
			return domdoc.Encoded{}, fmt.Errorf("field %q is %s, not keyword: %w", name, f.FieldKind(), domain.ErrValidation)
		}
		fields[name] = v
	}

	for name, v := range doc.Integers() {
		f, ok := c.FieldByName(name)
		if !ok {
			return domdoc.Encoded{}, fmt.Errorf("field %q: %w", name, domain.ErrUnknownField)
		}
		if f.FieldKind() != field.Integer {
			return domdoc.Encoded{}, fmt.Errorf("field %q is %s, not integer: %w", name, f.FieldKind(), domain.ErrValidation)
		}
		enc, err := codec.Encode(v)
		if err != nil {
			return domdoc.Encoded{}, fmt.Errorf("field %q: %w", name, err)
		}
		fields[name] = enc
		lex[name] = enc
		if c.NumericMirror() {
			fields[domcorp.MirrorName(name)] = strconv.FormatInt(v, 10)
		}
	}

	for name, v := range doc.Times() {
		f, ok := c.FieldByName(name)
		if !ok {
			return domdoc.Encoded{}, fmt.Errorf("field %q: %w", name, domain.ErrUnknownField)
		}
		var enc string
		var err error
		switch f.FieldKind() {
		case field.Timestamp:
			enc, err = lexord.EncodeTime(v)
		case field.Date:
			enc, err = lexord.EncodeDate(v)
		default:
			return domdoc.Encoded{}, fmt.Errorf("field %q is %s, not a time field: %w", name, f.FieldKind(), domain.ErrValidation)
		}
		if err != nil {
			return domdoc.Encoded{}, fmt.Errorf("field %q: %w", name, err)
		}
		fields[name] = enc
		lex[name] = enc
	}

	return domdoc.Encoded{ID: doc.ID(), Fields: fields, Lex: lex}, nil
}
