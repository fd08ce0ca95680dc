package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/lexord"
	"github.com/kailas-cloud/lexord/internal/domain"
	"github.com/kailas-cloud/lexord/internal/domain/corpus/field"
)

// Result size limits.
const (
	// DefaultLimit applies when a query does not set one.
	DefaultLimit = 100
	// MaxLimit caps a single query's result size.
	MaxLimit = 1000
)

// Params describes one range query. Nil bounds are absent; at least one
// bound is required. Limit <= 0 selects the service default.
type Params struct {
	Field string
	Gt    *int64
	Gte   *int64
	Lt    *int64
	Lte   *int64
	Limit int
}

// Service answers numeric range queries by scanning the lexicographic
// oracle over encoded bounds.
type Service struct {
	corpora      CorpusReader
	scanner      RangeScanner
	defaultLimit int
	maxLimit     int
}

// New creates a query service.
func New(corpora CorpusReader, scanner RangeScanner) *Service {
	return &Service{
		corpora:      corpora,
		scanner:      scanner,
		defaultLimit: DefaultLimit,
		maxLimit:     MaxLimit,
	}
}

// WithLimits configures the default and maximum result sizes.
func (s *Service) WithLimits(def, max int) *Service {
	if def > 0 {
		s.defaultLimit = def
	}
	if max > 0 {
		s.maxLimit = max
	}
	return s
}

// RangeIDs returns the IDs of documents whose field value lies in the
// interval, in ascending numeric order. The interval is encoded with the
// corpus codec so the scan is a plain byte-wise range over the oracle.
// An interval that cannot select anything yields no IDs and no error.
func (s *Service) RangeIDs(ctx context.Context, corpusName string, p Params) ([]string, error) {
	c, err := s.corpora.Get(ctx, corpusName)
	if err != nil {
		return nil, fmt.Errorf("get corpus: %w", err)
	}

	f, ok := c.FieldByName(p.Field)
	if !ok {
		return nil, fmt.Errorf("field %q: %w", p.Field, domain.ErrUnknownField)
	}
	if f.FieldKind() != field.Integer {
		return nil, fmt.Errorf(
			"field %q has kind %s, range queries need integer: %w",
			p.Field, f.FieldKind(), domain.ErrValidation,
		)
	}

	r, err := lexord.NewRange(p.Gt, p.Gte, p.Lt, p.Lte)
	if err != nil {
		return nil, fmt.Errorf("range bounds: %w", err)
	}

	codec, err := lexord.New(c.Codec().Width, c.Codec().Min, c.Codec().Max)
	if err != nil {
		return nil, fmt.Errorf("corpus codec: %w", err)
	}

	enc, err := codec.EncodeRange(r)
	if errors.Is(err, lexord.ErrEmptyRange) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("encode range: %w", err)
	}

	limit := p.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	ids, err := s.scanner.LexRangeIDs(ctx, corpusName, p.Field, enc.Min, enc.Max, limit)
	if err != nil {
		return nil, fmt.Errorf("lex range: %w", err)
	}
	return ids, nil
}
