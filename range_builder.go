package lexord

import (
	"context"
	"errors"
	"fmt"
)

// RangeBuilder is a fluent builder for numeric range queries answered by
// the lexicographic oracle. Bounds are domain values; the builder encodes
// them and scans the encoded field.
type RangeBuilder[T any] struct {
	corpus *Corpus[T]
	field  string

	gt, gte, lt, lte *int64
	limit            int
}

// Gt sets an exclusive lower bound.
func (b *RangeBuilder[T]) Gt(v int64) *RangeBuilder[T] {
	b.gt = &v
	return b
}

// Gte sets an inclusive lower bound.
func (b *RangeBuilder[T]) Gte(v int64) *RangeBuilder[T] {
	b.gte = &v
	return b
}

// Lt sets an exclusive upper bound.
func (b *RangeBuilder[T]) Lt(v int64) *RangeBuilder[T] {
	b.lt = &v
	return b
}

// Lte sets an inclusive upper bound.
func (b *RangeBuilder[T]) Lte(v int64) *RangeBuilder[T] {
	b.lte = &v
	return b
}

// Limit caps the number of returned documents. Zero returns all matches.
func (b *RangeBuilder[T]) Limit(n int) *RangeBuilder[T] {
	b.limit = n
	return b
}

// IDs executes the scan and returns matching document IDs in ascending
// value order. A range selecting nothing in the codec domain returns nil.
func (b *RangeBuilder[T]) IDs(ctx context.Context) ([]string, error) {
	if !b.corpus.meta.hasIntegerField(b.field) {
		return nil, fmt.Errorf("range %s.%s: %w: not an integer field", b.corpus.name, b.field, ErrInvalidSchema)
	}

	r, err := NewRange(b.gt, b.gte, b.lt, b.lte)
	if err != nil {
		return nil, fmt.Errorf("range %s.%s: %w", b.corpus.name, b.field, err)
	}

	enc, err := b.corpus.codec.EncodeRange(r)
	if errors.Is(err, ErrEmptyRange) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("range %s.%s: %w", b.corpus.name, b.field, err)
	}

	ids, err := b.corpus.client.queries.LexRangeIDs(ctx, b.corpus.name, b.field, enc.Min, enc.Max, b.limit)
	if err != nil {
		return nil, fmt.Errorf("range %s.%s: %w", b.corpus.name, b.field, err)
	}
	return ids, nil
}

// Documents executes the scan and fetches the matching documents, keeping
// the ascending value order of IDs.
func (b *RangeBuilder[T]) Documents(ctx context.Context) ([]T, error) {
	ids, err := b.IDs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		item, err := b.corpus.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("document %q: %w", id, err)
		}
		out = append(out, item)
	}
	return out, nil
}
