package corpus

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/lexord"
	"github.com/kailas-cloud/lexord/internal/domain"
	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	"github.com/kailas-cloud/lexord/internal/domain/corpus/field"
)

// Service handles corpus CRUD operations.
type Service struct {
	repo     Repository
	defaults domcorp.CodecParams
}

// New creates a corpus service. defaults is the codec domain applied when a
// create request does not carry its own.
func New(repo Repository, defaults domcorp.CodecParams) *Service {
	return &Service{repo: repo, defaults: defaults}
}

// Create validates and stores a new corpus. The codec domain gets the deep
// check here (the digit space must hold the domain span), on top of the
// structural checks the aggregate does itself.
func (s *Service) Create(
	ctx context.Context, name string, fields []field.Field,
	codec domcorp.CodecParams, numericMirror bool,
) (domcorp.Corpus, error) {
	if codec == (domcorp.CodecParams{}) {
		codec = s.defaults
	}
	if _, err := lexord.New(codec.Width, codec.Min, codec.Max); err != nil {
		return domcorp.Corpus{}, fmt.Errorf("validate codec: %w: %w", domain.ErrInvalidSchema, err)
	}

	c, err := domcorp.New(name, fields, codec, numericMirror)
	if err != nil {
		return domcorp.Corpus{}, fmt.Errorf("validate corpus: %w: %w", domain.ErrInvalidSchema, err)
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return domcorp.Corpus{}, fmt.Errorf("create corpus: %w", err)
	}

	return c, nil
}

// Get retrieves a corpus by name.
func (s *Service) Get(ctx context.Context, name string) (domcorp.Corpus, error) {
	c, err := s.repo.Get(ctx, name)
	if err != nil {
		return domcorp.Corpus{}, fmt.Errorf("get corpus: %w", err)
	}
	return c, nil
}

// List returns all corpora.
func (s *Service) List(ctx context.Context) ([]domcorp.Corpus, error) {
	corpora, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list corpora: %w", err)
	}
	return corpora, nil
}

// Delete removes a corpus.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete corpus: %w", err)
	}
	return nil
}
