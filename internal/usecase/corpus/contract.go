package corpus

import (
	"context"

	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
)

// Repository defines the storage contract for corpora.
type Repository interface {
	Create(ctx context.Context, c domcorp.Corpus) error
	Get(ctx context.Context, name string) (domcorp.Corpus, error)
	List(ctx context.Context) ([]domcorp.Corpus, error)
	Delete(ctx context.Context, name string) error
}
