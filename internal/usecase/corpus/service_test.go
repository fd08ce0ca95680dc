package corpus

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/lexord/internal/domain"
	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	"github.com/kailas-cloud/lexord/internal/domain/corpus/field"
)

// --- Mocks ---

type mockRepo struct {
	created    domcorp.Corpus
	getResult  domcorp.Corpus
	listResult []domcorp.Corpus
	createErr  error
	getErr     error
	listErr    error
	deleteErr  error
}

func (m *mockRepo) Create(_ context.Context, c domcorp.Corpus) error {
	m.created = c
	return m.createErr
}

func (m *mockRepo) Get(_ context.Context, _ string) (domcorp.Corpus, error) {
	return m.getResult, m.getErr
}

func (m *mockRepo) List(_ context.Context) ([]domcorp.Corpus, error) {
	return m.listResult, m.listErr
}

func (m *mockRepo) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

var int32Params = domcorp.CodecParams{Width: 10, Min: -2147483648, Max: 2147483647}

func makeField(t *testing.T, name string, k field.Kind) field.Field {
	t.Helper()
	f, err := field.New(name, k)
	if err != nil {
		t.Fatalf("field.New: %v", err)
	}
	return f
}

func makeFields(t *testing.T) []field.Field {
	t.Helper()
	return []field.Field{
		makeField(t, "category", field.Keyword),
		makeField(t, "price", field.Integer),
	}
}

func makeCorpus(t *testing.T, name string) domcorp.Corpus {
	t.Helper()
	c, err := domcorp.New(name, makeFields(t), int32Params, false)
	if err != nil {
		t.Fatalf("domcorp.New: %v", err)
	}
	return c
}

// --- Tests ---

func TestCreate_Success(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, int32Params)

	c, err := svc.Create(context.Background(), "prices", makeFields(t), int32Params, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name() != "prices" {
		t.Errorf("expected name 'prices', got %q", c.Name())
	}
	if !c.NumericMirror() {
		t.Error("expected numeric mirror enabled")
	}
	if repo.created.Name() != "prices" {
		t.Errorf("expected corpus stored, got %q", repo.created.Name())
	}
}

func TestCreate_DefaultCodec(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, int32Params)

	c, err := svc.Create(context.Background(), "prices", makeFields(t), domcorp.CodecParams{}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Codec() != int32Params {
		t.Errorf("expected default codec, got %+v", c.Codec())
	}
}

func TestCreate_InvalidSchema(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, int32Params)

	// Empty name is an invalid schema
	_, err := svc.Create(context.Background(), "", makeFields(t), int32Params, false)
	if err == nil {
		t.Fatal("expected error for empty name")
	}
	if !errors.Is(err, domain.ErrInvalidSchema) {
		t.Errorf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestCreate_CodecDomainTooWide(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, int32Params)

	// Two digits cannot hold the int32 domain.
	bad := domcorp.CodecParams{Width: 2, Min: -2147483648, Max: 2147483647}
	_, err := svc.Create(context.Background(), "prices", makeFields(t), bad, false)
	if err == nil {
		t.Fatal("expected error for undersized codec width")
	}
	if !errors.Is(err, domain.ErrInvalidSchema) {
		t.Errorf("expected ErrInvalidSchema, got %v", err)
	}
}

func TestCreate_RepoError(t *testing.T) {
	repoErr := errors.New("redis: connection refused")
	repo := &mockRepo{createErr: repoErr}
	svc := New(repo, int32Params)

	_, err := svc.Create(context.Background(), "prices", makeFields(t), int32Params, false)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, repoErr) {
		t.Errorf("expected repo error wrapped, got %v", err)
	}
}

func TestCreate_AlreadyExists(t *testing.T) {
	repo := &mockRepo{createErr: domain.ErrAlreadyExists}
	svc := New(repo, int32Params)

	_, err := svc.Create(context.Background(), "prices", makeFields(t), int32Params, false)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGet_Success(t *testing.T) {
	expected := makeCorpus(t, "prices")
	repo := &mockRepo{getResult: expected}
	svc := New(repo, int32Params)

	c, err := svc.Get(context.Background(), "prices")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name() != "prices" {
		t.Errorf("expected name 'prices', got %q", c.Name())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &mockRepo{getErr: domain.ErrNotFound}
	svc := New(repo, int32Params)

	_, err := svc.Get(context.Background(), "nonexistent")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestList_Success(t *testing.T) {
	corpora := []domcorp.Corpus{makeCorpus(t, "a"), makeCorpus(t, "b")}
	repo := &mockRepo{listResult: corpora}
	svc := New(repo, int32Params)

	result, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("expected 2 corpora, got %d", len(result))
	}
}

func TestList_Empty(t *testing.T) {
	repo := &mockRepo{listResult: []domcorp.Corpus{}}
	svc := New(repo, int32Params)

	result, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected 0 corpora, got %d", len(result))
	}
}

func TestDelete_Success(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, int32Params)

	if err := svc.Delete(context.Background(), "prices"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockRepo{deleteErr: domain.ErrNotFound}
	svc := New(repo, int32Params)

	err := svc.Delete(context.Background(), "nonexistent")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
