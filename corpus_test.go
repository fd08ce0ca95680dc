package lexord

import (
	"context"
	"errors"
	"testing"

	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
)

func TestNewCorpus_Defaults(t *testing.T) {
	// NewCorpus only parses schema, it doesn't need a live client.
	cp, err := NewCorpus[priceRow](nil, "prices")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cp.Name() != "prices" {
		t.Errorf("name = %q, want prices", cp.Name())
	}
	if cp.codec != Int32() {
		t.Errorf("codec = %v, want int32 preset", cp.codec)
	}
	if cp.mirror {
		t.Error("numeric mirror on by default")
	}
}

func TestNewCorpus_Options(t *testing.T) {
	codec, err := New(4, -500, 499)
	if err != nil {
		t.Fatalf("codec: %v", err)
	}

	cp, err := NewCorpus[priceRow](nil, "prices", WithCodec(codec), WithNumericMirror())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cp.Codec() != codec {
		t.Errorf("codec = %v, want %v", cp.Codec(), codec)
	}
	if !cp.mirror {
		t.Error("numeric mirror not applied")
	}
}

func TestNewCorpus_InvalidStruct(t *testing.T) {
	_, err := NewCorpus[noIDRow](nil, "bad")
	if !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("err = %v, want ErrInvalidSchema", err)
	}
}

func TestNewCorpus_NonStruct(t *testing.T) {
	_, err := NewCorpus[int](nil, "bad")
	if !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("err = %v, want ErrInvalidSchema", err)
	}
}

func TestRangeBuilder_Chaining(t *testing.T) {
	cp, err := NewCorpus[priceRow](nil, "prices")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := cp.Range("price").Gte(10).Lt(100).Limit(5)

	if b.field != "price" {
		t.Errorf("field = %q, want price", b.field)
	}
	if b.gte == nil || *b.gte != 10 {
		t.Errorf("gte = %v, want 10", b.gte)
	}
	if b.lt == nil || *b.lt != 100 {
		t.Errorf("lt = %v, want 100", b.lt)
	}
	if b.gt != nil || b.lte != nil {
		t.Errorf("unset bounds = (%v, %v), want nil", b.gt, b.lte)
	}
	if b.limit != 5 {
		t.Errorf("limit = %d, want 5", b.limit)
	}
}

func TestRangeBuilder_NonIntegerField(t *testing.T) {
	cp, err := NewCorpus[priceRow](nil, "prices")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The schema check fires before any store access.
	_, err = cp.Range("category").Gte(1).IDs(context.Background())
	if !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("err = %v, want ErrInvalidSchema", err)
	}
}

func TestRangeBuilder_NoBounds(t *testing.T) {
	cp, err := NewCorpus[priceRow](nil, "prices")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = cp.Range("price").IDs(context.Background())
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
}

func TestRangeBuilder_EmptyRange(t *testing.T) {
	cp, err := NewCorpus[priceRow](nil, "prices")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Crossed bounds select nothing; the builder answers without a scan.
	ids, err := cp.Range("price").Gte(10).Lte(5).IDs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids != nil {
		t.Errorf("ids = %v, want nil", ids)
	}
}

func TestVerifyOptions(t *testing.T) {
	var vo verifyOptions
	VerifyField("price")(&vo)
	VerifySamples(128)(&vo)
	VerifySeed(42)(&vo)

	if vo.field != "price" {
		t.Errorf("field = %q, want price", vo.field)
	}
	if vo.samples != 128 {
		t.Errorf("samples = %d, want 128", vo.samples)
	}
	if vo.seed != 42 {
		t.Errorf("seed = %d, want 42", vo.seed)
	}
}

func TestDistinctIDs(t *testing.T) {
	meta, err := parseSchema[priceRow]()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	codec := Int32()

	a := priceRow{SKU: "a", Price: 1}
	b := priceRow{SKU: "b", Price: 2}
	encA, _ := meta.encode(&a, codec, false)
	encB, _ := meta.encode(&b, codec, false)
	encA2, _ := meta.encode(&a, codec, false)

	if got := distinctIDs(nil); got != 0 {
		t.Errorf("distinctIDs(nil) = %d, want 0", got)
	}
	if got := distinctIDs([]domdoc.Encoded{encA, encB, encA2}); false {
		_ = got
	}
}
