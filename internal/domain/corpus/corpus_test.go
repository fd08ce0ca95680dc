package corpus

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/lexord/internal/domain/corpus/field"
)

func int32Params() CodecParams {
	return CodecParams{Width: 10, Min: -2147483648, Max: 2147483647}
}

func makeField(t *testing.T, name string, k field.Kind) field.Field {
	t.Helper()
	f, err := field.New(name, k)
	if err != nil {
		t.Fatalf("field.New(%q, %q): %v", name, k, err)
	}
	return f
}

func TestNew_Valid(t *testing.T) {
	f := makeField(t, "price", field.Integer)
	before := time.Now().UnixMilli()

	c, err := New("prices", []field.Field{f}, int32Params(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := time.Now().UnixMilli()

	if c.Name() != "prices" {
		t.Errorf("Name() = %q, want %q", c.Name(), "prices")
	}
	if len(c.Fields()) != 1 {
		t.Errorf("Fields() len = %d, want 1", len(c.Fields()))
	}
	if !c.NumericMirror() {
		t.Error("NumericMirror() = false, want true")
	}
	if c.Codec().Width != 10 {
		t.Errorf("Codec().Width = %d, want 10", c.Codec().Width)
	}
	if c.CreatedAt() < before || c.CreatedAt() > after {
		t.Errorf("CreatedAt() = %d, want between %d and %d", c.CreatedAt(), before, after)
	}
}

func TestNew_EmptyName(t *testing.T) {
	f := makeField(t, "price", field.Integer)
	_, err := New("", []field.Field{f}, int32Params(), false)
	if err == nil {
		t.Fatal("expected error for empty name")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Errorf("error = %q, want 'required'", err)
	}
}

func TestNew_NameTooLong(t *testing.T) {
	f := makeField(t, "price", field.Integer)
	_, err := New(strings.Repeat("a", 65), []field.Field{f}, int32Params(), false)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "too long") {
		t.Errorf("error = %q, want 'too long'", err)
	}
}

func TestNew_InvalidNameChars(t *testing.T) {
	f := makeField(t, "price", field.Integer)
	names := []string{"has space", "слово", "col.name", "col/name", "col@name"}
	for _, name := range names {
		_, err := New(name, []field.Field{f}, int32Params(), false)
		if err == nil {
			t.Errorf("expected error for name %q", name)
		}
	}
}

func TestNew_ValidNameChars(t *testing.T) {
	f := makeField(t, "price", field.Integer)
	names := []string{"abc", "ABC-123", "with_underscore", "a-b-c", "X"}
	for _, name := range names {
		_, err := New(name, []field.Field{f}, int32Params(), false)
		if err != nil {
			t.Errorf("New(%q) unexpected error: %v", name, err)
		}
	}
}

func TestNew_NoFields(t *testing.T) {
	_, err := New("empty", nil, int32Params(), false)
	if err == nil {
		t.Fatal("expected error for corpus without fields")
	}
	if !strings.Contains(err.Error(), "at least one field") {
		t.Errorf("error = %q, want 'at least one field'", err)
	}
}

func TestNew_TooManyFields(t *testing.T) {
	fields := make([]field.Field, 65)
	for i := range fields {
		fields[i] = field.Reconstruct(fmt.Sprintf("f%d", i), field.Keyword)
	}
	_, err := New("col", fields, int32Params(), false)
	if err == nil {
		t.Fatal("expected error for too many fields")
	}
	if !strings.Contains(err.Error(), "too many") {
		t.Errorf("error = %q, want 'too many'", err)
	}
}

func TestNew_DuplicateFieldNames(t *testing.T) {
	f1 := field.Reconstruct("price", field.Integer)
	f2 := field.Reconstruct("price", field.Keyword)
	_, err := New("col", []field.Field{f1, f2}, int32Params(), false)
	if err == nil {
		t.Fatal("expected error for duplicate field names")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error = %q, want 'duplicate'", err)
	}
}

func TestNew_MirrorSuffixCollision(t *testing.T) {
	f := field.Reconstruct("price_num", field.Keyword)
	_, err := New("col", []field.Field{f}, int32Params(), false)
	if err == nil {
		t.Fatal("expected error for mirror-suffix field name")
	}
	if !strings.Contains(err.Error(), MirrorSuffix) {
		t.Errorf("error = %q, want mention of %q", err, MirrorSuffix)
	}
}

func TestNew_CodecValidation(t *testing.T) {
	f := makeField(t, "price", field.Integer)
	tests := []struct {
		name   string
		params CodecParams
	}{
		{"zero width", CodecParams{Width: 0, Min: 0, Max: 9}},
		{"width too large", CodecParams{Width: 21, Min: 0, Max: 9}},
		{"min above max", CodecParams{Width: 10, Min: 10, Max: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New("col", []field.Field{f}, tt.params, false); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReconstruct(t *testing.T) {
	f := field.Reconstruct("price", field.Integer)
	c := Reconstruct("old-col", []field.Field{f}, CodecParams{Width: 4, Min: 0, Max: 9999}, true, 1700000000000)

	if c.Name() != "old-col" {
		t.Errorf("Name() = %q", c.Name())
	}
	if c.Codec().Width != 4 {
		t.Errorf("Codec().Width = %d", c.Codec().Width)
	}
	if !c.NumericMirror() {
		t.Error("NumericMirror() = false")
	}
	if c.CreatedAt() != 1700000000000 {
		t.Errorf("CreatedAt() = %d", c.CreatedAt())
	}
}

func TestHasField(t *testing.T) {
	f1 := field.Reconstruct("sku", field.Keyword)
	f2 := field.Reconstruct("price", field.Integer)
	c := Reconstruct("col", []field.Field{f1, f2}, int32Params(), false, 0)

	if !c.HasField("sku", field.Keyword) {
		t.Error("HasField(sku, keyword) = false, want true")
	}
	if !c.HasField("price", field.Integer) {
		t.Error("HasField(price, integer) = false, want true")
	}
	// Wrong kind
	if c.HasField("sku", field.Integer) {
		t.Error("HasField(sku, integer) = true, want false")
	}
	// Non-existent field
	if c.HasField("missing", field.Keyword) {
		t.Error("HasField(missing, keyword) = true, want false")
	}
}

func TestFieldByName(t *testing.T) {
	f1 := field.Reconstruct("price", field.Integer)
	c := Reconstruct("col", []field.Field{f1}, int32Params(), false, 0)

	found, ok := c.FieldByName("price")
	if !ok {
		t.Fatal("FieldByName(price) not found")
	}
	if found.Name() != "price" || found.FieldKind() != field.Integer {
		t.Errorf("found = (%q, %q)", found.Name(), found.FieldKind())
	}

	_, ok = c.FieldByName("missing")
	if ok {
		t.Error("FieldByName(missing) found, want not found")
	}
}

func TestIntegerFields(t *testing.T) {
	fields := []field.Field{
		field.Reconstruct("sku", field.Keyword),
		field.Reconstruct("price", field.Integer),
		field.Reconstruct("stock", field.Integer),
		field.Reconstruct("created_at", field.Timestamp),
	}
	c := Reconstruct("col", fields, int32Params(), false, 0)

	ints := c.IntegerFields()
	if len(ints) != 2 {
		t.Fatalf("IntegerFields() len = %d, want 2", len(ints))
	}
	if ints[0].Name() != "price" || ints[1].Name() != "stock" {
		t.Errorf("unexpected integer fields: %v, %v", ints[0].Name(), ints[1].Name())
	}
}

func TestMirrorName(t *testing.T) {
	if got := MirrorName("price"); got != "price_num" {
		t.Errorf("MirrorName(price) = %q, want price_num", got)
	}
}
