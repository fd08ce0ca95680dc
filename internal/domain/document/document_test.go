package document

import (
	"strings"
	"testing"
	"time"
)

func TestNew_Valid(t *testing.T) {
	keywords := map[string]string{"sku": "A-7"}
	integers := map[string]int64{"price": 100000}
	times := map[string]time.Time{"created_at": time.Unix(1700000000, 0)}

	doc, err := New("doc-1", keywords, integers, times)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID() != "doc-1" {
		t.Errorf("ID() = %q", doc.ID())
	}
	if doc.Keywords()["sku"] != "A-7" {
		t.Errorf("Keywords() = %v", doc.Keywords())
	}
	if doc.Integers()["price"] != 100000 {
		t.Errorf("Integers() = %v", doc.Integers())
	}
	if !doc.Times()["created_at"].Equal(time.Unix(1700000000, 0)) {
		t.Errorf("Times() = %v", doc.Times())
	}
	if doc.FieldCount() != 3 {
		t.Errorf("FieldCount() = %d, want 3", doc.FieldCount())
	}
}

func TestNew_NilMaps(t *testing.T) {
	doc, err := New("doc-1", nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Keywords() != nil {
		t.Errorf("Keywords() = %v, want nil", doc.Keywords())
	}
	if doc.Integers() != nil {
		t.Errorf("Integers() = %v, want nil", doc.Integers())
	}
	if doc.FieldCount() != 0 {
		t.Errorf("FieldCount() = %d, want 0", doc.FieldCount())
	}
}

func TestNew_ClonesMaps(t *testing.T) {
	keywords := map[string]string{"k": "v"}
	integers := map[string]int64{"n": 1}

	doc, _ := New("doc-1", keywords, integers, nil)

	// Mutating original maps must not affect the document
	keywords["k"] = "mutated"
	integers["n"] = 999

	if doc.Keywords()["k"] != "v" {
		t.Error("Keywords mutation leaked into document")
	}
	if doc.Integers()["n"] != 1 {
		t.Error("Integers mutation leaked into document")
	}
}

func TestNew_EmptyID(t *testing.T) {
	_, err := New("", nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for empty ID")
	}
}

func TestNew_IDTooLong(t *testing.T) {
	_, err := New(strings.Repeat("a", 257), nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for ID too long")
	}
	if !strings.Contains(err.Error(), "too long") {
		t.Errorf("error = %q", err)
	}
}

func TestNew_InvalidIDChars(t *testing.T) {
	// '|' would corrupt composite oracle members; the rest are plain
	// identifier violations.
	bad := []string{"has|pipe", "has space", "doc/1", "doc.1", "абв"}
	for _, id := range bad {
		if _, err := New(id, nil, nil, nil); err == nil {
			t.Errorf("expected error for ID %q", id)
		}
	}
}

func TestNew_ValidIDChars(t *testing.T) {
	good := []string{"doc-1", "DOC_2", "a", "123", strings.Repeat("a", 256)}
	for _, id := range good {
		if _, err := New(id, nil, nil, nil); err != nil {
			t.Errorf("New(%q) unexpected error: %v", id, err)
		}
	}
}

func TestReconstruct(t *testing.T) {
	doc := Reconstruct("doc-9", map[string]string{"sku": "B"}, nil, nil)
	if doc.ID() != "doc-9" {
		t.Errorf("ID() = %q", doc.ID())
	}
	if doc.Keywords()["sku"] != "B" {
		t.Errorf("Keywords() = %v", doc.Keywords())
	}
}
