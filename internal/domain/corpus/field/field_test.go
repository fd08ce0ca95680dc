package field

import (
	"strings"
	"testing"
)

func TestNew_Valid(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
	}{
		{"price", Integer},
		{"sku", Keyword},
		{"created_at", Timestamp},
		{"released_on", Date},
		{"a", Keyword},
		{"x" + strings.Repeat("y", 63), Integer},
	}

	for _, tt := range tests {
		f, err := New(tt.name, tt.kind)
		if err != nil {
			t.Errorf("New(%q, %q) unexpected error: %v", tt.name, tt.kind, err)
			continue
		}
		if f.Name() != tt.name {
			t.Errorf("Name() = %q, want %q", f.Name(), tt.name)
		}
		if f.FieldKind() != tt.kind {
			t.Errorf("Kind() = %q, want %q", f.FieldKind(), tt.kind)
		}
	}
}

func TestNew_EmptyName(t *testing.T) {
	_, err := New("", Keyword)
	if err == nil {
		t.Fatal("expected error for empty name")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Errorf("error = %q, want 'required'", err)
	}
}

func TestNew_NameTooLong(t *testing.T) {
	_, err := New("x"+strings.Repeat("y", 64), Keyword)
	if err == nil {
		t.Fatal("expected error for name too long")
	}
	if !strings.Contains(err.Error(), "too long") {
		t.Errorf("error = %q, want 'too long'", err)
	}
}

func TestNew_InvalidCharacters(t *testing.T) {
	bad := []string{"price-eur", "1price", "_price", "has space", "has.dot"}
	for _, name := range bad {
		if _, err := New(name, Integer); err == nil {
			t.Errorf("expected error for name %q", name)
		}
	}
}

func TestNew_ReservedNames(t *testing.T) {
	_, err := New("id", Keyword)
	if err == nil {
		t.Fatal("expected error for reserved name")
	}
	if !strings.Contains(err.Error(), "reserved") {
		t.Errorf("error = %q, want 'reserved'", err)
	}
}

func TestNew_InvalidKind(t *testing.T) {
	_, err := New("valid_name", "float")
	if err == nil {
		t.Fatal("expected error for invalid kind")
	}
	if !strings.Contains(err.Error(), "invalid field kind") {
		t.Errorf("error = %q, want 'invalid field kind'", err)
	}
}

func TestNew_EmptyKind(t *testing.T) {
	_, err := New("valid_name", "")
	if err == nil {
		t.Fatal("expected error for empty kind")
	}
}

func TestEncodable(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{Keyword, false},
		{Integer, true},
		{Timestamp, true},
		{Date, true},
	}
	for _, tt := range tests {
		f := Reconstruct("f", tt.kind)
		if got := f.Encodable(); got != tt.want {
			t.Errorf("Encodable(%q) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestReconstruct_SkipsValidation(t *testing.T) {
	// Reconstruct accepts reserved names without error
	f := Reconstruct("id", Keyword)
	if f.Name() != "id" {
		t.Errorf("Reconstruct should skip validation, got Name() = %q", f.Name())
	}
}
