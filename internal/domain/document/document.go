package document

import (
	"fmt"
	"regexp"
	"time"
)

// idRegex also keeps IDs safe inside composite oracle members, which use
// '|' as the value/ID separator.
var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Document is the document aggregate (immutable value object). Field
// values are grouped by Go type; which names are allowed and how values
// are encoded is decided against the corpus schema in the service layer.
type Document struct {
	id       string
	keywords map[string]string
	integers map[string]int64
	times    map[string]time.Time
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars.
func New(id string, keywords map[string]string, integers map[string]int64, times map[string]time.Time) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("document ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document ID must be alphanumeric with underscores and hyphens")
	}

	return Document{
		id:       id,
		keywords: cloneStringMap(keywords),
		integers: cloneInt64Map(integers),
		times:    cloneTimeMap(times),
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(id string, keywords map[string]string, integers map[string]int64, times map[string]time.Time) Document {
	return Document{id: id, keywords: keywords, integers: integers, times: times}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Keywords returns the keyword field values.
func (d *Document) Keywords() map[string]string { return d.keywords }

// Integers returns the integer field values.
func (d *Document) Integers() map[string]int64 { return d.integers }

// Times returns the timestamp and date field values.
func (d *Document) Times() map[string]time.Time { return d.times }

// FieldCount returns the number of populated field values.
func (d *Document) FieldCount() int {
	return len(d.keywords) + len(d.integers) + len(d.times)
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneInt64Map(m map[string]int64) map[string]int64 {
	if m == nil {
		return nil
	}
	c := make(map[string]int64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func cloneTimeMap(m map[string]time.Time) map[string]time.Time {
	if m == nil {
		return nil
	}
	c := make(map[string]time.Time, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
