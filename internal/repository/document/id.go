package document

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// DeriveID builds a deterministic document ID for callers that do not
// supply one: "doc-" plus the 64-bit xxh3 of the ID material as 16 hex
// characters. Reloading the same material upserts instead of duplicating.
func DeriveID(material string) string {
	return fmt.Sprintf("doc-%016x", xxh3.HashString(material))
}
