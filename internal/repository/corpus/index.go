package corpus

import (
	"github.com/kailas-cloud/lexord/internal/db"
	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
)

// buildIndex maps a corpus schema onto an FT index definition. Every field
// is indexed as a SORTABLE TAG over its stored value, which for encodable
// fields is the fixed-width encoding. Integer fields additionally get a
// NUMERIC attribute over the raw-value mirror when the corpus enables it.
func buildIndex(c domcorp.Corpus, idxName, docPrefix string) *db.IndexDefinition {
	integers := c.IntegerFields()

	def := &db.IndexDefinition{
		Name:        idxName,
		StorageType: db.StorageHash,
		Prefixes:    []string{docPrefix},
		Fields:      make([]db.IndexField, 0, len(c.Fields())+len(integers)),
	}

	for _, f := range c.Fields() {
		def.Fields = append(def.Fields, db.IndexField{
			Name:     f.Name(),
			Type:     db.IndexFieldTag,
			Sortable: true,
		})
	}

	if c.NumericMirror() {
		for _, f := range integers {
			def.Fields = append(def.Fields, db.IndexField{
				Name: domcorp.MirrorName(f.Name()),
				Type: db.IndexFieldNumeric,
			})
		}
	}

	return def
}
