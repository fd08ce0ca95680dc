package document

// Encoded is the storage projection of a document: every field value
// rendered as an order-comparable string. Fields carries the full hash
// payload (keywords raw, encodable fields encoded, plus any raw numeric
// mirror copies); Lex maps each encodable field to its encoded value for
// the oracle sorted sets.
type Encoded struct {
	ID     string
	Fields map[string]string
	Lex    map[string]string
}

// Member is one oracle sorted-set entry split into its parts: the encoded
// field value and the ID of the document that carries it.
type Member struct {
	Encoded string
	DocID   string
}
