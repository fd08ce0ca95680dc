package lexord

// CorpusOption configures corpus creation.
type CorpusOption func(*corpusConfig)

type corpusConfig struct {
	codec         Codec
	numericMirror bool
}

// WithCodec sets the encoding domain for the corpus's integer fields.
// Default is the int32 preset.
func WithCodec(c Codec) CorpusOption {
	return func(cfg *corpusConfig) {
		cfg.codec = c
	}
}

// WithNumericMirror stores a raw NUMERIC copy of every integer field so
// engine-side numeric answers can be cross-checked against the oracle.
func WithNumericMirror() CorpusOption {
	return func(cfg *corpusConfig) {
		cfg.numericMirror = true
	}
}
