package sdk

import "time"

// Field kind constants, mirroring the server's corpus field kinds.
const (
	FieldKeyword   = "keyword"
	FieldInteger   = "integer"
	FieldTimestamp = "timestamp"
	FieldDate      = "date"
)

// Field describes a single corpus field.
type Field struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// CodecParams is the encoding domain of a corpus. The zero value selects
// the server's default (signed 32-bit) preset.
type CodecParams struct {
	Width int   `json:"width"`
	Min   int64 `json:"min"`
	Max   int64 `json:"max"`
}

// CreateCorpusRequest is the payload for CreateCorpus.
type CreateCorpusRequest struct {
	Name          string       `json:"name"`
	Fields        []Field      `json:"fields"`
	Codec         *CodecParams `json:"codec,omitempty"`
	NumericMirror bool         `json:"numeric_mirror,omitempty"`
}

// Corpus is the server's view of a corpus.
type Corpus struct {
	Name          string      `json:"name"`
	Fields        []Field     `json:"fields"`
	Codec         CodecParams `json:"codec"`
	NumericMirror bool        `json:"numeric_mirror"`
	CreatedAt     time.Time   `json:"created_at"`
	DocumentCount *int64      `json:"document_count,omitempty"`
}

// Document is one item of a bulk ingest. Values are grouped by field kind;
// keys are field names from the corpus schema.
type Document struct {
	ID       string               `json:"id"`
	Keywords map[string]string    `json:"keywords,omitempty"`
	Integers map[string]int64     `json:"integers,omitempty"`
	Times    map[string]time.Time `json:"times,omitempty"`
}

// BatchError carries the wire code and message of a failed batch item.
type BatchError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchResult is the outcome of a single document in a bulk request.
type BatchResult struct {
	ID     string      `json:"id"`
	Status string      `json:"status"` // "ok" / "error"
	Error  *BatchError `json:"error,omitempty"`
}

// BatchSummary aggregates a bulk request's per-item outcomes.
type BatchSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// BulkReport is the response of BulkDocuments. The HTTP request succeeds
// even when individual items fail; inspect Summary.Failed.
type BulkReport struct {
	Results []BatchResult `json:"results"`
	Summary BatchSummary  `json:"summary"`
}

// RangeQuery selects documents whose field value falls in a numeric
// interval. Nil bounds are absent; Gt/Gte and Lt/Lte are mutually
// exclusive pairs. Limit 0 uses the server default.
type RangeQuery struct {
	Field string
	Gt    *int64
	Gte   *int64
	Lt    *int64
	Lte   *int64
	Limit int
}

// VerifyOptions tunes a verification run. Zero values use server defaults;
// an empty Field targets the corpus's first encodable field.
type VerifyOptions struct {
	Field   string
	Samples int
	Seed    int64
}

// CheckResult is the outcome of one verification check.
type CheckResult struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Observed string `json:"observed,omitempty"`
	Expected string `json:"expected,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// Report is a verification run's result.
type Report struct {
	Corpus     string        `json:"corpus"`
	Field      string        `json:"field"`
	Status     string        `json:"status"` // "ok" / "failed"
	Checks     []CheckResult `json:"checks"`
	Seed       int64         `json:"seed"`
	Samples    int           `json:"samples"`
	StartedAt  time.Time     `json:"started_at"`
	DurationMs int64         `json:"duration_ms"`
}

// Passed reports whether every check in the report passed.
func (r Report) Passed() bool { return r.Status == "ok" }

// CodecValue is the response of the stateless encode/decode endpoints.
type CodecValue struct {
	Value   int64  `json:"value"`
	Encoded string `json:"encoded"`
	Width   int    `json:"width"`
	Min     int64  `json:"min"`
	Max     int64  `json:"max"`
}

// Health is the server's health report.
type Health struct {
	Status  string            `json:"status"` // "ok" / "degraded" / "error"
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// Int64 returns a pointer to v, for RangeQuery bounds.
func Int64(v int64) *int64 { return &v }
