package chi

import (
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/lexord"
	"github.com/kailas-cloud/lexord/internal/domain"
	dombatch "github.com/kailas-cloud/lexord/internal/domain/batch"
	domcorp "github.com/kailas-cloud/lexord/internal/domain/corpus"
	"github.com/kailas-cloud/lexord/internal/domain/corpus/field"
	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
	domver "github.com/kailas-cloud/lexord/internal/domain/verification"
)

// errorBody is the error envelope every non-2xx response carries.
type errorBody struct {
	Error errorInfo `json:"error"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type fieldDTO struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type codecDTO struct {
	Width int   `json:"width"`
	Min   int64 `json:"min"`
	Max   int64 `json:"max"`
}

type createCorpusRequest struct {
	Name          string     `json:"name"`
	Fields        []fieldDTO `json:"fields"`
	Codec         *codecDTO  `json:"codec,omitempty"`
	NumericMirror bool       `json:"numeric_mirror,omitempty"`
}

type corpusResponse struct {
	Name          string     `json:"name"`
	Fields        []fieldDTO `json:"fields"`
	Codec         codecDTO   `json:"codec"`
	NumericMirror bool       `json:"numeric_mirror"`
	CreatedAt     time.Time  `json:"created_at"`
	DocumentCount *int64     `json:"document_count,omitempty"`
}

type listCorporaResponse struct {
	Corpora []corpusResponse `json:"corpora"`
}

type documentDTO struct {
	ID       string               `json:"id"`
	Keywords map[string]string    `json:"keywords,omitempty"`
	Integers map[string]int64     `json:"integers,omitempty"`
	Times    map[string]time.Time `json:"times,omitempty"`
}

type bulkDocumentsRequest struct {
	Documents []documentDTO `json:"documents"`
}

type batchResultDTO struct {
	ID     string     `json:"id"`
	Status string     `json:"status"`
	Error  *errorInfo `json:"error,omitempty"`
}

type batchSummaryDTO struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type bulkDocumentsResponse struct {
	Results []batchResultDTO `json:"results"`
	Summary batchSummaryDTO  `json:"summary"`
}

type rangeResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

type checkResultDTO struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Observed string `json:"observed,omitempty"`
	Expected string `json:"expected,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

type reportResponse struct {
	Corpus     string           `json:"corpus"`
	Field      string           `json:"field"`
	Status     string           `json:"status"`
	Checks     []checkResultDTO `json:"checks"`
	Seed       int64            `json:"seed"`
	Samples    int              `json:"samples"`
	StartedAt  time.Time        `json:"started_at"`
	DurationMs int64            `json:"duration_ms"`
}

type codecValueResponse struct {
	Value   int64  `json:"value"`
	Encoded string `json:"encoded"`
	Width   int    `json:"width"`
	Min     int64  `json:"min"`
	Max     int64  `json:"max"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

func fieldsFromDTO(ff []fieldDTO) ([]field.Field, error) {
	fields := make([]field.Field, len(ff))
	for i, f := range ff {
		fld, err := field.New(f.Name, field.Kind(f.Kind))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		fields[i] = fld
	}
	return fields, nil
}

func codecParamsFromDTO(c *codecDTO) domcorp.CodecParams {
	if c == nil {
		return domcorp.CodecParams{}
	}
	return domcorp.CodecParams{Width: c.Width, Min: c.Min, Max: c.Max}
}

func corpusToDTO(c domcorp.Corpus) corpusResponse {
	fields := make([]fieldDTO, len(c.Fields()))
	for i, f := range c.Fields() {
		fields[i] = fieldDTO{Name: f.Name(), Kind: string(f.FieldKind())}
	}
	return corpusResponse{
		Name:          c.Name(),
		Fields:        fields,
		Codec:         codecDTO{Width: c.Codec().Width, Min: c.Codec().Min, Max: c.Codec().Max},
		NumericMirror: c.NumericMirror(),
		CreatedAt:     time.UnixMilli(c.CreatedAt()).UTC(),
	}
}

func documentFromDTO(d documentDTO) (domdoc.Document, error) {
	doc, err := domdoc.New(d.ID, d.Keywords, d.Integers, d.Times)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("document %q: %w", d.ID, err)
	}
	return doc, nil
}

func batchResultToDTO(r dombatch.Result) batchResultDTO {
	item := batchResultDTO{
		ID:     r.ID(),
		Status: string(r.Status()),
	}
	if r.Err() != nil {
		item.Error = &errorInfo{
			Code:    batchErrorCode(r.Err()),
			Message: safeDomainMessage(r.Err()),
		}
	}
	return item
}

func batchErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return codeCorpusNotFound
	case errors.Is(err, domain.ErrUnknownField):
		return codeUnknownField
	case errors.Is(err, lexord.ErrOutOfRange):
		return codeOutOfRange
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidSchema):
		return codeValidationFailed
	default:
		return codeInternalError
	}
}

func reportToDTO(rep domver.Report) reportResponse {
	checks := make([]checkResultDTO, len(rep.Checks))
	for i, c := range rep.Checks {
		checks[i] = checkResultDTO{
			Name:     c.Name,
			Passed:   c.Passed,
			Observed: c.Observed,
			Expected: c.Expected,
			Detail:   c.Detail,
		}
	}
	return reportResponse{
		Corpus:     rep.Corpus,
		Field:      rep.Field,
		Status:     string(rep.Status),
		Checks:     checks,
		Seed:       rep.Seed,
		Samples:    rep.Samples,
		StartedAt:  rep.StartedAt.UTC(),
		DurationMs: rep.Duration.Milliseconds(),
	}
}
