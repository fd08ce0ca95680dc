package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/lexord"
	dombatch "github.com/kailas-cloud/lexord/internal/domain/batch"
	domdoc "github.com/kailas-cloud/lexord/internal/domain/document"
	"github.com/kailas-cloud/lexord/internal/metrics"
	healthuc "github.com/kailas-cloud/lexord/internal/usecase/health"
	queryuc "github.com/kailas-cloud/lexord/internal/usecase/query"
	verifyuc "github.com/kailas-cloud/lexord/internal/usecase/verify"
	"github.com/kailas-cloud/lexord/internal/version"
)

// CreateCorpus handles POST /api/v1/corpora.
func (s *Server) CreateCorpus(w http.ResponseWriter, r *http.Request) {
	var req createCorpusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "corpus name is required")
		return
	}

	fields, err := fieldsFromDTO(req.Fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	c, err := s.corpora.Create(r.Context(), req.Name, fields, codecParamsFromDTO(req.Codec), req.NumericMirror)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, corpusToDTO(c))
}

// ListCorpora handles GET /api/v1/corpora.
func (s *Server) ListCorpora(w http.ResponseWriter, r *http.Request) {
	cs, err := s.corpora.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]corpusResponse, len(cs))
	for i, c := range cs {
		items[i] = corpusToDTO(c)
	}

	writeJSON(w, http.StatusOK, listCorporaResponse{Corpora: items})
}

// GetCorpus handles GET /api/v1/corpora/{name}.
func (s *Server) GetCorpus(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	c, err := s.corpora.Get(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := corpusToDTO(c)

	// Document count is best-effort decoration; a cold index is not an error.
	if count, err := s.ingest.Count(r.Context(), name); err == nil {
		resp.DocumentCount = &count
	}

	writeJSON(w, http.StatusOK, resp)
}

// DeleteCorpus handles DELETE /api/v1/corpora/{name}.
func (s *Server) DeleteCorpus(w http.ResponseWriter, r *http.Request) {
	if err := s.corpora.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BulkDocuments handles POST /api/v1/corpora/{name}/documents. The body may
// arrive zstd-compressed (Content-Encoding: zstd). Per-item failures are
// reported in the body; the request itself succeeds.
func (s *Server) BulkDocuments(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "read request body: "+err.Error())
		return
	}

	var req bulkDocumentsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	if len(req.Documents) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "documents are required")
		return
	}

	docs := make([]domdoc.Document, 0, len(req.Documents))
	for _, item := range req.Documents {
		doc, err := documentFromDTO(item)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		docs = append(docs, doc)
	}

	results := s.ingest.Bulk(r.Context(), chi.URLParam(r, "name"), docs)
	summary := dombatch.Summarize(results)

	metrics.IngestDocumentsTotal.WithLabelValues("ok").Add(float64(summary.Succeeded))
	metrics.IngestDocumentsTotal.WithLabelValues("error").Add(float64(summary.Failed))

	items := make([]batchResultDTO, len(results))
	for i, res := range results {
		items[i] = batchResultToDTO(res)
	}

	writeJSON(w, http.StatusOK, bulkDocumentsResponse{
		Results: items,
		Summary: batchSummaryDTO{
			Total:     summary.Total,
			Succeeded: summary.Succeeded,
			Failed:    summary.Failed,
		},
	})
}

// RangeQuery handles GET /api/v1/corpora/{name}/range.
func (s *Server) RangeQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var params queryuc.Params

	if err := runtime.BindQueryParameter("form", true, true, "field", q, &params.Field); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "gte", q, &params.Gte); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "gte: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "gt", q, &params.Gt); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "gt: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "lte", q, &params.Lte); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "lte: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "lt", q, &params.Lt); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "lt: "+err.Error())
		return
	}
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "limit: "+err.Error())
		return
	}
	if limit != nil {
		params.Limit = *limit
	}

	ids, err := s.queries.RangeIDs(r.Context(), chi.URLParam(r, "name"), params)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, rangeResponse{IDs: ids, Count: len(ids)})
}

// RunVerification handles POST /api/v1/corpora/{name}/verify.
func (s *Server) RunVerification(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var opts verifyuc.Options

	var fieldName *string
	if err := runtime.BindQueryParameter("form", true, false, "field", q, &fieldName); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "field: "+err.Error())
		return
	}
	if fieldName != nil {
		opts.Field = *fieldName
	}
	var samples *int
	if err := runtime.BindQueryParameter("form", true, false, "samples", q, &samples); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "samples: "+err.Error())
		return
	}
	if samples != nil {
		opts.Samples = *samples
	}
	var seed *int64
	if err := runtime.BindQueryParameter("form", true, false, "seed", q, &seed); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "seed: "+err.Error())
		return
	}
	if seed != nil {
		opts.Seed = *seed
	}

	rep, err := s.verifier.Run(r.Context(), chi.URLParam(r, "name"), opts)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reportToDTO(rep))
}

// LastReport handles GET /api/v1/corpora/{name}/report.
func (s *Server) LastReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.verifier.LastReport(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reportToDTO(rep))
}

// EncodeValue handles GET /api/v1/codec/encode. Codec parameters default to
// the int32 preset.
func (s *Server) EncodeValue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var value int64
	if err := runtime.BindQueryParameter("form", true, true, "value", q, &value); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	codec, err := codecFromQuery(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	encoded, err := codec.Encode(value)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, codecValueResponse{
		Value:   value,
		Encoded: encoded,
		Width:   codec.Width(),
		Min:     codec.Min(),
		Max:     codec.Max(),
	})
}

// DecodeValue handles GET /api/v1/codec/decode.
func (s *Server) DecodeValue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var text string
	if err := runtime.BindQueryParameter("form", true, true, "text", q, &text); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	codec, err := codecFromQuery(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	value, err := codec.Decode(text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, codecValueResponse{
		Value:   value,
		Encoded: text,
		Width:   codec.Width(),
		Min:     codec.Min(),
		Max:     codec.Max(),
	})
}

// codecFromQuery builds a codec from optional width/min/max query
// parameters, falling back to the int32 preset for absent ones.
func codecFromQuery(r *http.Request) (lexord.Codec, error) {
	q := r.URL.Query()
	preset := lexord.Int32()

	width := preset.Width()
	lo := preset.Min()
	hi := preset.Max()

	var widthP *int
	if err := runtime.BindQueryParameter("form", true, false, "width", q, &widthP); err != nil {
		return lexord.Codec{}, fmt.Errorf("width: %w: %s", lexord.ErrInvalidDomain, err.Error())
	}
	if widthP != nil {
		width = *widthP
	}
	var minP *int64
	if err := runtime.BindQueryParameter("form", true, false, "min", q, &minP); err != nil {
		return lexord.Codec{}, fmt.Errorf("min: %w: %s", lexord.ErrInvalidDomain, err.Error())
	}
	if minP != nil {
		lo = *minP
	}
	var maxP *int64
	if err := runtime.BindQueryParameter("form", true, false, "max", q, &maxP); err != nil {
		return lexord.Codec{}, fmt.Errorf("max: %w: %s", lexord.ErrInvalidDomain, err.Error())
	}
	if maxP != nil {
		hi = *maxP
	}

	return lexord.New(width, lo, hi)
}

// Healthz handles GET /healthz.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:  string(report.Status),
		Version: version.String(),
		Checks:  checks,
	})
}
