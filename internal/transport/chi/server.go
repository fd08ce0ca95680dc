package chi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexord"
	"github.com/kailas-cloud/lexord/internal/db"
	"github.com/kailas-cloud/lexord/internal/domain"
	corpusuc "github.com/kailas-cloud/lexord/internal/usecase/corpus"
	healthuc "github.com/kailas-cloud/lexord/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/lexord/internal/usecase/ingest"
	queryuc "github.com/kailas-cloud/lexord/internal/usecase/query"
	verifyuc "github.com/kailas-cloud/lexord/internal/usecase/verify"
)

// Error codes returned in the response body.
const (
	codeBadRequest        = "bad_request"
	codeValidationFailed  = "validation_failed"
	codeUnknownField      = "unknown_field"
	codeInvalidRange      = "invalid_range"
	codeOutOfRange        = "out_of_range"
	codeMalformedEncoding = "malformed_encoding"
	codeCorpusNotFound    = "corpus_not_found"
	codeDocumentNotFound  = "document_not_found"
	codeReportNotFound    = "report_not_found"
	codeCorpusExists      = "corpus_already_exists"
	codeUnauthorized      = "unauthorized"
	codeOracleUnavailable = "oracle_unavailable"
	codeInternalError     = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the corpus, ingest, query and verification services over
// HTTP.
type Server struct {
	corpora       *corpusuc.Service
	ingest        *ingestuc.Service
	queries       *queryuc.Service
	verifier      *verifyuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	corpora *corpusuc.Service,
	ingest *ingestuc.Service,
	queries *queryuc.Service,
	verifier *verifyuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		corpora:  corpora,
		ingest:   ingest,
		queries:  queries,
		verifier: verifier,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeCorpusNotFound),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrReportNotFound, http.StatusNotFound, codeReportNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeCorpusExists),
		sentinelHandler(domain.ErrUnknownField, http.StatusBadRequest, codeUnknownField),
		sentinelHandler(domain.ErrInvalidSchema, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(lexord.ErrInvalidRange, http.StatusBadRequest, codeInvalidRange),
		sentinelHandler(lexord.ErrOutOfRange, http.StatusBadRequest, codeOutOfRange),
		sentinelHandler(lexord.ErrMalformedEncoding, http.StatusBadRequest, codeMalformedEncoding),
		sentinelHandler(lexord.ErrInvalidDomain, http.StatusBadRequest, codeValidationFailed),
		oracleErrorHandler,
	}
	return s
}

// Routes builds the API router. Global middleware (recovery, request ID,
// logging, auth, metrics) is applied by the caller on the outer router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/corpora", func(r chi.Router) {
			r.Post("/", s.CreateCorpus)
			r.Get("/", s.ListCorpora)
			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", s.GetCorpus)
				r.Delete("/", s.DeleteCorpus)
				r.Post("/documents", s.BulkDocuments)
				r.Get("/range", s.RangeQuery)
				r.Post("/verify", s.RunVerification)
				r.Get("/report", s.LastReport)
			})
		})
		r.Get("/codec/encode", s.EncodeValue)
		r.Get("/codec/decode", s.DecodeValue)
	})

	r.Get("/healthz", s.Healthz)
	r.Get("/metrics", s.Metrics)

	return r
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorInfo{Code: code, Message: message}})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrDocumentNotFound,
		domain.ErrReportNotFound,
		domain.ErrAlreadyExists,
		domain.ErrUnknownField,
		domain.ErrInvalidSchema,
		domain.ErrValidation,
		lexord.ErrInvalidRange,
		lexord.ErrOutOfRange,
		lexord.ErrMalformedEncoding,
		lexord.ErrInvalidDomain,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// oracleErrorHandler maps store-level failures to 502. Domain sentinels are
// matched earlier in the chain, so any db.Error reaching this point means
// the oracle call itself failed.
func oracleErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		return false
	}
	writeError(w, http.StatusBadGateway, codeOracleUnavailable, "oracle unavailable")
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
