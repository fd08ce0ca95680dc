package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidSchema signals an invalid corpus schema definition.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrReportNotFound signals that no verification report is cached.
	ErrReportNotFound = errors.New("verification report not found")
	// ErrUnknownField signals a query against a field the corpus does not define.
	ErrUnknownField = errors.New("unknown field")
	// ErrValidation signals rejected input values.
	ErrValidation = errors.New("validation failed")
)
