package sdk

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for API failure classes. Match with errors.Is; the
// concrete *APIError in the chain carries the wire code and message.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnavailable  = errors.New("service unavailable")
	ErrServer       = errors.New("server error")
)

// APIError is a non-2xx response decoded from the API error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lexord api: %s (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// Unwrap maps the HTTP status onto the matching sentinel error.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status == http.StatusBadGateway, e.Status == http.StatusServiceUnavailable:
		return ErrUnavailable
	case e.Status >= 400 && e.Status < 500:
		return ErrInvalidInput
	default:
		return ErrServer
	}
}

// errorBody is the API error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
