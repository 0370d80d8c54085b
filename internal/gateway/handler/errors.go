package handler

import (
	"errors"
	"net/http"

	"dockergen/internal/generator"
	"dockergen/internal/inspector"
	"dockergen/internal/session"
)

// errorBody is the JSON shape of every failed API call.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify maps domain errors to a wire code and HTTP status.
func classify(err error) (code string, status int) {
	var (
		pe *session.PreconditionError
		fe *inspector.FetchError
		ee *inspector.ExtractionError
		ge *generator.GenerationError
	)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return "not_found", http.StatusNotFound
	case errors.As(err, &pe):
		return "precondition", http.StatusConflict
	case errors.As(err, &fe):
		return "fetch", http.StatusBadGateway
	case errors.As(err, &ee):
		return "extraction", http.StatusUnprocessableEntity
	case errors.As(err, &ge):
		if errors.Is(err, generator.ErrEmptyInput) {
			return "invalid_argument", http.StatusBadRequest
		}
		return "generation", http.StatusBadGateway
	default:
		return "internal", http.StatusInternalServerError
	}
}
