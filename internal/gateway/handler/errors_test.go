package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dockergen/internal/generator"
	"dockergen/internal/inspector"
	"dockergen/internal/session"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"not found", session.ErrNotFound, "not_found", http.StatusNotFound},
		{"precondition", &session.PreconditionError{Action: "refine", Err: session.ErrNoArtifact}, "precondition", http.StatusConflict},
		{"fetch", &inspector.FetchError{Source: "x", StatusCode: 404}, "fetch", http.StatusBadGateway},
		{"extraction", &inspector.ExtractionError{Err: errors.New("bad zip")}, "extraction", http.StatusUnprocessableEntity},
		{"generation", &generator.GenerationError{Op: "generate", Err: errors.New("quota")}, "generation", http.StatusBadGateway},
		{"empty input", &generator.GenerationError{Op: "generate", Err: generator.ErrEmptyInput}, "invalid_argument", http.StatusBadRequest},
		{"wrapped fetch", fmt.Errorf("analyze: %w", &inspector.FetchError{Source: "x"}), "fetch", http.StatusBadGateway},
		{"other", errors.New("boom"), "internal", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, status := classify(tc.err)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.status, status)
		})
	}
}
