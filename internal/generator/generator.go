package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dockergen/internal/llm"

	"github.com/sirupsen/logrus"
)

// NoResponse is returned as the artifact when the backend answers with nothing.
const NoResponse = "No response received!"

// ErrEmptyInput is wrapped by GenerationError when there is nothing to send.
var ErrEmptyInput = errors.New("generator: input is empty")

// GenerationError reports a failed backend call for Op ("generate", "refine").
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("%s dockerfile: %v", e.Op, e.Err) }
func (e *GenerationError) Unwrap() error { return e.Err }

// Gateway turns descriptions and feedback into Dockerfile text.
type Gateway struct {
	client llm.Client
	log    logrus.FieldLogger
}

func New(client llm.Client, log logrus.FieldLogger) *Gateway {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Gateway{client: client, log: log}
}

// Generate asks for a Dockerfile matching description.
func (g *Gateway) Generate(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", &GenerationError{Op: "generate", Err: ErrEmptyInput}
	}
	return g.call(llm.WithPhase(ctx, "generate"), "generate", GeneratePrompt(description))
}

// Refine asks for a revision of dockerfile guided by feedback. Callers check
// preconditions; blank inputs here are still rejected without a call.
func (g *Gateway) Refine(ctx context.Context, feedback, dockerfile string) (string, error) {
	if strings.TrimSpace(feedback) == "" || strings.TrimSpace(dockerfile) == "" {
		return "", &GenerationError{Op: "refine", Err: ErrEmptyInput}
	}
	return g.call(llm.WithPhase(ctx, "refine"), "refine", RefinePrompt(feedback, dockerfile))
}

func (g *Gateway) call(ctx context.Context, op, prompt string) (out string, err error) {
	defer func() {
		// Backend panics surface as GenerationError.
		if r := recover(); r != nil {
			out, err = "", &GenerationError{Op: op, Err: fmt.Errorf("backend panic: %v", r)}
		}
	}()
	if g.client == nil {
		return "", &GenerationError{Op: op, Err: errors.New("no backend configured")}
	}
	text, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		g.log.WithError(err).WithField("op", op).Warn("dockerfile generation failed")
		return "", &GenerationError{Op: op, Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return NoResponse, nil
	}
	return text, nil
}
