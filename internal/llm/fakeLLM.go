package llm

import (
	"context"
	"sync"
)

// FakeClient returns scripted responses for offline runs and tests. Each call
// consumes the next entry of Responses/Errs; once exhausted it repeats the
// last response (or Default when none were scripted).
type FakeClient struct {
	mu        sync.Mutex
	Responses []string
	Errs      []error
	Default   string
	prompts   []string
}

func NewFakeClient(responses ...string) *FakeClient {
	return &FakeClient{Responses: responses, Default: defaultFakeDockerfile}
}

const defaultFakeDockerfile = `FROM alpine:3.20
WORKDIR /app
COPY . .
USER nobody
CMD ["sh"]`

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)

	if i < len(f.Errs) && f.Errs[i] != nil {
		return "", f.Errs[i]
	}
	switch {
	case i < len(f.Responses):
		return f.Responses[i], nil
	case len(f.Responses) > 0:
		return f.Responses[len(f.Responses)-1], nil
	default:
		return f.Default, nil
	}
}

// Calls reports how many times GenerateText was invoked.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// Prompts returns a copy of every prompt received so far.
func (f *FakeClient) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.prompts))
	copy(out, f.prompts)
	return out
}
