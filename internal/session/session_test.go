package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"dockergen/internal/generator"
	"dockergen/internal/inspector"
	"dockergen/internal/llm"
	"dockergen/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInspector struct {
	res   inspector.Result
	err   error
	calls int
}

func (s *stubInspector) Inspect(context.Context, string) (inspector.Result, error) {
	s.calls++
	return s.res, s.err
}

func newTestSession(t *testing.T, insp Inspector, fake *llm.FakeClient) *Session {
	t.Helper()
	return New("test", Deps{Inspector: insp, Generator: generator.New(fake, logging.Discard())})
}

func TestFlaskScenarioDownloadMatchesBackendText(t *testing.T) {
	const dockerfile = "FROM python:3.12-slim\nWORKDIR /app\nCOPY requirements.txt .\nRUN pip install -r requirements.txt\nCOPY . .\nUSER nobody\nCMD [\"flask\", \"run\"]"
	fake := llm.NewFakeClient(dockerfile)
	s := newTestSession(t, &stubInspector{}, fake)

	s.Describe("Python Flask app using requirements.txt")
	out, err := s.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dockerfile, out)

	dl, err := s.Download()
	require.NoError(t, err)
	assert.Equal(t, "Dockerfile", dl.Filename)
	assert.Equal(t, "text/plain", dl.ContentType)
	assert.Equal(t, dockerfile, dl.Body)
}

func TestRefineBeforeGenerateIsRejected(t *testing.T) {
	fake := llm.NewFakeClient()
	s := newTestSession(t, &stubInspector{}, fake)

	_, err := s.Refine(context.Background(), "use alpine")
	var pe *PreconditionError
	require.True(t, errors.As(err, &pe))
	assert.ErrorIs(t, err, ErrNoArtifact)
	assert.Equal(t, 0, fake.Calls())
}

func TestRefineWithEmptyFeedbackIsRejected(t *testing.T) {
	fake := llm.NewFakeClient("FROM a")
	s := newTestSession(t, &stubInspector{}, fake)
	s.Describe("something")
	_, err := s.Generate(context.Background())
	require.NoError(t, err)

	_, err = s.Refine(context.Background(), "   \n")
	require.ErrorIs(t, err, ErrEmptyFeedback)
	assert.Equal(t, 1, fake.Calls(), "refine must not reach the backend")
	assert.Equal(t, "FROM a", s.Snapshot().Artifact)
}

func TestRefineReplacesArtifact(t *testing.T) {
	fake := llm.NewFakeClient("FROM a", "FROM b")
	s := newTestSession(t, &stubInspector{}, fake)
	s.Describe("something")
	_, err := s.Generate(context.Background())
	require.NoError(t, err)

	out, err := s.Refine(context.Background(), "switch base")
	require.NoError(t, err)
	assert.Equal(t, "FROM b", out)
	assert.Equal(t, "FROM b", s.Snapshot().Artifact)
	assert.Contains(t, fake.Prompts()[1], "FROM a")
}

func TestFailedGenerationKeepsPreviousArtifact(t *testing.T) {
	fake := llm.NewFakeClient("FROM a")
	fake.Errs = []error{nil, errors.New("backend down")}
	s := newTestSession(t, &stubInspector{}, fake)
	s.Describe("something")
	_, err := s.Generate(context.Background())
	require.NoError(t, err)

	_, err = s.Refine(context.Background(), "more")
	var ge *generator.GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "FROM a", s.Snapshot().Artifact)
}

func TestGenerateWithoutDescription(t *testing.T) {
	fake := llm.NewFakeClient()
	s := newTestSession(t, &stubInspector{}, fake)
	_, err := s.Generate(context.Background())
	require.ErrorIs(t, err, ErrNoDescription)
	assert.Equal(t, 0, fake.Calls())
}

func TestAnalyzeStoresDetection(t *testing.T) {
	insp := &stubInspector{res: inspector.Result{Platforms: []string{"Python"}, Manifests: []string{"requirements.txt"}}}
	fake := llm.NewFakeClient("FROM python:3.12-slim")
	s := newTestSession(t, insp, fake)

	desc, err := s.Analyze(context.Background(), "https://github.com/o/r")
	require.NoError(t, err)
	assert.Equal(t, "**Tech Stack:** Python\n**Dependencies:** requirements.txt", desc)

	snap := s.Snapshot()
	assert.True(t, snap.Detected)
	assert.Equal(t, ModeRepository, snap.Mode)
	assert.Equal(t, desc, snap.Description)

	_, err = s.Generate(context.Background())
	require.NoError(t, err)
	assert.Contains(t, fake.Prompts()[0], desc)
}

func TestAnalyzeFailureClearsDetection(t *testing.T) {
	insp := &stubInspector{res: inspector.Result{Platforms: []string{"Python"}, Manifests: []string{"requirements.txt"}}}
	s := newTestSession(t, insp, llm.NewFakeClient())
	_, err := s.Analyze(context.Background(), "https://github.com/o/r")
	require.NoError(t, err)

	insp.err = &inspector.FetchError{Source: "x", StatusCode: 404}
	desc, err := s.Analyze(context.Background(), "https://github.com/o/missing")
	assert.Empty(t, desc)
	var fe *inspector.FetchError
	require.True(t, errors.As(err, &fe))
	assert.False(t, s.Snapshot().Detected)
}

func TestAnalyzeUndetectedSentinel(t *testing.T) {
	s := newTestSession(t, &stubInspector{}, llm.NewFakeClient())
	desc, err := s.Analyze(context.Background(), "https://github.com/o/r")
	require.NoError(t, err)
	assert.Equal(t, inspector.Undetected, desc)
}

func TestDownloadWithoutArtifact(t *testing.T) {
	s := newTestSession(t, &stubInspector{}, llm.NewFakeClient())
	_, err := s.Download()
	require.ErrorIs(t, err, ErrNoArtifact)
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode(" URL ")
	assert.True(t, ok)
	assert.Equal(t, ModeRepository, m)
	m, ok = ParseMode("description")
	assert.True(t, ok)
	assert.Equal(t, ModeManual, m)
	_, ok = ParseMode("voice")
	assert.False(t, ok)
}

func TestStoreLifecycle(t *testing.T) {
	st := NewStore(Deps{}, 2, time.Hour)
	a := st.Create()
	b := st.Create()
	assert.NotEqual(t, a.ID, b.ID)

	got, err := st.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)

	st.Create() // evicts b, the least recently used
	_, err = st.Get(b.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, st.Len())

	st.Delete(a.ID)
	_, err = st.Get(a.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreExpiry(t *testing.T) {
	st := NewStore(Deps{}, 10, 20*time.Millisecond)
	s := st.Create()
	time.Sleep(60 * time.Millisecond)
	_, err := st.Get(s.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
