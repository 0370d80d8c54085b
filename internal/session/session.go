package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"dockergen/internal/inspector"
)

// Mode is the input mode chosen by the user.
type Mode string

const (
	ModeRepository Mode = "repository"
	ModeManual     Mode = "manual"
)

// ParseMode accepts "repository"/"repo"/"url" and "manual"/"description".
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "repository", "repo", "url":
		return ModeRepository, true
	case "manual", "description":
		return ModeManual, true
	}
	return "", false
}

const (
	DownloadFilename    = "Dockerfile"
	DownloadContentType = "text/plain"
)

// Inspector is the part of inspector.Inspector a session needs.
type Inspector interface {
	Inspect(ctx context.Context, repoURL string) (inspector.Result, error)
}

// Generator is the part of generator.Gateway a session needs.
type Generator interface {
	Generate(ctx context.Context, description string) (string, error)
	Refine(ctx context.Context, feedback, dockerfile string) (string, error)
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Inspector Inspector
	Generator Generator
}

// Session holds the state of one user's interaction. Handlers take the
// session explicitly; nothing is shared between sessions.
type Session struct {
	ID        string
	CreatedAt time.Time

	deps Deps

	mu          sync.Mutex
	mode        Mode
	repoURL     string
	detection   *string
	description string
	artifact    string
}

func New(id string, deps Deps) *Session {
	return &Session{ID: id, CreatedAt: time.Now(), deps: deps, mode: ModeRepository}
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	ID          string `json:"id"`
	Mode        Mode   `json:"mode"`
	RepoURL     string `json:"repoUrl,omitempty"`
	Detection   string `json:"detection,omitempty"`
	Detected    bool   `json:"detected"`
	Description string `json:"description,omitempty"`
	Artifact    string `json:"artifact,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:          s.ID,
		Mode:        s.mode,
		RepoURL:     s.repoURL,
		Description: s.description,
		Artifact:    s.artifact,
	}
	if s.detection != nil {
		snap.Detection = *s.detection
		snap.Detected = true
	}
	return snap
}

func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

// Analyze inspects repoURL. On success the rendered detection becomes the
// session description; on failure the detection is cleared.
func (s *Session) Analyze(ctx context.Context, repoURL string) (string, error) {
	repoURL = strings.TrimSpace(repoURL)
	s.mu.Lock()
	s.mode = ModeRepository
	s.repoURL = repoURL
	s.mu.Unlock()

	res, err := s.deps.Inspector.Inspect(ctx, repoURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.detection = nil
		return "", err
	}
	desc := res.Description()
	s.detection = &desc
	s.description = desc
	return desc, nil
}

// Describe records a manually typed description.
func (s *Session) Describe(text string) {
	s.mu.Lock()
	s.mode = ModeManual
	s.description = text
	s.mu.Unlock()
}

// Generate produces a new artifact from the current description, replacing
// any previous one.
func (s *Session) Generate(ctx context.Context) (string, error) {
	s.mu.Lock()
	desc := s.description
	s.mu.Unlock()
	if strings.TrimSpace(desc) == "" {
		return "", &PreconditionError{Action: "generate", Err: ErrNoDescription}
	}

	out, err := s.deps.Generator.Generate(ctx, desc)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.artifact = out
	s.mu.Unlock()
	return out, nil
}

// Refine revises the current artifact with feedback. It refuses to call the
// backend without an artifact or with blank feedback.
func (s *Session) Refine(ctx context.Context, feedback string) (string, error) {
	s.mu.Lock()
	current := s.artifact
	s.mu.Unlock()
	if current == "" {
		return "", &PreconditionError{Action: "refine", Err: ErrNoArtifact}
	}
	if strings.TrimSpace(feedback) == "" {
		return "", &PreconditionError{Action: "refine", Err: ErrEmptyFeedback}
	}

	out, err := s.deps.Generator.Refine(ctx, feedback, current)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.artifact = out
	s.mu.Unlock()
	return out, nil
}

// Download is the current artifact packaged as a file.
type Download struct {
	Filename    string
	ContentType string
	Body        string
}

func (s *Session) Download() (Download, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.artifact == "" {
		return Download{}, &PreconditionError{Action: "download", Err: ErrNoArtifact}
	}
	return Download{Filename: DownloadFilename, ContentType: DownloadContentType, Body: s.artifact}, nil
}
