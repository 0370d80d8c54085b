package session

import "errors"

var (
	ErrNoArtifact    = errors.New("generate a Dockerfile first before refining")
	ErrEmptyFeedback = errors.New("please provide feedback before refining")
	ErrNoDescription = errors.New("describe the application or analyze a repository first")
	ErrNotFound      = errors.New("session not found")
)

// PreconditionError means an action was attempted in a state that does not
// allow it. The backend is never called when this is returned.
type PreconditionError struct {
	Action string
	Err    error
}

func (e *PreconditionError) Error() string { return e.Action + ": " + e.Err.Error() }
func (e *PreconditionError) Unwrap() error { return e.Err }
