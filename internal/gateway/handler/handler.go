package handler

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dockergen/internal/session"

	"github.com/sirupsen/logrus"
)

//go:embed web/index.html
var indexHTML []byte

// SessionHandler serves the form page, the JSON session API and the
// websocket session channel.
type SessionHandler struct {
	store          *session.Store
	log            logrus.FieldLogger
	allowedOrigins []string
}

// NewSessionHandler serves store. Websocket upgrades are accepted from the
// same host and from allowedOrigins.
func NewSessionHandler(store *session.Store, log logrus.FieldLogger, allowedOrigins []string) *SessionHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SessionHandler{store: store, log: log, allowedOrigins: allowedOrigins}
}

type analyzeRequest struct {
	RepoURL string `json:"repoUrl"`
}

type describeRequest struct {
	Description string `json:"description"`
}

type refineRequest struct {
	Feedback string `json:"feedback"`
}

type createResponse struct {
	ID string `json:"id"`
}

type analyzeResponse struct {
	Detection string `json:"detection"`
}

type artifactResponse struct {
	Artifact string `json:"artifact"`
}

func (h *SessionHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	s := h.store.Create()
	h.log.WithField("session", s.ID).Info("session created")
	writeJSON(w, http.StatusCreated, createResponse{ID: s.ID})
}

func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (h *SessionHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var in analyzeRequest
	if !decode(w, r, &in) {
		return
	}
	desc, err := s.Analyze(r.Context(), in.RepoURL)
	if err != nil {
		h.fail(w, s.ID, "analyze", err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{Detection: desc})
}

func (h *SessionHandler) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var in describeRequest
	if !decode(w, r, &in) {
		return
	}
	s.Describe(in.Description)
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (h *SessionHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	out, err := s.Generate(r.Context())
	if err != nil {
		h.fail(w, s.ID, "generate", err)
		return
	}
	writeJSON(w, http.StatusOK, artifactResponse{Artifact: out})
}

func (h *SessionHandler) HandleRefine(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var in refineRequest
	if !decode(w, r, &in) {
		return
	}
	out, err := s.Refine(r.Context(), in.Feedback)
	if err != nil {
		h.fail(w, s.ID, "refine", err)
		return
	}
	writeJSON(w, http.StatusOK, artifactResponse{Artifact: out})
}

// HandleDownload offers the current artifact as an attachment named Dockerfile.
func (h *SessionHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	dl, err := s.Download()
	if err != nil {
		h.fail(w, s.ID, "download", err)
		return
	}
	w.Header().Set("Content-Type", dl.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+dl.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(dl.Body))
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := strings.TrimSpace(r.PathValue("id"))
	s, err := h.store.Get(id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) fail(w http.ResponseWriter, sessionID, action string, err error) {
	code, _ := classify(err)
	h.log.WithFields(logrus.Fields{"session": sessionID, "action": action, "code": code}).WithError(err).Warn("session action failed")
	writeError(w, err)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "invalid_argument", Message: "request body is required"})
		return false
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "invalid_argument", Message: "invalid json body"})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	code, status := classify(err)
	var body errorBody
	body.Code = code
	body.Message = err.Error()
	if errors.Is(err, session.ErrNotFound) {
		body.Message = "session not found"
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
