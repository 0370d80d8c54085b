package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"dockergen/internal/gateway/middleware"
	"dockergen/internal/session"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	sessionWSWriteWait = 10 * time.Second
	sessionWSPongWait  = 60 * time.Second
	sessionWSPingEvery = (sessionWSPongWait * 9) / 10
)


type sessionWSInbound struct {
	Type        string `json:"type"`
	Mode        string `json:"mode,omitempty"`
	RepoURL     string `json:"repoUrl,omitempty"`
	Description string `json:"description,omitempty"`
	Feedback    string `json:"feedback,omitempty"`
}

type sessionWSOutbound struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Detection string `json:"detection,omitempty"`
	Artifact  string `json:"artifact,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
}

// HandleSessionWS drives one session over a websocket. Inbound messages
// are processed in order; a slow backend call blocks the next read.
func (h *SessionHandler) HandleSessionWS(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("session"))
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Code: "invalid_argument", Message: "session is required"})
		return
	}
	s, err := h.store.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return middleware.OriginAllowed(r, h.allowedOrigins)
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(sessionWSPongWait)); err != nil {
		h.log.WithError(err).Warn("session ws set read deadline failed")
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(sessionWSPongWait))
	})

	writeCh := make(chan sessionWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(sessionWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(sessionWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(sessionWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	pushSessionWS(writeCh, sessionWSOutbound{Type: "subscribed", SessionID: s.ID})

	for {
		var in sessionWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		pushSessionWS(writeCh, h.dispatchWS(ctx, s, in))
	}
}

func (h *SessionHandler) dispatchWS(ctx context.Context, s *session.Session, in sessionWSInbound) sessionWSOutbound {
	msgType := strings.ToLower(strings.TrimSpace(in.Type))
	if msgType == "" {
		return sessionWSOutbound{Type: "error", Code: "invalid_argument", Message: "type is required"}
	}
	if in.Mode != "" {
		m, ok := session.ParseMode(in.Mode)
		if !ok {
			return sessionWSOutbound{Type: "error", Code: "invalid_argument", Message: "unsupported mode: " + in.Mode}
		}
		s.SetMode(m)
	}

	log := h.log.WithFields(logrus.Fields{"session": s.ID, "action": msgType})
	switch msgType {
	case "ping":
		return sessionWSOutbound{Type: "pong"}
	case "analyze":
		desc, err := s.Analyze(ctx, in.RepoURL)
		if err != nil {
			return wsError(log, err)
		}
		return sessionWSOutbound{Type: "analyzed", SessionID: s.ID, Detection: desc}
	case "describe":
		s.Describe(in.Description)
		return sessionWSOutbound{Type: "described", SessionID: s.ID}
	case "generate":
		out, err := s.Generate(ctx)
		if err != nil {
			return wsError(log, err)
		}
		return sessionWSOutbound{Type: "generated", SessionID: s.ID, Artifact: out}
	case "refine":
		out, err := s.Refine(ctx, in.Feedback)
		if err != nil {
			return wsError(log, err)
		}
		return sessionWSOutbound{Type: "refined", SessionID: s.ID, Artifact: out}
	default:
		return sessionWSOutbound{Type: "error", Code: "invalid_argument", Message: "unsupported type: " + msgType}
	}
}

func wsError(log logrus.FieldLogger, err error) sessionWSOutbound {
	code, _ := classify(err)
	log.WithError(err).WithField("code", code).Warn("session action failed")
	return sessionWSOutbound{Type: "error", Code: code, Message: err.Error()}
}

func pushSessionWS(writeCh chan sessionWSOutbound, out sessionWSOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
