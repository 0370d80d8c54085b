package server

import (
	"net/http"

	"dockergen/internal/gateway/handler"
	"dockergen/internal/gateway/middleware"

	"github.com/sirupsen/logrus"
)

func NewMux(sessions *handler.SessionHandler, log logrus.FieldLogger, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", sessions.HandleIndex)

	// Session API
	mux.HandleFunc("POST /api/sessions", sessions.HandleCreate)
	mux.HandleFunc("GET /api/sessions/{id}", sessions.HandleGet)
	mux.HandleFunc("POST /api/sessions/{id}/analyze", sessions.HandleAnalyze)
	mux.HandleFunc("POST /api/sessions/{id}/describe", sessions.HandleDescribe)
	mux.HandleFunc("POST /api/sessions/{id}/generate", sessions.HandleGenerate)
	mux.HandleFunc("POST /api/sessions/{id}/refine", sessions.HandleRefine)
	mux.HandleFunc("GET /api/sessions/{id}/dockerfile", sessions.HandleDownload)

	mux.HandleFunc("GET /ws", sessions.HandleSessionWS)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Middleware
	return middleware.CORS(allowedOrigins)(middleware.AccessLog(log)(mux))
}
