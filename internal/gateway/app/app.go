package app

import (
	"context"
	"fmt"

	"dockergen/internal/gateway/config"
	"dockergen/internal/gateway/handler"
	"dockergen/internal/gateway/server"
	"dockergen/internal/generator"
	"dockergen/internal/inspector"
	"dockergen/internal/llm"
	"dockergen/internal/session"

	"github.com/sirupsen/logrus"
)

// Options select the backend. Fake swaps Gemini for llm.FakeClient.
type Options struct {
	Fake bool
}

// Backends are the collaborators every surface (HTTP, TUI, CLI) shares.
type Backends struct {
	LLM       llm.Client
	Inspector *inspector.Inspector
	Generator *generator.Gateway
}

// Deps returns the session dependencies built on these backends.
func (b *Backends) Deps() session.Deps {
	return session.Deps{Inspector: b.Inspector, Generator: b.Generator}
}

func (b *Backends) Close() error {
	if b == nil || b.LLM == nil {
		return nil
	}
	return b.LLM.Close()
}

func NewBackends(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, opts Options) (*Backends, error) {
	client, err := newLLMClient(ctx, cfg.LLM, log, opts)
	if err != nil {
		return nil, err
	}
	insp, err := newInspector(cfg, log)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Backends{
		LLM:       client,
		Inspector: insp,
		Generator: generator.New(client, log),
	}, nil
}

type App struct {
	backends *Backends
	server   *server.Server
}

func New(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, opts Options) (*App, error) {
	backends, err := NewBackends(ctx, cfg, log, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to init backends: %w", err)
	}

	// Dependencies
	store := session.NewStore(backends.Deps(), cfg.Session.MaxEntries, cfg.Session.TTL)
	sessionHandler := handler.NewSessionHandler(store, log, cfg.AllowedOrigins)

	// Routing & Server
	mux := server.NewMux(sessionHandler, log, cfg.AllowedOrigins)
	srv := server.New(cfg.Port, mux, log)

	return &App{
		backends: backends,
		server:   srv,
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.backends.Close(); err == nil {
		err = cerr
	}
	return err
}
