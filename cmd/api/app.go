package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"example.com/notetaker/internal/config"
	"example.com/notetaker/internal/db"
	"example.com/notetaker/internal/llm"
	"example.com/notetaker/internal/notes"
	"example.com/notetaker/internal/service"
)

// app holds everything the server owns for its lifetime.
type app struct {
	db      *db.DB
	repo    *notes.Repository
	ai      *llm.Client
	handler http.Handler
}

func newApp(ctx context.Context, cfg config.Config, log *zap.Logger) (*app, error) {
	conn, err := db.Open(ctx, cfg.DatabaseURL, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime)
	if err != nil {
		return nil, err
	}
	if err := conn.Migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	repo, err := notes.NewRepository(ctx, conn.SQL)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	ai := llm.New(llm.Config{
		Token:    cfg.LLM.Token,
		Endpoint: cfg.LLM.Endpoint,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.Timeout,
	})
	if !ai.Configured() {
		log.Warn("GITHUB_AI_TOKEN not set; translation and auto-complete will answer 503")
	}

	h := notes.NewHandlers(service.New(repo), ai, conn, log)

	return &app{db: conn, repo: repo, ai: ai, handler: h.Routes()}, nil
}

func (a *app) Close() error {
	return errors.Join(a.repo.Close(), a.db.Close())
}
