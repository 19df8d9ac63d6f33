package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/uschan/reflecting-light/internal/archive"
	"github.com/uschan/reflecting-light/internal/domain"
	"github.com/uschan/reflecting-light/internal/gen/geminigen"
	"github.com/uschan/reflecting-light/internal/gen/genmock"
	"github.com/uschan/reflecting-light/internal/gen/openaigen"
	"github.com/uschan/reflecting-light/internal/httpapi"
	"github.com/uschan/reflecting-light/internal/session"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := buildGenerator(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	store, closeStore, err := buildStore(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer closeStore()

	orch, err := session.New(gen, store, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: httpapi.NewServer(orch, log),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("reflecting-light listening",
		zap.String("addr", cfg.Addr),
		zap.String("provider", cfg.Provider),
		zap.String("store", cfg.Store))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server failed", zap.Error(err))
	}
}

// buildGenerator selects the provider. A missing credential is not fatal
// here: it degrades per the error taxonomy (text analysis fails per call,
// enrichments fall back to their unavailable outcomes).
func buildGenerator(ctx context.Context, cfg Config) (domain.Generator, error) {
	switch cfg.Provider {
	case "openai":
		return openaigen.New(openaigen.Config{
			APIKey:     os.Getenv("OPENAI_API_KEY"),
			TextModel:  cfg.TextModel,
			ImageModel: cfg.ImageModel,
			TTSModel:   cfg.TTSModel,
			Voice:      cfg.Voice,
		}), nil
	case "mock":
		return genmock.New(), nil
	default:
		return geminigen.New(ctx, geminigen.Config{
			APIKey:     envOr("GEMINI_API_KEY", os.Getenv("API_KEY")),
			TextModel:  cfg.TextModel,
			ImageModel: cfg.ImageModel,
			TTSModel:   cfg.TTSModel,
			Voice:      cfg.Voice,
		})
	}
}

func buildStore(cfg Config, log *zap.Logger) (domain.Store, func(), error) {
	switch cfg.Store {
	case "sqlite":
		s, err := archive.NewSQLiteStore(cfg.DataPath, log)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "memory":
		return archive.NewMemoryStore(), func() {}, nil
	default:
		s, err := archive.NewFileStore(cfg.DataPath, log)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}
