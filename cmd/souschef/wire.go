package main

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/hammamikhairi/souschef/internal/config"
	"github.com/hammamikhairi/souschef/internal/conversation"
	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/duration"
	"github.com/hammamikhairi/souschef/internal/engine"
	"github.com/hammamikhairi/souschef/internal/gpt"
	"github.com/hammamikhairi/souschef/internal/logger"
	"github.com/hammamikhairi/souschef/internal/storage"
	"github.com/hammamikhairi/souschef/internal/suggest"
	"github.com/hammamikhairi/souschef/internal/vision"
)

// app holds the wired dependency graph shared by the serve and cook
// commands.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	store     *storage.MemoryStore
	engine    *engine.Engine
	responder domain.Responder
	cleanup   func()
}

// wireApp builds the full dependency graph from configuration. Model-backed
// collaborators are wired only when LLM credentials are present; the core
// state machine works without them.
func wireApp(verbose, quiet bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if verbose {
		level = logger.LevelVerbose
	}
	if quiet {
		level = logger.LevelOff
	}

	// Direct logs to a file by default so terminal output stays clean.
	var logOut io.Writer = os.Stderr
	var closeLog func()
	if cfg.LogFile != "" && cfg.LogFile != "stderr" {
		if dir := filepath.Dir(cfg.LogFile); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.LogFile, err)
		} else {
			logOut = f
			closeLog = func() { f.Close() }
		}
	}

	// Redirect the stdlib logger (used by some third-party libs) to the
	// same output.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(level, logOut)

	store := storage.NewMemoryStore(log.Named("store"))
	parser := duration.NewParser(log.Named("duration"))

	opts := []engine.Option{}
	var closeArchive func()

	if cfg.ArchivePath != "" {
		if dir := filepath.Dir(cfg.ArchivePath); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		archive, err := storage.NewSQLiteArchive(cfg.ArchivePath, log.Named("archive"))
		if err != nil {
			log.Warn("archive disabled: %v", err)
		} else {
			opts = append(opts, engine.WithArchive(archive))
			closeArchive = func() { archive.Close() }
		}
	}

	var responder domain.Responder = conversation.NewPlainResponder()
	var suggester domain.RecipeSuggester = suggest.NewStaticSuggester(log.Named("suggest"))

	if cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "" {
		clientOpts := []gpt.ClientOption{}
		if cfg.LLMModel != "" {
			clientOpts = append(clientOpts, gpt.WithModel(cfg.LLMModel), gpt.WithBearerAuth())
		}
		client := gpt.NewClient(cfg.LLMEndpoint, cfg.LLMAPIKey, log.Named("gpt"), clientOpts...)

		responder = conversation.NewGPTResponder(client, log.Named("responder"))
		suggester = suggest.NewLLMSuggester(client, log.Named("suggest"))
		opts = append(opts, engine.WithRecognizer(vision.NewRecognizer(client, log.Named("vision"))))
		log.Info("LLM collaborators enabled (model=%s)", cfg.LLMModel)
	}
	opts = append(opts, engine.WithSuggester(suggester))

	eng := engine.New(store, parser, log.Named("engine"), opts...)

	return &app{
		cfg:       cfg,
		log:       log,
		store:     store,
		engine:    eng,
		responder: responder,
		cleanup: func() {
			if closeArchive != nil {
				closeArchive()
			}
			if closeLog != nil {
				closeLog()
			}
		},
	}, nil
}
