package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/finchley/lexi/internal/config"
	"github.com/finchley/lexi/internal/events"
	"github.com/finchley/lexi/internal/generation"
	"github.com/finchley/lexi/internal/ingest"
	"github.com/finchley/lexi/internal/library"
	"github.com/finchley/lexi/internal/platform/gemini"
	"github.com/finchley/lexi/internal/platform/logger"
	"github.com/finchley/lexi/internal/platform/sqlite"
	"github.com/finchley/lexi/internal/progress"
	"github.com/finchley/lexi/internal/quiz"
	"github.com/finchley/lexi/internal/session"
	"github.com/finchley/lexi/internal/speech"
	"github.com/finchley/lexi/internal/store"
	"github.com/finchley/lexi/internal/task"
)

// shutdownTimeout bounds the graceful drain of in-flight requests.
const shutdownTimeout = 10 * time.Second

// application holds the wired dependency graph.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	storage  store.Storage
	library  *library.Library
	progress *progress.Progress

	controller *session.Controller
	gate       *quiz.Gate
	provider   generation.ContentProvider
	speaker    speech.Speaker

	registry *task.Registry
	queue    *task.TaskQueue
	pool     *task.WorkerPool
	emitter  *events.InMemoryEventEmitter
}

// newApplication loads configuration and wires the production dependency
// graph: sqlite storage, the Gemini provider and the configured speaker.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)

	storage, err := sqlite.New(cfg.Storage.Path, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	provider, err := gemini.NewProvider(ctx, appLogger, cfg.LLM)
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("failed to create content provider: %w", err)
	}

	var speaker speech.Speaker = speech.SilentSpeaker{}
	if cfg.Speech.Command != "" {
		speaker, err = speech.NewCommandSpeaker(cfg.Speech.Command, appLogger)
		if err != nil {
			storage.Close()
			return nil, fmt.Errorf("failed to create speaker: %w", err)
		}
	}

	app, err := buildApplication(ctx, cfg, appLogger, storage, provider, speaker)
	if err != nil {
		storage.Close()
		return nil, err
	}
	return app, nil
}

// buildApplication wires the application on top of already-constructed
// platform dependencies. Tests inject in-memory storage and a stub
// provider here.
func buildApplication(
	ctx context.Context,
	cfg *config.Config,
	appLogger *slog.Logger,
	storage store.Storage,
	provider generation.ContentProvider,
	speaker speech.Speaker,
) (*application, error) {
	lib, err := library.New(ctx, storage, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to load library: %w", err)
	}

	prog, err := progress.New(ctx, storage, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	controller, err := session.NewController(prog, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create session controller: %w", err)
	}

	gate, err := quiz.NewGate(prog)
	if err != nil {
		return nil, fmt.Errorf("failed to create quiz gate: %w", err)
	}

	ingestor, err := ingest.NewIngestor(provider, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create ingestor: %w", err)
	}

	registry := task.NewRegistry()
	queue := task.NewTaskQueue(cfg.Task.QueueSize, appLogger)
	pool := task.NewWorkerPool(queue, task.WorkerPoolConfig{WorkerCount: cfg.Task.WorkerCount}, appLogger)

	emitter := events.NewInMemoryEventEmitter(appLogger)
	emitter.RegisterHandler(task.NewIngestionEventHandler(ingestor, lib, registry, queue, appLogger))

	return &application{
		config:     cfg,
		logger:     appLogger,
		storage:    storage,
		library:    lib,
		progress:   prog,
		controller: controller,
		gate:       gate,
		provider:   provider,
		speaker:    speaker,
		registry:   registry,
		queue:      queue,
		pool:       pool,
		emitter:    emitter,
	}, nil
}

// run starts the worker pool and HTTP server, then blocks until the
// context is cancelled and the server has drained.
func (app *application) run(ctx context.Context) error {
	app.pool.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", slog.Int("port", app.config.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		app.shutdownBackground()
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}

	app.shutdownBackground()
	return nil
}

// shutdownBackground drains the task machinery and closes storage: the
// queue stops accepting work, buffered ingestions finish, then the
// database handle is released.
func (app *application) shutdownBackground() {
	app.queue.Close()
	app.pool.Wait()
	if err := app.storage.Close(); err != nil {
		app.logger.Error("failed to close storage", slog.String("error", err.Error()))
	}
	app.logger.Info("shutdown complete")
}
