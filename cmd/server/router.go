package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/finchley/lexi/internal/api"
	apimiddleware "github.com/finchley/lexi/internal/api/middleware"
)

// setupRouter builds the HTTP surface from the application's services.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)

	quizTimeout := time.Duration(app.config.LLM.TimeoutSeconds) * time.Second

	setHandler := api.NewSetHandler(app.library, app.logger)
	ingestHandler := api.NewIngestHandler(app.registry, app.emitter, app.logger)
	sessionHandler := api.NewSessionHandler(
		app.controller, app.library, app.gate, app.provider, quizTimeout, app.logger)
	progressHandler := api.NewProgressHandler(app.progress)
	speechHandler := api.NewSpeechHandler(app.speaker, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Study set library
		r.Get("/sets", setHandler.ListSets)
		r.Post("/sets", setHandler.CreateSet)
		r.Post("/sets/demo", setHandler.CreateDemoSet)
		r.Get("/sets/{id}", setHandler.GetSet)
		r.Delete("/sets/{id}", setHandler.DeleteSet)

		// Ingestion
		r.Post("/ingest", ingestHandler.CreateIngestion)
		r.Get("/ingest/{id}", ingestHandler.GetJob)

		// Session machine
		r.Get("/sessions", sessionHandler.GetState)
		r.Post("/sessions/learning", sessionHandler.StartLearning)
		r.Post("/sessions/quiz", sessionHandler.StartQuiz)
		r.Post("/sessions/answer", sessionHandler.Answer)
		r.Get("/sessions/summary", sessionHandler.GetSummary)
		r.Post("/sessions/review", sessionHandler.Review)
		r.Post("/sessions/finish", sessionHandler.Finish)
		r.Get("/quiz/eligibility", sessionHandler.Eligibility)

		// Progress
		r.Get("/progress/history", progressHandler.GetHistory)
		r.Get("/progress/missed", progressHandler.GetMissed)

		// Speech
		r.Post("/speech", speechHandler.Speak)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
