// Copyright (c) 2026 SlidePulse Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/slidepulse/slidepulse/cliparse"
	"github.com/slidepulse/slidepulse/guessnumber"
	"github.com/slidepulse/slidepulse/handlers"
	"github.com/slidepulse/slidepulse/interactions"
	"github.com/slidepulse/slidepulse/middleware"
	"github.com/slidepulse/slidepulse/qna"
	"github.com/slidepulse/slidepulse/realtime"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, qnaStore *qna.Store, guessStore *guessnumber.Store, hub *realtime.Hub) *http.ServeMux {
	mux := http.NewServeMux()

	registry := interactions.NewRegistry(qnaStore, guessStore)

	// Initialize handlers
	presentationHandler := handlers.NewPresentationHandler(db, cfg, qnaStore, guessStore)
	slideHandler := handlers.NewSlideHandler(db, cfg, registry, hub)
	qnaHandler := handlers.NewQnaHandler(db, cfg, qnaStore, registry, hub)
	guessHandler := handlers.NewGuessHandler(db, cfg, guessStore, registry, hub)
	responseHandler := handlers.NewResponseHandler(db, cfg, registry, hub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Presentation management (presenter operations)
	mux.HandleFunc("POST /presentations", middleware.WithLogging(presentationHandler.CreatePresentation))
	mux.HandleFunc("GET /presentations/{id}", middleware.WithLogging(presentationHandler.GetPresentation))
	mux.HandleFunc("DELETE /presentations/{id}", middleware.WithLogging(presentationHandler.DeletePresentation))
	mux.HandleFunc("POST /presentations/{id}/slides", middleware.WithLogging(slideHandler.AddSlide))
	mux.HandleFunc("PATCH /slides/{id}/settings", middleware.WithLogging(slideHandler.UpdateSettings))

	// Joining (public)
	mux.HandleFunc("POST /join/{code}", middleware.WithLogging(presentationHandler.Join))

	// Q&A session operations
	mux.HandleFunc("POST /slides/{id}/questions", middleware.WithLogging(qnaHandler.SubmitQuestion))
	mux.HandleFunc("POST /slides/{id}/questions/{qid}/answer", middleware.WithLogging(qnaHandler.MarkAnswered))
	mux.HandleFunc("POST /slides/{id}/active-question", middleware.WithLogging(qnaHandler.SetActiveQuestion))
	mux.HandleFunc("DELETE /slides/{id}/questions", middleware.WithLogging(qnaHandler.ClearQuestions))
	mux.HandleFunc("GET /slides/{id}/qna", middleware.WithLogging(qnaHandler.GetState))

	// Guess-number session operations
	mux.HandleFunc("POST /slides/{id}/guesses", middleware.WithLogging(guessHandler.SubmitGuess))
	mux.HandleFunc("DELETE /slides/{id}/guesses", middleware.WithLogging(guessHandler.ClearGuesses))
	mux.HandleFunc("GET /slides/{id}/guess-state", middleware.WithLogging(guessHandler.GetState))

	// Stateless interaction responses and results (public)
	mux.HandleFunc("POST /slides/{id}/responses", middleware.WithLogging(responseHandler.SubmitResponse))
	mux.HandleFunc("GET /slides/{id}/results", middleware.WithLogging(responseHandler.GetResults))

	// Websocket subscriptions; broadcasts bypass the logging middleware.
	mux.HandleFunc("GET /ws/slides/{id}", func(w http.ResponseWriter, r *http.Request) {
		realtime.ServeWS(hub, r.PathValue("id"), w, r)
	})

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("slidepulse API v1"))
	})

	return mux
}
