package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Get("/decks", s.handleListDecks)
	r.Post("/decks", s.handleCreateDeck)
	r.Get("/decks/{id}", s.handleGetDeck)
	r.Delete("/decks/{id}", s.handleDeleteDeck)
	r.Get("/decks/{id}/stats", s.handleDeckStats)

	r.Post("/decks/{id}/cards", s.handleAddCard)
	r.Put("/decks/{id}/cards/{cardID}", s.handleUpdateCard)
	r.Delete("/decks/{id}/cards/{cardID}", s.handleDeleteCard)

	r.Post("/sessions", s.handleStartSession)
	r.Get("/sessions/{id}", s.handleGetSession)
	r.Post("/sessions/{id}/flip", s.handleFlip)
	r.Post("/sessions/{id}/answer", s.handleAnswer)
	r.Post("/sessions/{id}/restart", s.handleRestartSession)

	return r
}
