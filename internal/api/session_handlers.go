package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Immortal215/flashdeck/internal/errors"
	"github.com/Immortal215/flashdeck/internal/scheduler"
)

type startSessionRequest struct {
	// DeckID starts a deadline review over one deck.
	DeckID string `json:"deck_id,omitempty"`
	// DeckIDs starts a casual shuffled session over several decks.
	DeckIDs []string `json:"deck_ids,omitempty"`
}

type answerRequest struct {
	Response string `json:"response" validate:"required"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	switch {
	case req.DeckID != "" && len(req.DeckIDs) > 0:
		handleError(w, r, errors.NewBadRequestError("set either deck_id or deck_ids, not both"))
	case req.DeckID != "":
		view, err := s.ReviewService.StartSession(r.Context(), req.DeckID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, view)
	case len(req.DeckIDs) > 0:
		view, err := s.ReviewService.StartCasualSession(r.Context(), req.DeckIDs)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, view)
	default:
		handleError(w, r, errors.NewBadRequestError("deck_id or deck_ids required"))
	}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.ReviewService.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleFlip(w http.ResponseWriter, r *http.Request) {
	view, err := s.ReviewService.Flip(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	response, err := scheduler.ParseResponse(req.Response)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("response must be dont_know, partial or know"))
		return
	}

	view, err := s.ReviewService.Answer(r.Context(), chi.URLParam(r, "id"), response)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRestartSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.ReviewService.Restart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
