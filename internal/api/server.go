// Package api exposes decks, cards, review sessions and stats over a
// JSON HTTP interface.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Immortal215/flashdeck/internal/errors"
	"github.com/Immortal215/flashdeck/internal/logger"
	"github.com/Immortal215/flashdeck/internal/services"
)

// Server holds the handler dependencies.
type Server struct {
	DeckService   services.DeckService
	ReviewService services.ReviewService
	StatsService  services.StatsService
}

var validate = validator.New()

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Default().Error("failed to encode response: %v", err)
	}
}

// decodeJSON decodes the request body into v and runs struct validation.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.NewBadRequestError("invalid JSON body")
	}
	if err := validate.Struct(v); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return errors.NewValidationError(verrs[0].Field(), "failed "+verrs[0].Tag()+" validation")
		}
		return errors.NewBadRequestError("invalid request")
	}
	return nil
}
