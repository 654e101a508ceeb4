// Package store defines the persistence collaborators for decks and
// review history. Decks are whole documents keyed by deck id: a save
// overwrites the entire document, a load returns nil for both an absent
// and an undecodable document.
package store

import (
	"context"

	"github.com/Immortal215/flashdeck/internal/models"
	"github.com/Immortal215/flashdeck/internal/scheduler"
)

// DeckStore persists decks as one document per deck.
type DeckStore interface {
	// Save writes the whole deck document, replacing any previous version.
	Save(ctx context.Context, deck models.Deck) error
	// Load returns the deck, or (nil, nil) when the document is absent or
	// cannot be decoded.
	Load(ctx context.Context, id string) (*models.Deck, error)
	// List returns every decodable deck document.
	List(ctx context.Context) ([]models.Deck, error)
	// Delete removes the deck document. Deleting an absent deck is not an
	// error.
	Delete(ctx context.Context, id string) error
}

// HistoryStore records individual reviews, append-only. Writes are
// best-effort: callers log failures and move on.
type HistoryStore interface {
	Insert(ctx context.Context, deckID, cardID string, response scheduler.Response, intervalDays int, ease float64) error
	CountReviews(ctx context.Context, deckID string) (int, error)
	ResponseStats(ctx context.Context, deckID string) ([]models.ResponseStat, error)
	DailyStats(ctx context.Context, deckID string, days int) ([]models.DailyReviewStat, error)
}
