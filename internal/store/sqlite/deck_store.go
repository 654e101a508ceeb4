package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Immortal215/flashdeck/internal/logger"
	"github.com/Immortal215/flashdeck/internal/models"
	"github.com/Immortal215/flashdeck/internal/store"
)

type deckStore struct {
	db *sql.DB
}

// NewDeckStore returns a DeckStore backed by the given database.
func NewDeckStore(db *sql.DB) store.DeckStore {
	return &deckStore{db: db}
}

func (s *deckStore) Save(ctx context.Context, deck models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_store")
	log.Debug("saving deck: id=%s cards=%d", deck.ID, len(deck.Cards))

	doc, err := json.Marshal(deck)
	if err != nil {
		log.Error("failed to encode deck %s: %v", deck.ID, err)
		return err
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO decks (id, doc, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = CURRENT_TIMESTAMP
`, deck.ID, string(doc))
	if err != nil {
		log.Error("failed to save deck %s: %v", deck.ID, err)
	}
	return err
}

func (s *deckStore) Load(ctx context.Context, id string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_store")

	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM decks WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load deck %s: %v", id, err)
		return nil, err
	}

	var deck models.Deck
	if err := json.Unmarshal([]byte(doc), &deck); err != nil {
		// An undecodable document is treated the same as a missing one;
		// the caller simply omits the deck.
		log.Warn("deck %s has undecodable document, treating as absent: %v", id, err)
		return nil, nil
	}
	return &deck, nil
}

func (s *deckStore) List(ctx context.Context) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_store")

	rows, err := s.db.QueryContext(ctx, `SELECT id, doc FROM decks ORDER BY updated_at DESC`)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		var deck models.Deck
		if err := json.Unmarshal([]byte(doc), &deck); err != nil {
			log.Warn("skipping undecodable deck document: id=%s: %v", id, err)
			continue
		}
		decks = append(decks, deck)
	}
	log.Debug("listed %d decks", len(decks))
	return decks, rows.Err()
}

func (s *deckStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("deck_store")
	log.Debug("deleting deck: id=%s", id)

	_, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete deck %s: %v", id, err)
	}
	return err
}
