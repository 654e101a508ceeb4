package services

import (
	"context"
	"strings"
	"time"

	"github.com/Immortal215/flashdeck/internal/errors"
	"github.com/Immortal215/flashdeck/internal/logger"
	"github.com/Immortal215/flashdeck/internal/models"
	"github.com/Immortal215/flashdeck/internal/store"
)

// MinTargetDays is the smallest allowed review horizon for a deck.
const MinTargetDays = 2

// DeckService handles deck and card management.
type DeckService interface {
	ListDecks(ctx context.Context) ([]models.Deck, error)
	GetDeck(ctx context.Context, id string) (*models.Deck, error)
	CreateDeck(ctx context.Context, title string, targetDays int) (*models.Deck, error)
	DeleteDeck(ctx context.Context, id string) error
	AddCard(ctx context.Context, deckID, front, back string) (*models.Card, error)
	UpdateCard(ctx context.Context, deckID, cardID, front, back string) (*models.Card, error)
	DeleteCard(ctx context.Context, deckID, cardID string) error
}

type deckService struct {
	decks             store.DeckStore
	now               func() time.Time
	defaultTargetDays int
}

// NewDeckService creates a DeckService over the given store. now is the
// injectable clock; pass time.Now outside tests. defaultTargetDays is
// used when CreateDeck is called without a target.
func NewDeckService(decks store.DeckStore, now func() time.Time, defaultTargetDays int) DeckService {
	if defaultTargetDays < MinTargetDays {
		defaultTargetDays = 14
	}
	return &deckService{decks: decks, now: now, defaultTargetDays: defaultTargetDays}
}

func (s *deckService) ListDecks(ctx context.Context) ([]models.Deck, error) {
	decks, err := s.decks.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) GetDeck(ctx context.Context, id string) (*models.Deck, error) {
	deck, err := s.decks.Load(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) CreateDeck(ctx context.Context, title string, targetDays int) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.NewValidationError("title", "must not be empty")
	}
	if targetDays == 0 {
		targetDays = s.defaultTargetDays
	}
	if targetDays < MinTargetDays {
		return nil, errors.NewValidationError("target_days", "must be at least 2")
	}

	deck := models.NewDeck(title, targetDays, s.now())
	if err := s.decks.Save(ctx, deck); err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("deck created: id=%s title=%q target_days=%d", deck.ID, deck.Title, deck.TargetDays)
	return &deck, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, id string) error {
	deck, err := s.GetDeck(ctx, id)
	if err != nil {
		return err
	}
	// Cards live inside the deck document, so deleting the document
	// deletes them with it.
	if err := s.decks.Delete(ctx, deck.ID); err != nil {
		return errors.NewInternalError(err)
	}
	logger.FromContext(ctx).Info("deck deleted: id=%s", id)
	return nil
}

func (s *deckService) AddCard(ctx context.Context, deckID, front, back string) (*models.Card, error) {
	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" {
		return nil, errors.NewValidationError("front", "must not be empty")
	}
	if back == "" {
		return nil, errors.NewValidationError("back", "must not be empty")
	}

	deck, err := s.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	card := models.NewCard(front, back, s.now())
	deck.Cards = append(deck.Cards, card)
	if err := s.decks.Save(ctx, *deck); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &card, nil
}

func (s *deckService) UpdateCard(ctx context.Context, deckID, cardID, front, back string) (*models.Card, error) {
	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" {
		return nil, errors.NewValidationError("front", "must not be empty")
	}
	if back == "" {
		return nil, errors.NewValidationError("back", "must not be empty")
	}

	deck, err := s.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}

	card := deck.Card(cardID)
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	// Text edits never touch the scheduling fields.
	card.Front = front
	card.Back = back
	if err := s.decks.Save(ctx, *deck); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return card, nil
}

func (s *deckService) DeleteCard(ctx context.Context, deckID, cardID string) error {
	deck, err := s.GetDeck(ctx, deckID)
	if err != nil {
		return err
	}
	if !deck.RemoveCard(cardID) {
		return errors.NewNotFoundError("card", cardID)
	}
	if err := s.decks.Save(ctx, *deck); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}
