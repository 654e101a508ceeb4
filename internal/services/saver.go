package services

import (
	"context"
	"errors"

	"github.com/Immortal215/flashdeck/internal/logger"
	"github.com/Immortal215/flashdeck/internal/models"
	"github.com/Immortal215/flashdeck/internal/store"
	"github.com/Immortal215/flashdeck/internal/worker"
)

// errSaveQueueFull is reported to the error hook when a save is dropped
// because the worker queue is full.
var errSaveQueueFull = errors.New("save queue full")

// saveDeckJob writes one deck document.
type saveDeckJob struct {
	decks   store.DeckStore
	deck    models.Deck
	onError func(deckID string, err error)
}

func (j saveDeckJob) Name() string { return "save-deck" }

func (j saveDeckJob) Run(ctx context.Context) error {
	if err := j.decks.Save(ctx, j.deck); err != nil {
		if j.onError != nil {
			j.onError(j.deck.ID, err)
		}
		return err
	}
	return nil
}

// AsyncSaver persists decks through the worker pool. Enqueueing never
// blocks the review flow on the write: a full queue drops the save and
// reports it, like any other save failure, to the error hook instead of
// the caller.
type AsyncSaver struct {
	pool    *worker.Pool
	decks   store.DeckStore
	onError func(deckID string, err error)
}

// NewAsyncSaver creates a fire-and-forget deck saver. onError may be nil;
// failures are then only logged.
func NewAsyncSaver(pool *worker.Pool, decks store.DeckStore, onError func(deckID string, err error)) *AsyncSaver {
	return &AsyncSaver{pool: pool, decks: decks, onError: onError}
}

func (s *AsyncSaver) SaveAsync(deck models.Deck) {
	logger.Default().Debug("enqueueing deck save: id=%s", deck.ID)

	// Snapshot before crossing to the worker goroutine: the passed value
	// shares card storage with the deck the session keeps mutating.
	job := saveDeckJob{decks: s.decks, deck: deck.Clone(), onError: s.onError}
	if !s.pool.TrySubmit(job) {
		logger.Default().Warn("save queue full, dropping deck save: id=%s", deck.ID)
		if s.onError != nil {
			s.onError(deck.ID, errSaveQueueFull)
		}
	}
}
