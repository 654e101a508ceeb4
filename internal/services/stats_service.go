package services

import (
	"context"
	"time"

	"github.com/Immortal215/flashdeck/internal/errors"
	"github.com/Immortal215/flashdeck/internal/models"
	"github.com/Immortal215/flashdeck/internal/review"
	"github.com/Immortal215/flashdeck/internal/scheduler"
	"github.com/Immortal215/flashdeck/internal/store"
)

// DeckStatsResult bundles everything the stats endpoint returns.
type DeckStatsResult struct {
	Deck      models.DeckStat          `json:"deck"`
	Responses []models.ResponseStat    `json:"responses"`
	Daily     []models.DailyReviewStat `json:"daily"`
}

// StatsService aggregates scheduling state and review history per deck.
type StatsService interface {
	DeckStats(ctx context.Context, deckID string) (*DeckStatsResult, error)
}

type statsService struct {
	decks      store.DeckStore
	history    store.HistoryStore
	now        func() time.Time
	windowDays int
}

// NewStatsService creates a StatsService. windowDays bounds the daily
// review breakdown.
func NewStatsService(decks store.DeckStore, history store.HistoryStore, now func() time.Time, windowDays int) StatsService {
	if windowDays <= 0 {
		windowDays = 30
	}
	return &statsService{decks: decks, history: history, now: now, windowDays: windowDays}
}

func (s *statsService) DeckStats(ctx context.Context, deckID string) (*DeckStatsResult, error) {
	deck, err := s.decks.Load(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	today := s.now()
	stat := models.DeckStat{
		DeckID:        deck.ID,
		Title:         deck.Title,
		TotalCards:    len(deck.Cards),
		CardsDue:      review.DueCount(*deck, today),
		RemainingDays: scheduler.RemainingDays(*deck, today),
	}
	for _, c := range deck.Cards {
		stat.TotalLapses += c.Lapses
		stat.AvgEase += c.Ease
		stat.AvgInterval += float64(c.IntervalDays)
	}
	if n := len(deck.Cards); n > 0 {
		stat.AvgEase /= float64(n)
		stat.AvgInterval /= float64(n)
	}

	total, err := s.history.CountReviews(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	stat.TotalReviews = total

	responses, err := s.history.ResponseStats(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	daily, err := s.history.DailyStats(ctx, deckID, s.windowDays)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	return &DeckStatsResult{Deck: stat, Responses: responses, Daily: daily}, nil
}
