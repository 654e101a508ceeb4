package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Immortal215/flashdeck/internal/models"
	"github.com/Immortal215/flashdeck/internal/scheduler"
)

// MockHistoryStore is a mock implementation of store.HistoryStore
type MockHistoryStore struct {
	mock.Mock
}

func (m *MockHistoryStore) Insert(ctx context.Context, deckID, cardID string, response scheduler.Response, intervalDays int, ease float64) error {
	args := m.Called(ctx, deckID, cardID, response, intervalDays, ease)
	return args.Error(0)
}

func (m *MockHistoryStore) CountReviews(ctx context.Context, deckID string) (int, error) {
	args := m.Called(ctx, deckID)
	return args.Int(0), args.Error(1)
}

func (m *MockHistoryStore) ResponseStats(ctx context.Context, deckID string) ([]models.ResponseStat, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ResponseStat), args.Error(1)
}

func (m *MockHistoryStore) DailyStats(ctx context.Context, deckID string, days int) ([]models.DailyReviewStat, error) {
	args := m.Called(ctx, deckID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyReviewStat), args.Error(1)
}
