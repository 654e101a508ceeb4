package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Immortal215/flashdeck/internal/errors"
	"github.com/Immortal215/flashdeck/internal/models"
	"github.com/Immortal215/flashdeck/internal/services"
	"github.com/Immortal215/flashdeck/internal/testutil/mocks"
)

var day0 = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok, "expected *AppError, got %T", err)
	return appErr.Code
}

func TestCreateDeck_Validation(t *testing.T) {
	store := new(mocks.MockDeckStore)
	svc := services.NewDeckService(store, fixedNow(day0), 14)

	_, err := svc.CreateDeck(context.Background(), "  ", 14)
	assert.Equal(t, apperrors.ErrCodeValidation, appErrCode(t, err))

	_, err = svc.CreateDeck(context.Background(), "physics", 1)
	assert.Equal(t, apperrors.ErrCodeValidation, appErrCode(t, err))

	store.AssertNotCalled(t, "Save")
}

func TestCreateDeck(t *testing.T) {
	store := new(mocks.MockDeckStore)
	store.On("Save", mock.Anything, mock.AnythingOfType("models.Deck")).Return(nil)

	svc := services.NewDeckService(store, fixedNow(day0), 14)
	deck, err := svc.CreateDeck(context.Background(), "  physics  ", 14)

	require.NoError(t, err)
	assert.NotEmpty(t, deck.ID)
	assert.Equal(t, "physics", deck.Title)
	assert.Equal(t, 14, deck.TargetDays)
	assert.Equal(t, day0, deck.StartDate)
	assert.Empty(t, deck.Cards)
	store.AssertExpectations(t)
}

func TestCreateDeck_DefaultTargetDays(t *testing.T) {
	store := new(mocks.MockDeckStore)
	store.On("Save", mock.Anything, mock.AnythingOfType("models.Deck")).Return(nil)

	svc := services.NewDeckService(store, fixedNow(day0), 21)
	deck, err := svc.CreateDeck(context.Background(), "physics", 0)

	require.NoError(t, err)
	assert.Equal(t, 21, deck.TargetDays)
}

func TestGetDeck_NotFound(t *testing.T) {
	store := new(mocks.MockDeckStore)
	store.On("Load", mock.Anything, "missing").Return(nil, nil)

	svc := services.NewDeckService(store, fixedNow(day0), 14)
	_, err := svc.GetDeck(context.Background(), "missing")

	assert.Equal(t, apperrors.ErrCodeNotFound, appErrCode(t, err))
}

func TestAddCard_Defaults(t *testing.T) {
	deck := models.NewDeck("physics", 14, day0)
	store := new(mocks.MockDeckStore)
	store.On("Load", mock.Anything, deck.ID).Return(&deck, nil)
	store.On("Save", mock.Anything, mock.AnythingOfType("models.Deck")).Return(nil)

	svc := services.NewDeckService(store, fixedNow(day0), 14)
	card, err := svc.AddCard(context.Background(), deck.ID, "F = ma", "Newton's second law")

	require.NoError(t, err)
	assert.NotEmpty(t, card.ID)
	assert.Equal(t, 0, card.IntervalDays)
	assert.Equal(t, models.DefaultEase, card.Ease)
	assert.Equal(t, 0, card.Lapses)
	assert.Equal(t, day0, card.Due, "new card is due immediately")
	store.AssertExpectations(t)
}

func TestUpdateCard_LeavesSchedulingAlone(t *testing.T) {
	deck := models.NewDeck("physics", 14, day0)
	card := models.NewCard("old front", "old back", day0)
	card.IntervalDays = 7
	card.Ease = 2.45
	card.Lapses = 2
	deck.Cards = append(deck.Cards, card)

	store := new(mocks.MockDeckStore)
	store.On("Load", mock.Anything, deck.ID).Return(&deck, nil)
	store.On("Save", mock.Anything, mock.AnythingOfType("models.Deck")).Return(nil)

	svc := services.NewDeckService(store, fixedNow(day0), 14)
	updated, err := svc.UpdateCard(context.Background(), deck.ID, card.ID, "new front", "new back")

	require.NoError(t, err)
	assert.Equal(t, "new front", updated.Front)
	assert.Equal(t, "new back", updated.Back)
	assert.Equal(t, 7, updated.IntervalDays)
	assert.Equal(t, 2.45, updated.Ease)
	assert.Equal(t, 2, updated.Lapses)
}

func TestDeleteCard_NotFound(t *testing.T) {
	deck := models.NewDeck("physics", 14, day0)
	store := new(mocks.MockDeckStore)
	store.On("Load", mock.Anything, deck.ID).Return(&deck, nil)

	svc := services.NewDeckService(store, fixedNow(day0), 14)
	err := svc.DeleteCard(context.Background(), deck.ID, "no-such-card")

	assert.Equal(t, apperrors.ErrCodeNotFound, appErrCode(t, err))
	store.AssertNotCalled(t, "Save")
}

func TestDeleteDeck(t *testing.T) {
	deck := models.NewDeck("physics", 14, day0)
	store := new(mocks.MockDeckStore)
	store.On("Load", mock.Anything, deck.ID).Return(&deck, nil)
	store.On("Delete", mock.Anything, deck.ID).Return(nil)

	svc := services.NewDeckService(store, fixedNow(day0), 14)
	require.NoError(t, svc.DeleteDeck(context.Background(), deck.ID))
	store.AssertExpectations(t)
}
