package review_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Immortal215/flashdeck/internal/models"
	"github.com/Immortal215/flashdeck/internal/review"
	"github.com/Immortal215/flashdeck/internal/scheduler"
)

var day0 = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

// recordingSaver captures every deck handed to SaveAsync.
type recordingSaver struct {
	saves []models.Deck
}

func (r *recordingSaver) SaveAsync(deck models.Deck) {
	r.saves = append(r.saves, deck)
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newDeckWithCards(n int) *models.Deck {
	deck := models.NewDeck("chem vocab", 14, day0)
	for i := 0; i < n; i++ {
		deck.Cards = append(deck.Cards, models.NewCard("front", "back", day0))
	}
	return &deck
}

func TestDue_FiltersAndSorts(t *testing.T) {
	deck := models.NewDeck("deck", 14, day0)
	overdue := models.NewCard("overdue", "b", day0)
	overdue.Due = day0.AddDate(0, 0, -3)
	todayCard := models.NewCard("today", "b", day0)
	todayCard.Due = day0
	future := models.NewCard("future", "b", day0)
	future.Due = day0.AddDate(0, 0, 2)
	deck.Cards = []models.Card{future, todayCard, overdue}

	due := review.Due(deck, day0)

	require.Len(t, due, 2)
	assert.Equal(t, "overdue", due[0].Front)
	assert.Equal(t, "today", due[1].Front)
}

func TestDue_DayGranular(t *testing.T) {
	deck := models.NewDeck("deck", 14, day0)
	card := models.NewCard("late tonight", "b", day0)
	// Due later today by clock time, but the calendar day matches.
	card.Due = time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)
	deck.Cards = []models.Card{card}

	due := review.Due(deck, day0)
	assert.Len(t, due, 1)
}

func TestDue_Idempotent(t *testing.T) {
	deck := *newDeckWithCards(5)

	first := review.Due(deck, day0)
	second := review.Due(deck, day0)
	assert.Equal(t, first, second)
}

func TestSession_ReviewsUntilComplete(t *testing.T) {
	deck := newDeckWithCards(3)
	saver := &recordingSaver{}

	s := review.NewSession(deck, saver, fixedNow(day0))
	require.Equal(t, review.StatePresenting, s.State())
	require.Equal(t, 3, s.Remaining())

	for i := 0; i < 3; i++ {
		card := s.Current()
		require.NotNil(t, card)
		require.NoError(t, s.Answer(scheduler.Know))
	}

	assert.Equal(t, review.StateComplete, s.State())
	assert.Nil(t, s.Current())
	assert.Len(t, saver.saves, 3, "one save per answer")

	// Every answered card left the due set for today.
	assert.Empty(t, review.Due(*deck, day0))
}

func TestSession_AnswerAfterCompleteFails(t *testing.T) {
	deck := newDeckWithCards(0)
	s := review.NewSession(deck, &recordingSaver{}, fixedNow(day0))

	require.Equal(t, review.StateComplete, s.State())
	assert.ErrorIs(t, s.Answer(scheduler.Know), review.ErrNoCardPresented)
	assert.ErrorIs(t, s.Flip(), review.ErrNoCardPresented)
}

func TestSession_FlipIsViewStateOnly(t *testing.T) {
	deck := newDeckWithCards(2)
	s := review.NewSession(deck, &recordingSaver{}, fixedNow(day0))

	before := *s.Current()
	require.NoError(t, s.Flip())
	assert.True(t, s.Flipped())
	require.NoError(t, s.Flip())
	assert.False(t, s.Flipped())
	assert.Equal(t, before, *s.Current(), "flipping must not touch the card")

	// Advancing resets the flip.
	require.NoError(t, s.Flip())
	require.NoError(t, s.Answer(scheduler.Partial))
	assert.False(t, s.Flipped())
}

func TestSession_DontKnowKeepsCardDueTomorrowNotToday(t *testing.T) {
	deck := newDeckWithCards(1)
	saver := &recordingSaver{}
	s := review.NewSession(deck, saver, fixedNow(day0))

	require.NoError(t, s.Answer(scheduler.DontKnow))

	// Interval 1 puts the card one day out, so the session completes.
	assert.Equal(t, review.StateComplete, s.State())
	assert.Equal(t, 1, deck.Cards[0].IntervalDays)
	assert.Equal(t, 1, deck.Cards[0].Lapses)
}

func TestSession_RestartPicksUpCalendarRollover(t *testing.T) {
	deck := newDeckWithCards(1)
	saver := &recordingSaver{}

	now := day0
	s := review.NewSession(deck, saver, func() time.Time { return now })
	require.NoError(t, s.Answer(scheduler.DontKnow))
	require.Equal(t, review.StateComplete, s.State())

	// Same day: still nothing due.
	s.Restart()
	assert.Equal(t, review.StateComplete, s.State())

	// Next day the interval-1 card is due again.
	now = day0.AddDate(0, 0, 1)
	s.Restart()
	assert.Equal(t, review.StatePresenting, s.State())
}

func TestCasualSession_FixedShuffledOrder(t *testing.T) {
	a := newDeckWithCards(4)
	b := newDeckWithCards(3)
	saver := &recordingSaver{}

	s := review.NewCasualSession([]*models.Deck{a, b}, rand.New(rand.NewSource(7)), saver, fixedNow(day0))
	require.Equal(t, review.ModeCasual, s.Mode())
	require.Equal(t, 7, s.Remaining())

	var seen []string
	for s.State() == review.StatePresenting {
		seen = append(seen, s.Current().ID)
		require.NoError(t, s.Answer(scheduler.Know))
	}

	// Every card across both decks shows exactly once, due or not.
	require.Len(t, seen, 7)
	unique := map[string]bool{}
	for _, id := range seen {
		unique[id] = true
	}
	assert.Len(t, unique, 7)

	// Order is the seeded shuffle, not due-date order.
	s2 := review.NewCasualSession([]*models.Deck{a, b}, rand.New(rand.NewSource(7)), saver, fixedNow(day0))
	var replay []string
	for s2.State() == review.StatePresenting {
		replay = append(replay, s2.Current().ID)
		require.NoError(t, s2.Answer(scheduler.Know))
	}
	assert.Equal(t, seen, replay, "same seed, same order")
}

func TestCasualSession_AnswersStillSchedule(t *testing.T) {
	deck := newDeckWithCards(1)
	saver := &recordingSaver{}

	s := review.NewCasualSession([]*models.Deck{deck}, rand.New(rand.NewSource(1)), saver, fixedNow(day0))
	require.NoError(t, s.Answer(scheduler.Know))

	assert.GreaterOrEqual(t, deck.Cards[0].IntervalDays, 1)
	assert.Len(t, saver.saves, 1)
}
