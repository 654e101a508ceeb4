package scheduler_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Immortal215/flashdeck/internal/models"
	"github.com/Immortal215/flashdeck/internal/scheduler"
)

var day0 = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newTestDeck(targetDays int) models.Deck {
	return models.Deck{
		ID:         "deck-1",
		Title:      "AP Bio",
		TargetDays: targetDays,
		StartDate:  day0,
	}
}

func TestRemainingDays(t *testing.T) {
	deck := newTestDeck(14)

	assert.Equal(t, 14, scheduler.RemainingDays(deck, day0))
	assert.Equal(t, 7, scheduler.RemainingDays(deck, day0.AddDate(0, 0, 7)))
	assert.Equal(t, 0, scheduler.RemainingDays(deck, day0.AddDate(0, 0, 14)))
	// Past the deadline remaining is clamped, never negative.
	assert.Equal(t, 0, scheduler.RemainingDays(deck, day0.AddDate(0, 0, 30)))
}

func TestRemainingDays_IgnoresTimeOfDay(t *testing.T) {
	deck := newTestDeck(14)

	// 23:59 on day 7 is still day 7.
	lateDay7 := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 7, scheduler.RemainingDays(deck, lateDay7))
}

func TestNextInterval(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		response  scheduler.Response
		remaining int
		expected  int
	}{
		{"dont know always resets to 1", 5, scheduler.DontKnow, 10, 1},
		{"dont know resets even with big interval", 30, scheduler.DontKnow, 100, 1},
		{"dont know with zero remaining", 0, scheduler.DontKnow, 0, 1},
		{"partial caps at fifth of remaining", 3, scheduler.Partial, 10, 2},
		{"partial grows small intervals", 1, scheduler.Partial, 30, 2},
		{"partial keeps base when under cap", 4, scheduler.Partial, 30, 4},
		{"partial floors cap at 2 when budget tight", 10, scheduler.Partial, 3, 2},
		{"know first review takes half remaining", 0, scheduler.Know, 14, 7},
		{"know first review caps at a week", 0, scheduler.Know, 60, 7},
		{"know first review floors at 3", 0, scheduler.Know, 2, 3},
		{"know grows 2.5x within budget", 4, scheduler.Know, 30, 10},
		{"know clamps growth to remaining", 7, scheduler.Know, 7, 7},
		{"know floors at 3", 1, scheduler.Know, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scheduler.NextInterval(tt.current, tt.response, tt.remaining)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNextInterval_AlwaysAtLeastOne(t *testing.T) {
	for current := 0; current <= 40; current++ {
		for remaining := 0; remaining <= 40; remaining++ {
			for _, resp := range []scheduler.Response{scheduler.DontKnow, scheduler.Partial, scheduler.Know} {
				got := scheduler.NextInterval(current, resp, remaining)
				require.GreaterOrEqual(t, got, 1,
					"current=%d remaining=%d response=%s", current, remaining, resp)
			}
		}
	}
}

func TestSchedule_FirstKnow(t *testing.T) {
	deck := newTestDeck(14)
	card := models.NewCard("mitochondria", "powerhouse of the cell", day0)
	require.Equal(t, 0, card.IntervalDays)
	require.Equal(t, 2.3, card.Ease)

	scheduler.Schedule(&card, deck, scheduler.Know, day0)

	assert.Equal(t, 7, card.IntervalDays, "half of 14 remaining days")
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), card.Due, "due lands on day 7")
	assert.InDelta(t, 2.35, card.Ease, 1e-9)
	assert.Equal(t, 0, card.Lapses)
}

func TestSchedule_SecondKnowClampedByDeadline(t *testing.T) {
	deck := newTestDeck(14)
	day7 := day0.AddDate(0, 0, 7)

	card := models.NewCard("front", "back", day0)
	card.IntervalDays = 7
	card.Ease = 2.35

	scheduler.Schedule(&card, deck, scheduler.Know, day7)

	// grown = floor(7*2.5) = 17 but only 7 days remain.
	assert.Equal(t, 7, card.IntervalDays)
	assert.InDelta(t, 2.40, card.Ease, 1e-9)
	assert.True(t, scheduler.SameDayOrBefore(card.Due, day0.AddDate(0, 0, 14)))
	assert.False(t, scheduler.SameDayOrBefore(card.Due, day0.AddDate(0, 0, 13)))
}

func TestSchedule_DontKnow(t *testing.T) {
	deck := newTestDeck(14)
	card := models.NewCard("front", "back", day0)
	card.IntervalDays = 5
	card.Ease = 2.0

	scheduler.Schedule(&card, deck, scheduler.DontKnow, day0)

	assert.Equal(t, 1, card.IntervalDays)
	assert.InDelta(t, 1.85, card.Ease, 1e-9)
	assert.Equal(t, 1, card.Lapses)
}

func TestSchedule_Partial(t *testing.T) {
	deck := newTestDeck(10)
	card := models.NewCard("front", "back", day0)
	card.IntervalDays = 3

	scheduler.Schedule(&card, deck, scheduler.Partial, day0)

	// base = max(2, floor(3*1.2)) = 3, cap = max(2, floor(10*0.2)) = 2.
	assert.Equal(t, 2, card.IntervalDays)
}

func TestSchedule_EaseStaysBounded(t *testing.T) {
	deck := newTestDeck(30)
	card := models.NewCard("front", "back", day0)

	rng := rand.New(rand.NewSource(42))
	today := day0
	for i := 0; i < 500; i++ {
		resp := scheduler.Response(rng.Intn(3))
		scheduler.Schedule(&card, deck, resp, today)
		require.GreaterOrEqual(t, card.Ease, models.MinEase)
		require.LessOrEqual(t, card.Ease, models.MaxEase)
		require.GreaterOrEqual(t, card.IntervalDays, 1)
		today = today.AddDate(0, 0, 1)
	}
}

func TestSchedule_LapsesCountOnlyDontKnow(t *testing.T) {
	deck := newTestDeck(30)
	card := models.NewCard("front", "back", day0)

	responses := []scheduler.Response{
		scheduler.Know, scheduler.DontKnow, scheduler.Partial,
		scheduler.DontKnow, scheduler.Know, scheduler.DontKnow,
	}
	for _, resp := range responses {
		scheduler.Schedule(&card, deck, resp, day0)
	}

	assert.Equal(t, 3, card.Lapses)
}

// Ease is recorded per response but never feeds back into interval
// growth; two cards with different ease get identical intervals.
func TestSchedule_EaseDoesNotAffectInterval(t *testing.T) {
	deck := newTestDeck(30)

	easy := models.NewCard("a", "b", day0)
	easy.IntervalDays = 4
	easy.Ease = 2.8

	hard := models.NewCard("c", "d", day0)
	hard.IntervalDays = 4
	hard.Ease = 1.3

	scheduler.Schedule(&easy, deck, scheduler.Know, day0)
	scheduler.Schedule(&hard, deck, scheduler.Know, day0)

	assert.Equal(t, easy.IntervalDays, hard.IntervalDays)
}

func TestParseResponse(t *testing.T) {
	for _, resp := range []scheduler.Response{scheduler.DontKnow, scheduler.Partial, scheduler.Know} {
		parsed, err := scheduler.ParseResponse(resp.String())
		require.NoError(t, err)
		assert.Equal(t, resp, parsed)
	}

	_, err := scheduler.ParseResponse("meh")
	assert.Error(t, err)
}
