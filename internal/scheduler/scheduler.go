// Package scheduler computes spaced-repetition intervals bounded by a
// deck's review deadline. Unlike classic SM-2, interval growth is driven
// by the response type and the days remaining until the deck's target
// date; the ease factor is tracked per card as a difficulty record but is
// deliberately not fed back into interval growth.
package scheduler

import (
	"math"
	"time"

	"github.com/Immortal215/flashdeck/internal/models"
)

// dayOf truncates t to local midnight. Scheduling is day-granular:
// time-of-day never affects due comparisons or day arithmetic.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween returns whole calendar days from a to b, both truncated to
// their local midnight. Rounding absorbs DST-shortened or -lengthened days.
func daysBetween(a, b time.Time) int {
	return int(math.Round(dayOf(b).Sub(dayOf(a)).Hours() / 24))
}

// SameDayOrBefore reports whether a's calendar day is on or before b's.
func SameDayOrBefore(a, b time.Time) bool {
	return !dayOf(a).After(dayOf(b))
}

// RemainingDays returns the days left between today and the deck's target
// completion date, never negative.
func RemainingDays(deck models.Deck, today time.Time) int {
	target := dayOf(deck.StartDate).AddDate(0, 0, deck.TargetDays)
	rem := daysBetween(today, target)
	if rem < 0 {
		return 0
	}
	return rem
}

// NextInterval computes the next review interval in days for a card
// currently at current days, given the response and the days remaining in
// the deck's budget. The result is always >= 1.
func NextInterval(current int, response Response, remaining int) int {
	rem := remaining
	if rem < 1 {
		rem = 1
	}

	switch response {
	case DontKnow:
		return 1

	case Partial:
		cur := current
		if cur < 1 {
			cur = 1
		}
		base := int(math.Floor(float64(cur) * 1.2))
		if base < 2 {
			base = 2
		}
		limit := int(math.Floor(float64(rem) * 0.2))
		if limit < 2 {
			limit = 2
		}
		if base < limit {
			return base
		}
		return limit

	case Know:
		if current <= 0 {
			// First successful review: jump ahead, but never past a week
			// and never past half the remaining budget.
			next := int(math.Floor(float64(rem) * 0.5))
			if next > 7 {
				next = 7
			}
			if next < 3 {
				next = 3
			}
			return next
		}
		grown := int(math.Floor(float64(current) * 2.5))
		if grown > rem {
			grown = rem
		}
		if grown < 3 {
			grown = 3
		}
		return grown

	default:
		return 1
	}
}

// Schedule applies a review response to the card: next interval, due
// date, ease adjustment and lapse count. Mutation is confined to the
// passed-in card; the deck only supplies the remaining time budget.
func Schedule(card *models.Card, deck models.Deck, response Response, today time.Time) {
	remaining := RemainingDays(deck, today)
	next := NextInterval(card.IntervalDays, response, remaining)

	card.IntervalDays = next
	card.Due = dayOf(today).AddDate(0, 0, next)

	switch response {
	case DontKnow:
		card.Ease = math.Max(models.MinEase, card.Ease-0.15)
		card.Lapses++
	case Partial:
		card.Ease = math.Max(1.4, card.Ease-0.05)
	case Know:
		card.Ease = math.Min(models.MaxEase, card.Ease+0.05)
	}
}
