// Package review drives review sessions: selecting the cards due today
// and stepping through them one at a time.
package review

import (
	"sort"
	"time"

	"github.com/Immortal215/flashdeck/internal/models"
	"github.com/Immortal215/flashdeck/internal/scheduler"
)

// Due returns the deck's cards whose due day is on or before today,
// ascending by due date. It is a pure read, recomputed on every call;
// callers re-invoke it after each scheduling pass since answered cards
// move out of the due set.
func Due(deck models.Deck, today time.Time) []models.Card {
	var due []models.Card
	for _, c := range deck.Cards {
		if scheduler.SameDayOrBefore(c.Due, today) {
			due = append(due, c)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Due.Before(due[j].Due)
	})
	return due
}

// DueCount returns how many of the deck's cards are due today.
func DueCount(deck models.Deck, today time.Time) int {
	n := 0
	for _, c := range deck.Cards {
		if scheduler.SameDayOrBefore(c.Due, today) {
			n++
		}
	}
	return n
}
