package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultEase is the starting ease factor for a brand new card.
const DefaultEase = 2.3

// Ease factor bounds. Every scheduling operation keeps a card's ease
// inside this range.
const (
	MinEase = 1.3
	MaxEase = 2.8
)

// Card is a front/back text pair with spaced-repetition scheduling state.
// Scheduling fields (IntervalDays, Due, Ease, Lapses) are mutated only by
// the scheduler; user edits touch Front/Back only.
type Card struct {
	ID           string    `json:"id"`
	Front        string    `json:"front"`
	Back         string    `json:"back"`
	IntervalDays int       `json:"interval_days"`
	Due          time.Time `json:"due"`
	Ease         float64   `json:"ease"`
	Lapses       int       `json:"lapses"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewCard creates an unstudied card: interval 0, default ease, due
// immediately.
func NewCard(front, back string, now time.Time) Card {
	return Card{
		ID:           uuid.NewString(),
		Front:        front,
		Back:         back,
		IntervalDays: 0,
		Due:          now,
		Ease:         DefaultEase,
		Lapses:       0,
		CreatedAt:    now,
	}
}

// Deck is a named collection of cards sharing a review deadline. A deck
// owns its cards: deleting the deck deletes them all. Card order matters
// for display only, never for scheduling.
type Deck struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	TargetDays int       `json:"target_days"`
	StartDate  time.Time `json:"start_date"`
	Cards      []Card    `json:"cards"`
	CreatedAt  time.Time `json:"created_at"`

	// Selected is an ephemeral UI flag (casual-study deck picking); it is
	// never persisted.
	Selected bool `json:"-"`
}

// NewDeck creates an empty deck starting today with the given horizon.
func NewDeck(title string, targetDays int, now time.Time) Deck {
	return Deck{
		ID:         uuid.NewString(),
		Title:      title,
		TargetDays: targetDays,
		StartDate:  now,
		CreatedAt:  now,
	}
}

// Clone returns a copy of the deck with its own Cards array, sharing no
// storage with the receiver. Card fields are plain values, so copying
// the slice is a full deep copy.
func (d Deck) Clone() Deck {
	c := d
	c.Cards = append([]Card(nil), d.Cards...)
	return c
}

// Card returns a pointer to the card with the given id, or nil.
func (d *Deck) Card(id string) *Card {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			return &d.Cards[i]
		}
	}
	return nil
}

// RemoveCard deletes the card with the given id from the deck. It reports
// whether a card was removed.
func (d *Deck) RemoveCard(id string) bool {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			d.Cards = append(d.Cards[:i], d.Cards[i+1:]...)
			return true
		}
	}
	return false
}
