package review

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Immortal215/flashdeck/internal/models"
	"github.com/Immortal215/flashdeck/internal/scheduler"
)

// State is the session's position in its lifecycle.
type State int

const (
	// StatePresenting means a card is on screen awaiting a response.
	// Constructors evaluate the card queue immediately, so a session is
	// presenting (or complete) from the moment it exists.
	StatePresenting State = iota
	// StateComplete means no due cards remain. Not a dead end: Restart
	// re-evaluates the due set, so cards that became due by calendar
	// rollover are picked up.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StatePresenting:
		return "presenting"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Mode selects how the session picks its cards.
type Mode int

const (
	// ModeDeadline reviews one deck's due cards in due-date order,
	// recomputing the due set after every answer.
	ModeDeadline Mode = iota
	// ModeCasual reviews every card across the selected decks in a
	// shuffled order fixed at session start, due or not.
	ModeCasual
)

func (m Mode) String() string {
	if m == ModeCasual {
		return "casual"
	}
	return "deadline"
}

// Saver receives a mutated deck after every answer. Implementations are
// fire-and-forget: the session never waits on, retries, or observes the
// outcome of a save. The passed value shares card storage with the live
// deck, so implementations crossing a goroutine boundary must snapshot
// it first.
type Saver interface {
	SaveAsync(deck models.Deck)
}

// ErrNoCardPresented is returned by Flip and Answer when the session has
// no current card.
var ErrNoCardPresented = errors.New("review: no card presented")

// ref points at a card inside one of the session's decks.
type ref struct {
	deck   *models.Deck
	cardID string
}

// Session steps through cards one at a time, applies the scheduler to
// each response and hands the mutated deck to the saver. It is not safe
// for concurrent use; callers serialize access.
type Session struct {
	id      string
	mode    Mode
	decks   []*models.Deck
	saver   Saver
	now     func() time.Time
	rng     *rand.Rand
	queue   []ref
	flipped bool
	state   State
}

// NewSession starts a deadline-mode session over one deck.
func NewSession(deck *models.Deck, saver Saver, now func() time.Time) *Session {
	s := &Session{
		id:    uuid.NewString(),
		mode:  ModeDeadline,
		decks: []*models.Deck{deck},
		saver: saver,
		now:   now,
	}
	s.Restart()
	return s
}

// NewCasualSession starts a casual session over the given decks: every
// card, globally shuffled with rng, order fixed until Restart.
func NewCasualSession(decks []*models.Deck, rng *rand.Rand, saver Saver, now func() time.Time) *Session {
	s := &Session{
		id:    uuid.NewString(),
		mode:  ModeCasual,
		decks: decks,
		saver: saver,
		now:   now,
		rng:   rng,
	}
	s.Restart()
	return s
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// Mode returns the session's card-selection mode.
func (s *Session) Mode() Mode { return s.mode }

// State returns the session's current state.
func (s *Session) State() State { return s.state }

// Flipped reports whether the current card's back is revealed. This is
// view-state only; it never touches scheduling.
func (s *Session) Flipped() bool { return s.flipped }

// Remaining returns how many cards are still queued, including the
// current one.
func (s *Session) Remaining() int { return len(s.queue) }

// Restart re-evaluates the session's card queue from scratch. A Complete
// session becomes Presenting again if new cards have come due (or, in
// casual mode, reshuffles everything).
func (s *Session) Restart() {
	s.flipped = false
	switch s.mode {
	case ModeCasual:
		s.queue = s.shuffledRefs()
	default:
		s.queue = s.dueRefs()
	}
	if len(s.queue) == 0 {
		s.state = StateComplete
	} else {
		s.state = StatePresenting
	}
}

// Current returns the card being presented, or nil when the session is
// complete.
func (s *Session) Current() *models.Card {
	if len(s.queue) == 0 {
		return nil
	}
	r := s.queue[0]
	return r.deck.Card(r.cardID)
}

// CurrentDeck returns the deck owning the card being presented, or nil
// when the session is complete.
func (s *Session) CurrentDeck() *models.Deck {
	if len(s.queue) == 0 {
		return nil
	}
	return s.queue[0].deck
}

// Decks returns the decks this session reviews.
func (s *Session) Decks() []*models.Deck { return s.decks }

// Flip toggles the current card between front and back.
func (s *Session) Flip() error {
	if s.state != StatePresenting {
		return ErrNoCardPresented
	}
	s.flipped = !s.flipped
	return nil
}

// Answer records the response for the current card: the scheduler
// mutates it, the owning deck is handed to the saver, and the session
// advances. In deadline mode the due set is recomputed, so the answered
// card drops out (its new interval is always >= 1 day); in casual mode
// the fixed order simply moves on.
func (s *Session) Answer(response scheduler.Response) error {
	if s.state != StatePresenting {
		return ErrNoCardPresented
	}

	r := s.queue[0]
	card := r.deck.Card(r.cardID)
	if card == nil {
		// Card edited away mid-session; skip it.
		s.advance()
		return nil
	}

	scheduler.Schedule(card, *r.deck, response, s.now())
	s.saver.SaveAsync(*r.deck)
	s.advance()
	return nil
}

func (s *Session) advance() {
	s.flipped = false
	if s.mode == ModeCasual {
		s.queue = s.queue[1:]
	} else {
		s.queue = s.dueRefs()
	}
	if len(s.queue) == 0 {
		s.state = StateComplete
	}
}

// dueRefs orders every due card across the session's decks ascending by
// due date.
func (s *Session) dueRefs() []ref {
	today := s.now()
	var refs []ref
	for _, d := range s.decks {
		for _, c := range Due(*d, today) {
			refs = append(refs, ref{deck: d, cardID: c.ID})
		}
	}
	sort.SliceStable(refs, func(i, j int) bool {
		a := refs[i].deck.Card(refs[i].cardID)
		b := refs[j].deck.Card(refs[j].cardID)
		return a.Due.Before(b.Due)
	})
	return refs
}

// shuffledRefs collects every card across the session's decks and
// shuffles them globally.
func (s *Session) shuffledRefs() []ref {
	var refs []ref
	for _, d := range s.decks {
		for i := range d.Cards {
			refs = append(refs, ref{deck: d, cardID: d.Cards[i].ID})
		}
	}
	s.rng.Shuffle(len(refs), func(i, j int) {
		refs[i], refs[j] = refs[j], refs[i]
	})
	return refs
}

