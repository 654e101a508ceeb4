package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Immortal215/flashdeck/internal/errors"
	"github.com/Immortal215/flashdeck/internal/logger"
	"github.com/Immortal215/flashdeck/internal/models"
	"github.com/Immortal215/flashdeck/internal/review"
	"github.com/Immortal215/flashdeck/internal/scheduler"
	"github.com/Immortal215/flashdeck/internal/store"
)

// SessionView is the session state handed to the transport layer: the
// current card's front, its back only once flipped, and progress.
type SessionView struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
	State     string `json:"state"`
	Remaining int    `json:"remaining"`
	CardID    string `json:"card_id,omitempty"`
	Front     string `json:"front,omitempty"`
	Back      string `json:"back,omitempty"`
	Flipped   bool   `json:"flipped"`
}

// ReviewService manages review sessions. Sessions are in-memory and
// single-user; decks are loaded at session start and written back
// asynchronously after every answer.
type ReviewService interface {
	StartSession(ctx context.Context, deckID string) (*SessionView, error)
	StartCasualSession(ctx context.Context, deckIDs []string) (*SessionView, error)
	GetSession(ctx context.Context, sessionID string) (*SessionView, error)
	Flip(ctx context.Context, sessionID string) (*SessionView, error)
	Answer(ctx context.Context, sessionID string, response scheduler.Response) (*SessionView, error)
	Restart(ctx context.Context, sessionID string) (*SessionView, error)
}

// sessionHandle pairs a session with the mutex serializing access to it.
// The session itself is not safe for concurrent use; every operation on
// it happens under this lock.
type sessionHandle struct {
	mu   sync.Mutex
	sess *review.Session
}

type reviewService struct {
	decks   store.DeckStore
	history store.HistoryStore
	saver   review.Saver
	now     func() time.Time
	rng     *rand.Rand

	mu       sync.Mutex
	sessions map[string]*sessionHandle
}

// NewReviewService creates a ReviewService. saver receives mutated decks
// fire-and-forget; history inserts are best-effort.
func NewReviewService(decks store.DeckStore, history store.HistoryStore, saver review.Saver, now func() time.Time, rng *rand.Rand) ReviewService {
	return &reviewService{
		decks:    decks,
		history:  history,
		saver:    saver,
		now:      now,
		rng:      rng,
		sessions: make(map[string]*sessionHandle),
	}
}

func (s *reviewService) StartSession(ctx context.Context, deckID string) (*SessionView, error) {
	deck, err := s.decks.Load(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	sess := review.NewSession(deck, s.saver, s.now)
	h := s.put(sess)
	h.mu.Lock()
	defer h.mu.Unlock()

	logger.FromContext(ctx).Info("review session started: session=%s deck=%s due=%d",
		sess.ID(), deckID, sess.Remaining())
	return s.view(sess), nil
}

func (s *reviewService) StartCasualSession(ctx context.Context, deckIDs []string) (*SessionView, error) {
	if len(deckIDs) == 0 {
		return nil, errors.NewValidationError("deck_ids", "must select at least one deck")
	}

	var decks []*models.Deck
	for _, id := range deckIDs {
		deck, err := s.decks.Load(ctx, id)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		if deck == nil {
			return nil, errors.NewNotFoundError("deck", id)
		}
		deck.Selected = true
		decks = append(decks, deck)
	}

	sess := review.NewCasualSession(decks, s.rng, s.saver, s.now)
	h := s.put(sess)
	h.mu.Lock()
	defer h.mu.Unlock()

	logger.FromContext(ctx).Info("casual session started: session=%s decks=%d cards=%d",
		sess.ID(), len(decks), sess.Remaining())
	return s.view(sess), nil
}

func (s *reviewService) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	h, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return s.view(h.sess), nil
}

func (s *reviewService) Flip(ctx context.Context, sessionID string) (*SessionView, error) {
	h, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.sess.Flip(); err != nil {
		return nil, errors.NewBadRequestError("no card is being presented")
	}
	return s.view(h.sess), nil
}

func (s *reviewService) Answer(ctx context.Context, sessionID string, response scheduler.Response) (*SessionView, error) {
	log := logger.FromContext(ctx)

	h, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	sess := h.sess

	card := sess.Current()
	deck := sess.CurrentDeck()
	if card == nil || deck == nil {
		return nil, errors.NewBadRequestError("no card is being presented")
	}
	cardID, deckID := card.ID, deck.ID

	if err := sess.Answer(response); err != nil {
		return nil, errors.NewBadRequestError("no card is being presented")
	}

	log.Debug("card answered: session=%s card=%s response=%s interval=%d ease=%.2f",
		sessionID, cardID, response, card.IntervalDays, card.Ease)

	// History is best-effort; a failed insert never fails the review.
	if err := s.history.Insert(ctx, deckID, cardID, response, card.IntervalDays, card.Ease); err != nil {
		log.Warn("failed to record review history: %v", err)
	}

	return s.view(sess), nil
}

func (s *reviewService) Restart(ctx context.Context, sessionID string) (*SessionView, error) {
	h, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sess.Restart()
	return s.view(h.sess), nil
}

func (s *reviewService) put(sess *review.Session) *sessionHandle {
	h := &sessionHandle{sess: sess}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID()] = h
	return h
}

func (s *reviewService) get(id string) (*sessionHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.sessions[id]
	if !ok {
		return nil, errors.NewNotFoundError("session", id)
	}
	return h, nil
}

func (s *reviewService) view(sess *review.Session) *SessionView {
	v := &SessionView{
		SessionID: sess.ID(),
		Mode:      sess.Mode().String(),
		State:     sess.State().String(),
		Remaining: sess.Remaining(),
		Flipped:   sess.Flipped(),
	}
	if card := sess.Current(); card != nil {
		v.CardID = card.ID
		v.Front = card.Front
		if sess.Flipped() {
			v.Back = card.Back
		}
	}
	return v
}
