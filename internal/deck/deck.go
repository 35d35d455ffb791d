// Package deck implements the draw session: a shuffled, size-capped
// working set of questions for one category, with single-card reveal.
//
// The session never consults quota state. Gating happens in the caller
// before Start, and each reveal is reported through the OnDraw callback,
// which is what drives the quota tracker.
package deck

import (
	"errors"
	"math/rand/v2"

	"github.com/hansolyoo/cardtalk/internal/cardtalk"
)

// Phase is the draw session lifecycle state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseShuffling Phase = "shuffling"
	PhaseReady     Phase = "ready"
	PhaseRevealed  Phase = "revealed"
)

// DefaultCap limits the working set to the number of cards the deck UI lays out.
const DefaultCap = 12

var (
	// ErrNotReady is returned for reveals outside the Ready phase and
	// reshuffles before the first Start.
	ErrNotReady = errors.New("deck is not ready")
	// ErrUnknownQuestion is returned for reveals of a card that is not in
	// the current working set.
	ErrUnknownQuestion = errors.New("question is not in the working set")
)

// Session is a single-owner draw state machine:
//
//	Idle -> Shuffling -> Ready -> Revealed -> Shuffling -> Ready -> ...
//
// Idle is entered only before the first Start and is otherwise unreachable.
type Session struct {
	cap    int
	onDraw func(cardtalk.Question)

	phase      Phase
	categoryID string
	workingSet []cardtalk.Question
	revealed   *cardtalk.Question
}

// New creates an idle session. onDraw may be nil; cap <= 0 falls back to
// DefaultCap.
func New(cap int, onDraw func(cardtalk.Question)) *Session {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &Session{cap: cap, onDraw: onDraw, phase: PhaseIdle}
}

// Start filters pool down to categoryID, deals a fresh working set and
// enters Ready.
func (s *Session) Start(categoryID string, pool []cardtalk.Question) {
	s.categoryID = categoryID
	s.deal(pool)
}

// Reshuffle discards the current selection and deals a fresh working set
// from pool, which is re-filtered in case the catalog changed. Valid from
// Ready or Revealed.
func (s *Session) Reshuffle(pool []cardtalk.Question) error {
	if s.phase != PhaseReady && s.phase != PhaseRevealed {
		return ErrNotReady
	}
	s.deal(pool)
	return nil
}

func (s *Session) deal(pool []cardtalk.Question) {
	s.phase = PhaseShuffling
	s.revealed = nil

	filtered := make([]cardtalk.Question, 0, len(pool))
	for _, q := range pool {
		if q.CategoryID == s.categoryID {
			filtered = append(filtered, q)
		}
	}

	// Fisher–Yates permutation: every question has equal probability of
	// landing in any position, including the surviving first cap slots.
	rand.Shuffle(len(filtered), func(i, j int) {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	})
	if len(filtered) > s.cap {
		filtered = filtered[:s.cap]
	}

	// The working set is replaced wholesale, never mutated in place.
	s.workingSet = filtered
	s.phase = PhaseReady
}

// Reveal turns over the card with the given id and reports the draw
// exactly once through the OnDraw callback. A reveal during Shuffling is
// silently ignored; any other phase but Ready is an error.
func (s *Session) Reveal(questionID string) error {
	switch s.phase {
	case PhaseShuffling:
		return nil
	case PhaseReady:
	default:
		return ErrNotReady
	}

	for i := range s.workingSet {
		if s.workingSet[i].ID == questionID {
			q := s.workingSet[i]
			s.revealed = &q
			s.phase = PhaseRevealed
			if s.onDraw != nil {
				s.onDraw(q)
			}
			return nil
		}
	}
	return ErrUnknownQuestion
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// CategoryID returns the category selected by the last Start.
func (s *Session) CategoryID() string { return s.categoryID }

// WorkingSet returns the current capped shuffled subset. The returned
// slice is the session's own; callers must not mutate it.
func (s *Session) WorkingSet() []cardtalk.Question { return s.workingSet }

// Revealed returns the currently revealed question, if any.
func (s *Session) Revealed() (cardtalk.Question, bool) {
	if s.revealed == nil {
		return cardtalk.Question{}, false
	}
	return *s.revealed, true
}
