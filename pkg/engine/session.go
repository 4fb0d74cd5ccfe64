package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/germanamz/guessr/pkg/guess"
)

// Session wraps one game for a frontend. It serializes submissions and
// publishes an event for each of them. Events are published while mu is held
// so subscribers see a session's events in the order the game changed.
type Session struct {
	id     string
	engine *Engine

	mu        sync.Mutex
	game      *guess.Session
	startedAt time.Time
}

// View is a read-only snapshot of a session, safe to render or encode.
type View struct {
	ID           string       `json:"id"`
	Mode         guess.Mode   `json:"mode"`
	Tier         guess.Tier   `json:"tier"`
	Status       guess.Status `json:"status"`
	Low          int          `json:"low"`
	High         int          `json:"high"`
	AttemptsLeft int          `json:"attempts_left"`
	Proposal     int          `json:"proposal,omitempty"`
	Secret       int          `json:"secret,omitempty"` // Only after a loss.
	Turns        []guess.Turn `json:"turns"`
	StartedAt    time.Time    `json:"started_at"`
}

func newSession(id string, game *guess.Session, e *Engine) *Session {
	return &Session{
		id:        id,
		engine:    e,
		game:      game,
		startedAt: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// StartedAt returns when the current game began.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.startedAt
}

// Snapshot returns the current View.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view()
}

// Guess submits a player guess. Invalid input leaves the game untouched.
func (s *Session) Guess(text string) (guess.GuessResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.game.SubmitGuess(text)
	if err != nil {
		return res, s.fail("guess", err)
	}

	v := s.view()
	s.engine.log.Debug("guess", "session", s.id, "feedback", res.Feedback, "attempts_left", res.AttemptsLeft)
	s.publish(EventGuess, v)
	s.finish(res.Status, v)

	return res, nil
}

// Feedback submits an oracle signal. A contradiction aborts the game and is
// returned together with the final result.
func (s *Session) Feedback(sig guess.Signal) (guess.FeedbackResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.game.SubmitFeedback(sig)
	v := s.view()
	if err != nil {
		if res.Status == guess.StatusAborted {
			s.finish(res.Status, v)
		}
		return res, s.fail("feedback", err)
	}

	s.engine.log.Debug("feedback", "session", s.id, "signal", sig, "proposal", res.Proposal, "low", res.Low, "high", res.High)
	s.publish(EventFeedback, v)
	s.finish(res.Status, v)

	return res, nil
}

// restart replaces the game with a fresh one of the same mode and tier.
func (s *Session) restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := s.engine.start(s.game.Mode(), s.game.Tier())
	if err != nil {
		return fmt.Errorf("engine: reset session %s: %w", s.id, err)
	}
	s.game = game
	s.startedAt = time.Now()
	v := s.view()

	s.engine.log.Info("game restarted", "session", s.id, "mode", v.Mode, "tier", v.Tier)
	s.publish(EventGameStart, v)

	return nil
}

// finish, fail and publish must be called with mu held.
func (s *Session) finish(status guess.Status, v View) {
	if !status.Terminal() {
		return
	}
	s.engine.record(s.id, status)
	s.publish(EventGameEnd, v)
}

func (s *Session) fail(op string, err error) error {
	s.engine.log.Debug(op+" rejected", "session", s.id, "error", err)
	s.publish(EventError, err)

	return fmt.Errorf("engine: session %s: %s: %w", s.id, op, err)
}

func (s *Session) publish(kind EventKind, data any) {
	s.engine.events.Publish(Event{
		Kind:      kind,
		SessionID: s.id,
		Timestamp: time.Now(),
		Data:      data,
	})
}

// view builds a View. Must be called with mu held.
func (s *Session) view() View {
	g := s.game
	low, high := g.Bounds()
	v := View{
		ID:           s.id,
		Mode:         g.Mode(),
		Tier:         g.Tier(),
		Status:       g.Status(),
		Low:          low,
		High:         high,
		AttemptsLeft: g.AttemptsLeft(),
		Turns:        g.Turns(),
		StartedAt:    s.startedAt,
	}
	if p, ok := g.Proposal(); ok {
		v.Proposal = p
	}
	if secret, ok := g.Reveal(); ok {
		v.Secret = secret
	}
	return v
}
