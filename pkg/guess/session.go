package guess

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
)

// PlayerRound is the ModeUser payload of a Session.
type PlayerRound struct {
	secret       int
	attemptsLeft int
}

// ComputerRound is the ModeComputer payload of a Session.
type ComputerRound struct {
	proposal int
}

// Session is one game. Exactly one of player or computer is non-nil once the
// session has been started. The zero value is a StatusCreated session that
// rejects every submission.
//
// A Session is not safe for concurrent use.
type Session struct {
	tier     Tier
	low      int
	high     int
	status   Status
	turns    []Turn
	player   *PlayerRound
	computer *ComputerRound
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) } //nolint:gosec // game randomness

// Start creates an active session for mode and tier. A nil rnd uses the
// package-level generator from math/rand/v2.
func Start(mode Mode, tier Tier, rnd RandomSource) (*Session, error) {
	spec, err := LookupTier(tier)
	if err != nil {
		return nil, err
	}

	s := &Session{
		tier:   tier,
		low:    spec.Low,
		high:   spec.High,
		status: StatusActive,
	}

	switch mode {
	case ModeUser:
		if rnd == nil {
			rnd = globalSource{}
		}
		s.player = &PlayerRound{
			secret:       spec.Low + rnd.IntN(spec.High-spec.Low+1),
			attemptsLeft: spec.Attempts,
		}
	case ModeComputer:
		s.computer = &ComputerRound{proposal: midpoint(spec.Low, spec.High)}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
	}

	return s, nil
}

// SubmitGuess scores a guess in ModeUser. Text that is not an integer inside
// the session range fails with ErrInvalidInput and does not use an attempt.
func (s *Session) SubmitGuess(text string) (GuessResult, error) {
	if err := s.ready(ModeUser); err != nil {
		return GuessResult{}, err
	}

	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return GuessResult{}, fmt.Errorf("%w: %q", ErrNotANumber, text)
	}
	if value < s.low || value > s.high {
		return GuessResult{}, fmt.Errorf("%w: %d is outside %d-%d", ErrOutOfRange, value, s.low, s.high)
	}

	p := s.player
	p.attemptsLeft--

	var fb Feedback
	switch {
	case value < p.secret:
		fb = TooLow
	case value > p.secret:
		fb = TooHigh
	default:
		fb = Correct
	}
	s.turns = append(s.turns, Turn{Value: value, Outcome: string(fb)})

	res := GuessResult{Feedback: fb, AttemptsLeft: p.attemptsLeft}
	switch {
	case fb == Correct:
		s.status = StatusWon
	case p.attemptsLeft == 0:
		s.status = StatusLost
		res.Secret = p.secret
	}
	res.Status = s.status

	return res, nil
}

// SubmitFeedback narrows the range in ModeComputer. Feedback that empties the
// range aborts the session and returns a *ContradictionError; the stored range
// keeps its last consistent bounds.
func (s *Session) SubmitFeedback(sig Signal) (FeedbackResult, error) {
	if err := s.ready(ModeComputer); err != nil {
		return FeedbackResult{}, err
	}

	c := s.computer
	low, high := s.low, s.high

	switch sig {
	case SignalCorrect:
		s.turns = append(s.turns, Turn{Value: c.proposal, Outcome: string(sig)})
		s.status = StatusWon
		return s.feedbackResult(), nil
	case Higher:
		low = c.proposal + 1
	case Lower:
		high = c.proposal - 1
	default:
		return FeedbackResult{}, fmt.Errorf("%w: signal %q", ErrInvalidInput, string(sig))
	}

	s.turns = append(s.turns, Turn{Value: c.proposal, Outcome: string(sig)})

	if low > high {
		s.status = StatusAborted
		return s.feedbackResult(), &ContradictionError{Low: low, High: high}
	}

	s.low, s.high = low, high
	c.proposal = midpoint(low, high)

	return s.feedbackResult(), nil
}

func (s *Session) feedbackResult() FeedbackResult {
	return FeedbackResult{
		Proposal: s.computer.proposal,
		Low:      s.low,
		High:     s.high,
		Status:   s.status,
	}
}

// ready checks that the session accepts a submission for mode.
func (s *Session) ready(mode Mode) error {
	if s.status != StatusActive {
		return fmt.Errorf("%w: session is %s", ErrInvalidState, s.status)
	}
	if s.Mode() != mode {
		return fmt.Errorf("%w: session mode is %s", ErrInvalidState, s.Mode())
	}
	return nil
}

// Mode reports which variant the session runs. It is empty for a zero Session.
func (s *Session) Mode() Mode {
	switch {
	case s.player != nil:
		return ModeUser
	case s.computer != nil:
		return ModeComputer
	default:
		return ""
	}
}

// Tier returns the difficulty the session was started with.
func (s *Session) Tier() Tier { return s.tier }

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// Bounds returns the current inclusive range.
func (s *Session) Bounds() (low, high int) { return s.low, s.high }

// AttemptsLeft returns the remaining budget in ModeUser and 0 otherwise.
func (s *Session) AttemptsLeft() int {
	if s.player == nil {
		return 0
	}
	return s.player.attemptsLeft
}

// Proposal returns the current computer guess in ModeComputer.
func (s *Session) Proposal() (int, bool) {
	if s.computer == nil {
		return 0, false
	}
	return s.computer.proposal, true
}

// Reveal returns the secret once a ModeUser session is lost.
func (s *Session) Reveal() (int, bool) {
	if s.player == nil || s.status != StatusLost {
		return 0, false
	}
	return s.player.secret, true
}

// Turns returns a copy of the accepted submissions in order.
func (s *Session) Turns() []Turn {
	return slices.Clone(s.turns)
}

func midpoint(low, high int) int {
	// Bounds stay positive, so truncating division is floor.
	return (low + high) / 2
}
