package guess

import (
	"fmt"
	"strings"
)

// Mode selects who guesses.
type Mode string

const (
	// ModeUser: the player guesses a hidden number.
	ModeUser Mode = "user"
	// ModeComputer: the engine guesses the player's number by bisection.
	ModeComputer Mode = "computer"
)

// Modes returns both modes in display order.
func Modes() []Mode {
	return []Mode{ModeUser, ModeComputer}
}

// ParseMode converts a case-insensitive mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeUser, ModeComputer:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Label returns the display name of the mode.
func (m Mode) Label() string {
	switch m {
	case ModeUser:
		return "User Guesses"
	case ModeComputer:
		return "Computer Guesses"
	default:
		return string(m)
	}
}

// Status is the lifecycle state of a Session.
type Status int

const (
	StatusCreated Status = iota
	StatusActive
	StatusWon
	StatusLost
	StatusAborted
)

var statusNames = [...]string{"created", "active", "won", "lost", "aborted"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name.
func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("guess: unknown status %q", string(b))
}

// Terminal reports whether the status accepts no further submissions.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost || s == StatusAborted
}

// Feedback answers a player's guess in ModeUser.
type Feedback string

const (
	TooLow  Feedback = "too_low"
	TooHigh Feedback = "too_high"
	Correct Feedback = "correct"
)

// Signal is the oracle's answer to a proposal in ModeComputer.
type Signal string

const (
	Higher        Signal = "higher"
	Lower         Signal = "lower"
	SignalCorrect Signal = "correct"
)

// ParseSignal accepts h/higher, l/lower and c/correct in any case.
func ParseSignal(s string) (Signal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "higher":
		return Higher, nil
	case "l", "lower":
		return Lower, nil
	case "c", "correct":
		return SignalCorrect, nil
	default:
		return "", fmt.Errorf("%w: signal %q (want h, l or c)", ErrInvalidInput, s)
	}
}

// Turn records one accepted submission. Value is the guess in ModeUser or the
// proposal being answered in ModeComputer; Outcome is the Feedback or Signal.
type Turn struct {
	Value   int    `json:"value"`
	Outcome string `json:"outcome"`
}

// GuessResult is the outcome of SubmitGuess.
type GuessResult struct {
	Feedback     Feedback
	AttemptsLeft int
	Status       Status
	// Secret is set only when Status is StatusLost.
	Secret int
}

// FeedbackResult is the outcome of SubmitFeedback.
type FeedbackResult struct {
	Proposal int
	Low      int
	High     int
	Status   Status
}

// RandomSource draws secrets. *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}
