package guess

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports guess or signal text that cannot be used. The
	// session is left untouched and the caller may retry.
	ErrInvalidInput = errors.New("guess: invalid input")

	// ErrNotANumber and ErrOutOfRange refine ErrInvalidInput for guesses.
	ErrNotANumber = fmt.Errorf("%w: not a number", ErrInvalidInput)
	ErrOutOfRange = fmt.Errorf("%w: out of range", ErrInvalidInput)

	// ErrInvalidState reports a submission against a session that is not
	// active, or against the wrong mode. Start a new session to continue.
	ErrInvalidState = errors.New("guess: invalid state")

	// ErrContradiction reports oracle feedback that leaves no candidate
	// number. The session is aborted.
	ErrContradiction = errors.New("guess: contradictory feedback")

	ErrUnknownMode = errors.New("guess: unknown mode")
	ErrUnknownTier = errors.New("guess: unknown tier")
)

// ContradictionError carries the crossed bounds that triggered an abort.
type ContradictionError struct {
	Low  int
	High int
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("%s: low %d exceeds high %d", ErrContradiction, e.Low, e.High)
}

// Is makes errors.Is(err, ErrContradiction) hold.
func (e *ContradictionError) Is(target error) bool {
	return target == ErrContradiction
}
