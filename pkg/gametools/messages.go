package gametools

import (
	"fmt"

	"github.com/germanamz/guessr/pkg/guess"
)

// ContradictionMessage is shown when oracle feedback leaves no candidate.
const ContradictionMessage = "Hmm, something doesn't add up. Let's restart."

// GuessMessage renders the player-facing text for a guess result.
func GuessMessage(res guess.GuessResult) string {
	switch {
	case res.Feedback == guess.Correct:
		return "Correct! You win!"
	case res.Status == guess.StatusLost:
		return fmt.Sprintf("Out of attempts! The number was %d.", res.Secret)
	case res.Feedback == guess.TooLow:
		return "Too low!"
	default:
		return "Too high!"
	}
}

// FeedbackMessage renders the engine's reply to an oracle signal.
func FeedbackMessage(res guess.FeedbackResult) string {
	if res.Status == guess.StatusWon {
		return "Yay! I guessed it!"
	}
	return ProposalMessage(res.Proposal)
}

// ProposalMessage asks the oracle about a proposal.
func ProposalMessage(proposal int) string {
	return fmt.Sprintf("Is your number %d? (h = higher, l = lower, c = correct)", proposal)
}

// PromptMessage is the opening line of a user-mode game.
func PromptMessage(low, high int) string {
	return fmt.Sprintf("Guess a number between %d and %d", low, high)
}
