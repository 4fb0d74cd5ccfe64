// Package gametools exposes engine operations as toolbox tools so that any
// tool-calling frontend (an MCP client, a script) can play. Inputs and outputs
// are JSON; outputs embed the session View.
package gametools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/germanamz/guessr/pkg/engine"
	"github.com/germanamz/guessr/pkg/guess"
	"github.com/germanamz/guessr/pkg/tools/toolbox"
)

// Tools binds the game tools to an engine.
type Tools struct {
	eng *engine.Engine
}

// New creates Tools backed by eng.
func New(eng *engine.Engine) *Tools {
	return &Tools{eng: eng}
}

// Tools returns a ToolBox with guess_start, guess_submit, guess_feedback,
// guess_status, guess_reset and guess_stats.
func (t *Tools) Tools() *toolbox.ToolBox {
	tb := toolbox.New()

	tb.Register(
		toolbox.Tool{
			Name:        "guess_start",
			Description: "Start a number-guessing game. mode is \"user\" (you guess a hidden number) or \"computer\" (the engine guesses yours); tier is easy (1-10, 5 attempts), medium (1-50, 7) or hard (1-100, 10). Omitted fields use the configured defaults.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"mode":{"type":"string","enum":["user","computer"]},"tier":{"type":"string","enum":["easy","medium","hard"]}}}`),
			Handler:     t.handleStart,
		},
		toolbox.Tool{
			Name:        "guess_submit",
			Description: "Submit a guess in a user-mode game. Returns too_low, too_high or correct and the remaining attempts; the secret is revealed when attempts run out.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"session_id":{"type":"string"},"guess":{"type":"string","description":"Integer within the game range"}},"required":["session_id","guess"]}`),
			Handler:     t.handleSubmit,
		},
		toolbox.Tool{
			Name:        "guess_feedback",
			Description: "Answer the engine's proposal in a computer-mode game with higher, lower or correct (h, l, c also accepted). Returns the next proposal.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"session_id":{"type":"string"},"signal":{"type":"string"}},"required":["session_id","signal"]}`),
			Handler:     t.handleFeedback,
		},
		toolbox.Tool{
			Name:        "guess_status",
			Description: "Show the current state of a game.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"session_id":{"type":"string"}},"required":["session_id"]}`),
			Handler:     t.handleStatus,
		},
		toolbox.Tool{
			Name:        "guess_reset",
			Description: "Restart a game with the same mode and tier.",
			InputSchema: json.RawMessage(`{"type":"object","properties":{"session_id":{"type":"string"}},"required":["session_id"]}`),
			Handler:     t.handleReset,
		},
		toolbox.Tool{
			Name:        "guess_stats",
			Description: "Show how many games were won, lost and aborted.",
			InputSchema: json.RawMessage(`{"type":"object"}`),
			Handler:     t.handleStats,
		},
	)

	return tb
}

type startInput struct {
	Mode string `json:"mode"`
	Tier string `json:"tier"`
}

type sessionInput struct {
	SessionID string `json:"session_id"`
}

type submitInput struct {
	SessionID string `json:"session_id"`
	Guess     string `json:"guess"`
}

type feedbackInput struct {
	SessionID string `json:"session_id"`
	Signal    string `json:"signal"`
}

// submitOutput is returned by guess_submit.
type submitOutput struct {
	Feedback guess.Feedback `json:"feedback"`
	Message  string         `json:"message"`
	Session  engine.View    `json:"session"`
}

// feedbackOutput is returned by guess_feedback.
type feedbackOutput struct {
	Message string      `json:"message"`
	Session engine.View `json:"session"`
}

func (t *Tools) handleStart(_ context.Context, input json.RawMessage) (string, error) {
	var in startInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("guess_start: invalid input: %w", err)
	}

	var (
		mode guess.Mode
		tier guess.Tier
		err  error
	)
	if in.Mode != "" {
		if mode, err = guess.ParseMode(in.Mode); err != nil {
			return "", fmt.Errorf("guess_start: %w", err)
		}
	}
	if in.Tier != "" {
		if tier, err = guess.ParseTier(in.Tier); err != nil {
			return "", fmt.Errorf("guess_start: %w", err)
		}
	}

	sess, err := t.eng.NewSession(mode, tier)
	if err != nil {
		return "", fmt.Errorf("guess_start: %w", err)
	}

	return encode(sess.Snapshot())
}

func (t *Tools) handleSubmit(_ context.Context, input json.RawMessage) (string, error) {
	var in submitInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("guess_submit: invalid input: %w", err)
	}

	sess, err := t.session("guess_submit", in.SessionID)
	if err != nil {
		return "", err
	}

	res, err := sess.Guess(in.Guess)
	if err != nil {
		return "", fmt.Errorf("guess_submit: %w", err)
	}

	return encode(submitOutput{
		Feedback: res.Feedback,
		Message:  GuessMessage(res),
		Session:  sess.Snapshot(),
	})
}

func (t *Tools) handleFeedback(_ context.Context, input json.RawMessage) (string, error) {
	var in feedbackInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("guess_feedback: invalid input: %w", err)
	}

	sess, err := t.session("guess_feedback", in.SessionID)
	if err != nil {
		return "", err
	}

	sig, err := guess.ParseSignal(in.Signal)
	if err != nil {
		return "", fmt.Errorf("guess_feedback: %w", err)
	}

	res, err := sess.Feedback(sig)
	if err != nil {
		if errors.Is(err, guess.ErrContradiction) {
			return "", fmt.Errorf("guess_feedback: %s: %w", ContradictionMessage, err)
		}
		return "", fmt.Errorf("guess_feedback: %w", err)
	}

	return encode(feedbackOutput{
		Message: FeedbackMessage(res),
		Session: sess.Snapshot(),
	})
}

func (t *Tools) handleStatus(_ context.Context, input json.RawMessage) (string, error) {
	var in sessionInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("guess_status: invalid input: %w", err)
	}

	sess, err := t.session("guess_status", in.SessionID)
	if err != nil {
		return "", err
	}

	return encode(sess.Snapshot())
}

func (t *Tools) handleReset(_ context.Context, input json.RawMessage) (string, error) {
	var in sessionInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("guess_reset: invalid input: %w", err)
	}

	sess, err := t.eng.Reset(in.SessionID)
	if err != nil {
		return "", fmt.Errorf("guess_reset: %w", err)
	}

	return encode(sess.Snapshot())
}

func (t *Tools) handleStats(_ context.Context, _ json.RawMessage) (string, error) {
	return encode(t.eng.Stats())
}

func (t *Tools) session(tool, id string) (*engine.Session, error) {
	if id == "" {
		return nil, fmt.Errorf("%s: session_id is required", tool)
	}

	sess, ok := t.eng.Session(id)
	if !ok {
		return nil, fmt.Errorf("%s: session %q not found", tool, id)
	}

	return sess, nil
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	return string(b), nil
}
