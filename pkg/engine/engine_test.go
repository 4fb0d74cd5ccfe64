package engine

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/germanamz/guessr/pkg/guess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always draws the same offset from the range start.
type fixedSource int

func (f fixedSource) IntN(int) int { return int(f) }

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	eng, err := New(DefaultConfig(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })

	return eng
}

// drain collects every event already buffered in sub.
func drain(sub *Subscription) []Event {
	var out []Event
	for {
		select {
		case e := <-sub.C:
			out = append(out, e)
		default:
			return out
		}
	}
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func TestEngine_InvalidConfig(t *testing.T) {
	_, err := New(Config{DefaultTier: "brutal"})
	assert.ErrorIs(t, err, guess.ErrUnknownTier)
}

func TestEngine_NewSessionDefaults(t *testing.T) {
	eng := newTestEngine(t)

	sess, err := eng.NewSession("", "")
	require.NoError(t, err)

	v := sess.Snapshot()
	assert.Equal(t, guess.ModeUser, v.Mode)
	assert.Equal(t, guess.TierEasy, v.Tier)
	assert.Equal(t, guess.StatusActive, v.Status)
	assert.Equal(t, 5, v.AttemptsLeft)
	assert.Zero(t, v.Secret)
	assert.NotEmpty(t, sess.ID())

	got, ok := eng.Session(sess.ID())
	require.True(t, ok)
	assert.Same(t, sess, got)
}

func TestEngine_ConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultMode = "computer"
	cfg.DefaultTier = "hard"

	eng, err := New(cfg)
	require.NoError(t, err)

	sess, err := eng.NewSession("", "")
	require.NoError(t, err)

	v := sess.Snapshot()
	assert.Equal(t, guess.ModeComputer, v.Mode)
	assert.Equal(t, 50, v.Proposal)
	assert.Equal(t, 100, v.High)
}

func TestEngine_NewSessionUnknownMode(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.NewSession("spectator", guess.TierEasy)
	require.ErrorIs(t, err, guess.ErrUnknownMode)
	assert.Empty(t, eng.Sessions())
}

func TestEngine_SeedIsReproducible(t *testing.T) {
	play := func() View {
		cfg := DefaultConfig()
		cfg.Seed = 42
		eng, err := New(cfg)
		require.NoError(t, err)

		sess, err := eng.NewSession(guess.ModeUser, guess.TierEasy)
		require.NoError(t, err)
		for sess.Snapshot().Status == guess.StatusActive {
			_, err := sess.Guess("1")
			require.NoError(t, err)
		}
		return sess.Snapshot()
	}

	a, b := play(), play()
	assert.Equal(t, a.Secret, b.Secret)
	assert.Equal(t, a.Turns, b.Turns)
}

func TestSession_GuessEvents(t *testing.T) {
	eng := newTestEngine(t, WithRandom(fixedSource(6))) // secret 7
	sub := eng.Events().Subscribe(32)
	defer eng.Events().Unsubscribe(sub)

	sess, err := eng.NewSession(guess.ModeUser, guess.TierEasy)
	require.NoError(t, err)

	for _, g := range []string{"5", "9", "7"} {
		_, err := sess.Guess(g)
		require.NoError(t, err)
	}

	events := drain(sub)
	assert.Equal(t, []EventKind{EventGameStart, EventGuess, EventGuess, EventGuess, EventGameEnd}, kinds(events))

	last, ok := events[len(events)-1].Data.(View)
	require.True(t, ok)
	assert.Equal(t, guess.StatusWon, last.Status)
	assert.Equal(t, sess.ID(), events[len(events)-1].SessionID)

	assert.Equal(t, Stats{Won: 1}, eng.Stats())
}

func TestSession_InvalidGuessPublishesError(t *testing.T) {
	eng := newTestEngine(t, WithRandom(fixedSource(0)))
	sess, err := eng.NewSession(guess.ModeUser, guess.TierEasy)
	require.NoError(t, err)

	sub := eng.Events().Subscribe(8)
	defer eng.Events().Unsubscribe(sub)

	_, err = sess.Guess("ten")
	require.ErrorIs(t, err, guess.ErrInvalidInput)
	assert.Contains(t, err.Error(), sess.ID())

	events := drain(sub)
	require.Len(t, events, 1)
	assert.Equal(t, EventError, events[0].Kind)
	assert.Equal(t, 5, sess.Snapshot().AttemptsLeft)
}

func TestSession_LossRevealsSecret(t *testing.T) {
	eng := newTestEngine(t, WithRandom(fixedSource(0))) // secret 1
	sess, err := eng.NewSession(guess.ModeUser, guess.TierMedium)
	require.NoError(t, err)

	var res guess.GuessResult
	for _, g := range []string{"50", "49", "48", "47", "46", "45", "44"} {
		res, err = sess.Guess(g)
		require.NoError(t, err)
	}

	assert.Equal(t, guess.StatusLost, res.Status)
	assert.Equal(t, 1, res.Secret)
	assert.Equal(t, 1, sess.Snapshot().Secret)
	assert.Equal(t, Stats{Lost: 1}, eng.Stats())

	_, err = sess.Guess("1")
	assert.ErrorIs(t, err, guess.ErrInvalidState)
}

func TestSession_FeedbackContradictionAborts(t *testing.T) {
	eng := newTestEngine(t)
	sub := eng.Events().Subscribe(32)
	defer eng.Events().Unsubscribe(sub)

	sess, err := eng.NewSession(guess.ModeComputer, guess.TierEasy)
	require.NoError(t, err)

	_, err = sess.Feedback(guess.Lower) // 1-4, proposal 2
	require.NoError(t, err)
	_, err = sess.Feedback(guess.Lower) // 1-1, proposal 1
	require.NoError(t, err)

	res, err := sess.Feedback(guess.Lower)
	require.ErrorIs(t, err, guess.ErrContradiction)
	assert.Equal(t, guess.StatusAborted, res.Status)

	assert.Equal(t,
		[]EventKind{EventGameStart, EventFeedback, EventFeedback, EventGameEnd, EventError},
		kinds(drain(sub)))
	assert.Equal(t, Stats{Aborted: 1}, eng.Stats())
}

func TestEngine_Reset(t *testing.T) {
	eng := newTestEngine(t)
	sess, err := eng.NewSession(guess.ModeComputer, guess.TierHard)
	require.NoError(t, err)

	_, err = sess.Feedback(guess.SignalCorrect)
	require.NoError(t, err)
	require.Equal(t, guess.StatusWon, sess.Snapshot().Status)

	again, err := eng.Reset(sess.ID())
	require.NoError(t, err)
	assert.Same(t, sess, again)

	v := again.Snapshot()
	assert.Equal(t, guess.StatusActive, v.Status)
	assert.Equal(t, guess.ModeComputer, v.Mode)
	assert.Equal(t, guess.TierHard, v.Tier)
	assert.Equal(t, 50, v.Proposal)
	assert.Empty(t, v.Turns)

	_, err = eng.Reset("missing")
	assert.Error(t, err)
}

func TestSession_EventsFollowGameOrderUnderReset(t *testing.T) {
	eng := newTestEngine(t, WithRandom(fixedSource(6))) // secret 7
	sub := eng.Events().Subscribe(4096)
	defer eng.Events().Unsubscribe(sub)

	sess, err := eng.NewSession(guess.ModeUser, guess.TierEasy)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Go(func() {
		for range 300 {
			_, _ = sess.Guess("1")
		}
	})
	wg.Go(func() {
		for range 150 {
			_, _ = eng.Reset(sess.ID())
		}
	})
	wg.Wait()

	events := drain(sub)
	require.Zero(t, sub.Dropped())

	var current time.Time
	for i, e := range events {
		v, ok := e.Data.(View)
		if !ok {
			continue
		}
		if e.Kind == EventGameStart {
			require.False(t, v.StartedAt.Before(current), "event %d: restart went back in time", i)
			current = v.StartedAt
			continue
		}
		require.True(t, v.StartedAt.Equal(current), "event %d (%s) belongs to an earlier game", i, e.Kind)
	}
}

func TestEngine_SessionsAndEnd(t *testing.T) {
	eng := newTestEngine(t)

	a, err := eng.NewSession(guess.ModeUser, guess.TierEasy)
	require.NoError(t, err)
	b, err := eng.NewSession(guess.ModeComputer, guess.TierEasy)
	require.NoError(t, err)

	assert.Len(t, eng.Sessions(), 2)

	eng.End(a.ID())
	sessions := eng.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, b.ID(), sessions[0].ID())

	eng.End("unknown")
	assert.Len(t, eng.Sessions(), 1)
}

func TestEngine_LogsLifecycle(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	eng := newTestEngine(t, WithLogger(log), WithRandom(fixedSource(1)))
	sess, err := eng.NewSession(guess.ModeUser, guess.TierEasy)
	require.NoError(t, err)

	_, err = sess.Guess("2")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "game started")
	assert.Contains(t, out, "game over")
	assert.Contains(t, out, "status=won")
	assert.NotContains(t, out, "level=DEBUG")
}

func TestView_JSON(t *testing.T) {
	eng := newTestEngine(t)
	sess, err := eng.NewSession(guess.ModeComputer, guess.TierMedium)
	require.NoError(t, err)

	b, err := json.Marshal(sess.Snapshot())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "computer", decoded["mode"])
	assert.Equal(t, "active", decoded["status"])
	assert.InDelta(t, 25, decoded["proposal"], 0)
	assert.NotContains(t, decoded, "secret")
}
