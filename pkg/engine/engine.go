package engine

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/germanamz/guessr/pkg/guess"
	"github.com/google/uuid"
)

// Engine is the composition root that owns game sessions and exposes them
// through a frontend-agnostic API.
type Engine struct {
	cfg    Config
	log    *slog.Logger
	events *EventBus

	rndMu sync.Mutex
	rnd   guess.RandomSource

	mu       sync.Mutex
	sessions map[string]*Session

	statsMu sync.Mutex
	stats   Stats
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithRandom sets the source used to draw secrets, overriding Config.Seed.
func WithRandom(rnd guess.RandomSource) Option {
	return func(e *Engine) { e.rnd = rnd }
}

// Stats tallies finished games.
type Stats struct {
	Won     int `json:"won"`
	Lost    int `json:"lost"`
	Aborted int `json:"aborted"`
}

// Played returns the number of finished games.
func (s Stats) Played() int { return s.Won + s.Lost + s.Aborted }

// New creates an Engine from the given configuration.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		events:   NewEventBus(),
		sessions: make(map[string]*Session),
	}

	if cfg.Seed != 0 {
		e.rnd = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)) //nolint:gosec // reproducible game randomness
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Events returns the engine's event bus.
func (e *Engine) Events() *EventBus { return e.events }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Defaults resolves the mode and tier used when a caller leaves them empty:
// the config's defaults first, then user mode on the easy tier.
func (e *Engine) Defaults() (guess.Mode, guess.Tier) {
	mode, tier := guess.ModeUser, guess.TierEasy
	if m, err := guess.ParseMode(e.cfg.DefaultMode); err == nil {
		mode = m
	}
	if t, err := guess.ParseTier(e.cfg.DefaultTier); err == nil {
		tier = t
	}
	return mode, tier
}

// NewSession starts a game. Empty mode or tier fall back to Defaults.
func (e *Engine) NewSession(mode guess.Mode, tier guess.Tier) (*Session, error) {
	dm, dt := e.Defaults()
	if mode == "" {
		mode = dm
	}
	if tier == "" {
		tier = dt
	}

	game, err := e.start(mode, tier)
	if err != nil {
		return nil, fmt.Errorf("engine: new session: %w", err)
	}

	s := newSession(uuid.NewString(), game, e)

	e.mu.Lock()
	e.sessions[s.id] = s
	e.mu.Unlock()

	e.log.Info("game started", "session", s.id, "mode", mode, "tier", tier)
	s.publish(EventGameStart, s.Snapshot())

	return s, nil
}

// Session returns an existing session by ID.
func (e *Engine) Session(id string) (*Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[id]
	return s, ok
}

// Sessions returns all sessions ordered by start time.
func (e *Engine) Sessions() []*Session {
	e.mu.Lock()
	out := make([]*Session, 0, len(e.sessions))
	for _, s := range e.sessions {
		out = append(out, s)
	}
	e.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt().Before(out[j].StartedAt())
	})

	return out
}

// Reset restarts a session with its original mode and tier, keeping its ID.
func (e *Engine) Reset(id string) (*Session, error) {
	s, ok := e.Session(id)
	if !ok {
		return nil, fmt.Errorf("engine: session %q not found", id)
	}

	if err := s.restart(); err != nil {
		return nil, err
	}

	return s, nil
}

// End forgets a session. Unknown IDs are ignored.
func (e *Engine) End(id string) {
	e.mu.Lock()
	delete(e.sessions, id)
	e.mu.Unlock()
}

// Stats returns the tally of finished games.
func (e *Engine) Stats() Stats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()

	return e.stats
}

// Close releases all sessions and closes every event subscription.
func (e *Engine) Close() error {
	e.mu.Lock()
	clear(e.sessions)
	e.mu.Unlock()

	e.events.Close()
	return nil
}

func (e *Engine) start(mode guess.Mode, tier guess.Tier) (*guess.Session, error) {
	e.rndMu.Lock()
	defer e.rndMu.Unlock()

	return guess.Start(mode, tier, e.rnd)
}

func (e *Engine) record(id string, status guess.Status) {
	e.statsMu.Lock()
	switch status {
	case guess.StatusWon:
		e.stats.Won++
	case guess.StatusLost:
		e.stats.Lost++
	case guess.StatusAborted:
		e.stats.Aborted++
	}
	e.statsMu.Unlock()

	e.log.Info("game over", "session", id, "status", status)
}
