package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/germanamz/guessr/pkg/engine"
	"github.com/germanamz/guessr/pkg/guess"
	"github.com/mattn/go-runewidth"
)

// statusBarModel shows the game parameters, the running tally and the time
// spent on the current game.
type statusBarModel struct {
	view  engine.View
	stats engine.Stats
	now   time.Time
	width int
}

func (m statusBarModel) View() string {
	if m.view.ID == "" {
		return ""
	}

	parts := []string{
		m.view.Mode.Label(),
		m.view.Tier.Label(),
		fmt.Sprintf("range %d-%d", m.view.Low, m.view.High),
	}
	if m.view.Mode == guess.ModeUser {
		parts = append(parts, fmt.Sprintf("attempts %d", m.view.AttemptsLeft))
	}
	parts = append(parts,
		fmt.Sprintf("W%d L%d A%d", m.stats.Won, m.stats.Lost, m.stats.Aborted),
	)
	if !m.now.IsZero() && m.now.After(m.view.StartedAt) {
		parts = append(parts, fmtDuration(m.now.Sub(m.view.StartedAt)))
	}

	line := " " + strings.Join(parts, " · ")
	if m.width > 0 {
		line = runewidth.Truncate(line, m.width, "…")
	}

	return statusStyle.Render(line)
}
