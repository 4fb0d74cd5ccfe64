package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const inputCharLimit = 64

// inputModel wraps a single-line text input in a rounded border box.
type inputModel struct {
	textinput textinput.Model
	enabled   bool
	width     int
}

func newInput() inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = inputCharLimit
	// Don't focus yet; the terminal may still be sending OSC responses that
	// bubbletea misreads as key events. appModel focuses after a drain delay.

	return inputModel{textinput: ti}
}

func (m inputModel) Update(msg tea.Msg) (inputModel, tea.Cmd) {
	if !m.enabled {
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		text := strings.TrimSpace(m.textinput.Value())
		if text == "" {
			return m, nil
		}
		m.textinput.Reset()
		return m, func() tea.Msg { return inputSubmitMsg{text: text} }
	}

	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	border := focusedBorder
	if !m.enabled {
		border = disabledBorder
	}
	innerWidth := max(m.width-4, 10) // account for border padding

	return border.Width(innerWidth).Render(m.textinput.View())
}

func (m *inputModel) setWidth(w int) {
	m.width = w
}

func (m *inputModel) setPlaceholder(text string) {
	m.textinput.Placeholder = text
}

func (m *inputModel) enable() tea.Cmd {
	m.enabled = true
	return m.textinput.Focus()
}
