package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/guessr/pkg/engine"
	"github.com/germanamz/guessr/pkg/gametools"
	"github.com/germanamz/guessr/pkg/guess"
)

type keyMap struct {
	Submit key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding { return []key.Binding{k.Submit, k.Quit} }

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var keys = keyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// appModel is the root bubbletea model.
type appModel struct {
	ctx          context.Context
	eng          *engine.Engine
	sess         *engine.Session
	inputBox     inputModel
	statusBar    statusBarModel
	help         help.Model
	transcript   []string
	cancelBridge context.CancelFunc
	width        int
	height       int
}

func newAppModel(ctx context.Context, eng *engine.Engine, sess *engine.Session) appModel {
	m := appModel{
		ctx:      ctx,
		eng:      eng,
		sess:     sess,
		inputBox: newInput(),
		help:     help.New(),
	}
	m.announce()
	m.refresh(time.Now())
	m.statusBar.stats = eng.Stats()

	return m
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m appModel) Init() tea.Cmd {
	// Delay focusing the input so that stale terminal escape-sequence
	// responses (e.g. OSC 11 background-color) are drained first.
	return tea.Batch(
		tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg { return initDrainMsg{} }),
		tickCmd(),
	)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		initMarkdownRenderer(m.width - 4)
		m.inputBox.setWidth(m.width)
		m.statusBar.width = m.width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m.quit()
		}
		var cmd tea.Cmd
		m.inputBox, cmd = m.inputBox.Update(msg)
		return m, cmd

	case initDrainMsg:
		cmd := m.inputBox.enable()
		return m, cmd

	case programReadyMsg:
		m.cancelBridge = startBridge(m.ctx, msg.program, m.eng.Events())
		return m, nil

	case gameEventMsg:
		m.handleEvent(msg.event)
		return m, nil

	case tickMsg:
		m.statusBar.now = time.Time(msg)
		return m, tickCmd()

	case inputSubmitMsg:
		m.handleSubmit(msg.text)
		m.refresh(time.Now())
		if msg.text == "/quit" || msg.text == "/exit" {
			return m.quit()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputBox, cmd = m.inputBox.Update(msg)
	return m, cmd
}

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	inputSection := m.inputBox.View()
	helpSection := dimStyle.Render(m.help.ShortHelpView(keys.ShortHelp()))
	statusSection := m.statusBar.View()

	used := lipgloss.Height(inputSection) + lipgloss.Height(helpSection) + lipgloss.Height(statusSection)
	transcript := tailLines(m.transcript, m.height-used)

	return lipgloss.JoinVertical(lipgloss.Left,
		transcript,
		inputSection,
		helpSection,
		statusSection,
	)
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	if m.cancelBridge != nil {
		m.cancelBridge()
	}
	return m, tea.Quit
}

func (m *appModel) handleSubmit(text string) {
	if strings.HasPrefix(text, "/") {
		m.handleCommand(text)
		return
	}

	m.say(userPrefixStyle.Render("you> ") + text)

	if m.sess.Snapshot().Status.Terminal() {
		m.say(warnStyle.Render("This game is over. Type /new or /reset to play again."))
		return
	}

	switch m.sess.Snapshot().Mode {
	case guess.ModeUser:
		m.playGuess(text)
	case guess.ModeComputer:
		m.playSignal(text)
	}
}

func (m *appModel) handleCommand(text string) {
	fields := strings.Fields(text)

	switch fields[0] {
	case "/quit", "/exit":
		return
	case "/help":
		m.say(renderMarkdown(helpMarkdown))
	case "/reset":
		sess, err := m.eng.Reset(m.sess.ID())
		if err != nil {
			m.sayError(err)
			return
		}
		m.sess = sess
		m.say(dimStyle.Render("Game restarted."))
		m.announce()
	case "/new":
		m.newGame(fields[1:])
	default:
		m.say(warnStyle.Render(fmt.Sprintf("Unknown command %s. Type /help for the list.", truncate(fields[0], 20))))
	}
}

// newGame ends the current game and starts another. Arguments override the
// current mode and tier in any order.
func (m *appModel) newGame(args []string) {
	cur := m.sess.Snapshot()
	mode, tier := cur.Mode, cur.Tier

	for _, arg := range args {
		if md, err := guess.ParseMode(arg); err == nil {
			mode = md
			continue
		}
		t, err := guess.ParseTier(arg)
		if err != nil {
			m.sayError(fmt.Errorf("%q is neither a mode nor a tier", arg))
			return
		}
		tier = t
	}

	sess, err := m.eng.NewSession(mode, tier)
	if err != nil {
		m.sayError(err)
		return
	}
	m.eng.End(m.sess.ID())
	m.sess = sess
	m.announce()
}

func (m *appModel) playGuess(text string) {
	res, err := m.sess.Guess(text)
	if err != nil {
		switch {
		case errors.Is(err, guess.ErrNotANumber):
			m.say(warnStyle.Render("Please enter a valid number."))
		case errors.Is(err, guess.ErrOutOfRange):
			v := m.sess.Snapshot()
			m.say(warnStyle.Render(gametools.PromptMessage(v.Low, v.High) + "."))
		default:
			m.sayError(err)
		}
		return
	}

	msg := gametools.GuessMessage(res)
	switch res.Status {
	case guess.StatusWon:
		m.say(winStyle.Render(msg))
	case guess.StatusLost:
		m.say(lossStyle.Render(msg))
	default:
		m.say(enginePrefixStyle.Render(treeCorner) + fmt.Sprintf("%s %d attempts left.", msg, res.AttemptsLeft))
	}
}

func (m *appModel) playSignal(text string) {
	sig, err := guess.ParseSignal(text)
	if err != nil {
		m.say(warnStyle.Render("Please enter 'h', 'l', or 'c'."))
		return
	}

	res, err := m.sess.Feedback(sig)
	if err != nil {
		if errors.Is(err, guess.ErrContradiction) {
			m.say(lossStyle.Render(gametools.ContradictionMessage))
			return
		}
		m.sayError(err)
		return
	}

	if res.Status == guess.StatusWon {
		m.say(winStyle.Render(gametools.FeedbackMessage(res)))
	} else {
		m.say(enginePrefixStyle.Render(treeCorner) + gametools.FeedbackMessage(res))
	}
}

// announce prints the opening line of the current game.
func (m *appModel) announce() {
	v := m.sess.Snapshot()
	m.say(dimStyle.Render(fmt.Sprintf("New game: %s, %s", v.Mode.Label(), v.Tier.Label())))

	switch v.Mode {
	case guess.ModeUser:
		m.say(enginePrefixStyle.Render(treeCorner) +
			fmt.Sprintf("%s. You have %d attempts.", gametools.PromptMessage(v.Low, v.High), v.AttemptsLeft))
		m.inputBox.setPlaceholder("your guess")
	case guess.ModeComputer:
		m.say(enginePrefixStyle.Render(treeCorner) +
			fmt.Sprintf("Think of a number between %d and %d.", v.Low, v.High))
		m.say(enginePrefixStyle.Render(treeCorner) + gametools.ProposalMessage(v.Proposal))
		m.inputBox.setPlaceholder("h / l / c")
	}
}

// handleEvent applies an engine event delivered by the bridge. The tally and
// the end-of-game summary are only updated here.
func (m *appModel) handleEvent(ev engine.Event) {
	switch ev.Kind {
	case engine.EventGameStart:
		m.statusBar.stats = m.eng.Stats()
	case engine.EventGameEnd:
		m.statusBar.stats = m.eng.Stats()
		v, ok := ev.Data.(engine.View)
		if !ok || ev.SessionID != m.sess.ID() || !v.StartedAt.Equal(m.sess.StartedAt()) {
			return
		}
		m.statusBar.view = v
		m.say(dimStyle.Render(gameSummary(v)))
		m.inputBox.setPlaceholder("/new or /reset")
	}
}

// gameSummary describes a finished game.
func gameSummary(v engine.View) string {
	turns := len(v.Turns)
	plural := "s"
	if turns == 1 {
		plural = ""
	}
	return fmt.Sprintf("Game over: %s after %d turn%s. Type /new or /reset to play again.", v.Status, turns, plural)
}

func (m *appModel) refresh(now time.Time) {
	m.statusBar.view = m.sess.Snapshot()
	if m.statusBar.now.IsZero() {
		m.statusBar.now = now
	}
}

func (m *appModel) say(line string) {
	m.transcript = append(m.transcript, line)
}

func (m *appModel) sayError(err error) {
	m.say(errorBlockStyle.Render("error: " + err.Error()))
}
