// Package tui is the full-screen interactive proof builder. One
// script.Session drives the proof; the viewport shows the rendered ledger
// and the input line accepts the same commands as the REPL.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fitchkit/fitch/internal/render"
	"github.com/fitchkit/fitch/internal/script"
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	styleHint  = lipgloss.NewStyle().Faint(true)
)

const helpText = `Commands
  name <text>             goal <formula>          premise <formula>
  assume <formula>        close                   reit <line>
  andintro <l1> <l2>      andelim <line>          orintro <formula>, <line>
  orelim <line> <b...>    impintro <block>        impelim <l1> <l2>
  notintro <block>        notelim <l1> <l2>       explosion <formula>
  iffintro <b1> <b2>      iffelim <l1> <l2>

Formulas use & | -> <-> ~ or the words and, or, implies, iff, not.
A trailing "quoted string" becomes the line's comment.

help toggles this screen, quit exits, esc or ctrl+c quits.
`

const (
	headerLines = 2
	footerLines = 3
)

// Model is the bubbletea model for the proof builder.
type Model struct {
	session *script.Session

	input    textinput.Model
	viewport viewport.Model

	history []string
	histIdx int

	lastEcho string
	lastErr  string

	showHelp bool
	ready    bool
	width    int
	height   int
	quitting bool
}

// New builds the model around an existing session, so a REPL transcript or
// loaded proof can be continued on screen.
func New(session *script.Session) Model {
	ti := textinput.New()
	ti.Prompt = "fitch> "
	ti.Focus()
	ti.CharLimit = 256

	return Model{
		session: session,
		input:   ti,
	}
}

// Run drives the model on the alternate screen until the user quits.
func Run(session *script.Session) error {
	_, err := tea.NewProgram(New(session), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vh := m.height - headerLines - footerLines
		if vh < 1 {
			vh = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vh)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vh
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m.exec()
		case "up":
			m.recall(-1)
			return m, nil
		case "down":
			m.recall(1)
			return m, nil
		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading...\n"
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("fitch proof builder"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

func (m Model) exec() (tea.Model, tea.Cmd) {
	cmd := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if cmd == "" {
		if m.showHelp {
			m.showHelp = false
			m.refresh()
		}
		return m, nil
	}

	m.history = append(m.history, cmd)
	m.histIdx = len(m.history)

	switch cmd {
	case "quit", "exit":
		m.quitting = true
		return m, tea.Quit
	case "help":
		m.showHelp = !m.showHelp
		m.lastEcho, m.lastErr = "", ""
		m.refresh()
		return m, nil
	}

	m.showHelp = false
	echo, err := m.session.Exec(cmd)
	if err != nil {
		m.lastEcho, m.lastErr = "", err.Error()
	} else {
		m.lastEcho, m.lastErr = echo, ""
	}
	m.refresh()
	m.viewport.GotoBottom()
	return m, nil
}

// recall moves through the command history; past the newest entry the
// input clears.
func (m *Model) recall(dir int) {
	if len(m.history) == 0 {
		return
	}
	m.histIdx += dir
	if m.histIdx < 0 {
		m.histIdx = 0
	}
	if m.histIdx >= len(m.history) {
		m.histIdx = len(m.history)
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.histIdx])
	m.input.CursorEnd()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	if m.showHelp {
		m.viewport.SetContent(helpText)
		return
	}
	p := m.session.Proof()
	if p == nil {
		m.viewport.SetContent(styleHint.Render("No goal yet. Start with: goal <formula>") + "\n")
		return
	}
	m.viewport.SetContent(render.Text(p, render.TextOptions{Styled: true}))
}

func (m Model) statusLine() string {
	if m.lastErr != "" {
		return render.StyleErr.Render("✗ " + m.lastErr)
	}
	if m.lastEcho != "" {
		return render.StyleOK.Render(m.lastEcho)
	}
	if p := m.session.Proof(); p != nil && p.IsComplete() {
		return render.StyleOK.Render("Proof complete ✓")
	}
	return styleHint.Render("help for commands, quit to exit")
}
