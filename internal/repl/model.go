package repl

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactbook/internal/command"
)

// entry is one transcript line group: an echoed input or a reply.
type entry struct {
	text string
	kind command.Kind
	echo bool
}

// Model is the Bubble Tea model for the interactive session.
type Model struct {
	exec       Executor
	input      textinput.Model
	help       help.Model
	keys       keyMap
	transcript []entry
	history    []string
	histIdx    int // Equals len(history) when not browsing
	width      int
	height     int
	quitting   bool
}

// NewModel creates a Model that sends submitted lines to exec.
func NewModel(exec Executor) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type a command, e.g. help"
	ti.Focus()

	return Model{
		exec:       exec,
		input:      ti,
		help:       help.New(),
		keys:       defaultKeys(),
		transcript: []entry{{text: Banner, kind: command.KindInfo}},
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.transcript = append(m.transcript, entry{text: Farewell, kind: command.KindInfo})
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Prev):
			m.recall(-1)
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.recall(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the current input line. Blank lines are ignored.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}

	m.history = append(m.history, line)
	m.histIdx = len(m.history)

	reply := m.exec.Execute(line)
	m.transcript = append(m.transcript,
		entry{text: m.input.Prompt + line, echo: true},
		entry{text: reply.Text, kind: reply.Kind},
	)
	if reply.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// recall moves through submitted lines; moving past the newest clears the input.
func (m *Model) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	m.histIdx = min(max(m.histIdx+step, 0), len(m.history))
	if m.histIdx == len(m.history) {
		m.input.Reset()
		return
	}
	m.input.SetValue(m.history[m.histIdx])
	m.input.CursorEnd()
}

// View renders the title, the tail of the transcript, the input and help.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("contactbook"))
	b.WriteString("\n\n")

	lines := m.transcriptLines()
	if m.height > 0 {
		// Title, blank line, input and help take four rows.
		if room := m.height - 4; room >= 0 && len(lines) > room {
			lines = lines[len(lines)-room:]
		}
	}
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\n")
	}

	if m.quitting {
		return b.String()
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// transcriptLines renders the transcript one terminal line per element.
func (m Model) transcriptLines() []string {
	var out []string
	for _, e := range m.transcript {
		style := replyStyle(e.kind)
		if e.echo {
			style = echoStyle
		}
		for _, l := range strings.Split(e.text, "\n") {
			out = append(out, style.Render(l))
		}
	}
	return out
}
