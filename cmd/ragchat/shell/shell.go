// Package shell is the top-level application view: a header with the
// application title, the chat component, and a key-hint footer.
package shell

import (
	"strings"

	"ragchat/cmd/ragchat/chat"
	"ragchat/cmd/ragchat/ui"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight = 2
	footerHeight = 2

	DefaultTitle = "Chatbot RAG"

	hintIdle    = "Enter: send | PgUp/PgDn: scroll | Ctrl+C/Esc: quit"
	hintWaiting = "Waiting for reply... | PgUp/PgDn: scroll | Ctrl+C/Esc: quit"
)

type Config struct {
	Title  string
	Styles ui.Styles
}

// Model hosts exactly one chat component.
type Model struct {
	chat   chat.Model
	styles ui.Styles
	title  string

	width  int
	height int
}

func New(c chat.Model, cfg Config) Model {
	title := strings.TrimSpace(cfg.Title)
	if title == "" {
		title = DefaultTitle
	}
	return Model{
		chat:   c,
		styles: cfg.Styles,
		title:  title,
	}
}

func (m Model) Init() tea.Cmd {
	return m.chat.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chat = m.chat.SetSize(msg.Width, msg.Height-headerHeight-footerHeight)
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render(" " + m.title + " "))
	sb.WriteString("\n")
	sb.WriteString(m.styles.RenderDivider(m.width))
	sb.WriteString("\n")

	sb.WriteString(m.chat.View())
	sb.WriteString("\n")

	hint := hintIdle
	if m.chat.InFlight() {
		hint = hintWaiting
	}
	sb.WriteString(m.styles.Footer.Render(hint))

	return sb.String()
}

// Chat exposes the hosted component.
func (m Model) Chat() chat.Model {
	return m.chat
}
