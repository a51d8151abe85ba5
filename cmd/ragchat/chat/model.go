// Package chat is the interactive chat component: it owns the transcript,
// the draft being typed and the in-flight flag, and performs the single
// network call per submit.
package chat

import (
	"context"
	"errors"

	"ragchat/cmd/ragchat/ui"
	"ragchat/internal/conversation"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

const (
	defaultWidth  = 80
	defaultHeight = 20

	// inputHeight is the bordered single-line input box.
	inputHeight = 3
)

var errNoClient = errors.New("no chat backend configured")

// Config holds configuration for the chat component.
type Config struct {
	Placeholder    string
	RenderMarkdown bool
	Styles         ui.Styles
	Logger         *zap.Logger
}

// replyMsg carries the outcome of one backend round trip back into the
// event loop.
type replyMsg struct {
	reply string
	err   error
}

// Model is the chat component.
type Model struct {
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer
	markdown bool
	cache    *ui.RenderCache

	state  conversation.State
	client conversation.Client
	logger *zap.Logger

	width  int
	height int
}

// New creates a chat component that sends through client.
func New(client conversation.Client, cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	ti.Prompt = "> "
	ti.PromptStyle = cfg.Styles.Prompt
	ti.TextStyle = cfg.Styles.UserText
	ti.CharLimit = 0
	ti.Width = defaultWidth - 6
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Styles.Spinner

	m := Model{
		input:    ti,
		viewport: viewport.New(defaultWidth-2, defaultHeight-inputHeight),
		spinner:  sp,
		styles:   cfg.Styles,
		markdown: cfg.RenderMarkdown,
		cache:    ui.NewRenderCache(0),
		client:   client,
		logger:   logger,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	if m.markdown {
		m.renderer = m.newRenderer()
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State returns a snapshot of the component's conversation state.
func (m Model) State() conversation.State {
	return m.state
}

func (m Model) InFlight() bool {
	return m.state.InFlight()
}

// SetSize gives the component width x height cells.
func (m Model) SetSize(width, height int) Model {
	if width < 10 {
		width = 10
	}
	if height < inputHeight+1 {
		height = inputHeight + 1
	}
	m.width = width
	m.height = height

	m.viewport.Width = width - 2
	m.viewport.Height = height - inputHeight
	m.input.Width = width - 6

	if m.markdown {
		m.renderer = m.newRenderer()
	}
	m.refresh()
	return m
}

func (m Model) newRenderer() *glamour.TermRenderer {
	r, err := ui.NewMarkdownRenderer(m.styles.Theme, m.width-8)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable, using plain text", zap.Error(err))
		return nil
	}
	return r
}

// refresh re-renders the transcript into the viewport and keeps the newest
// line visible.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// sendCmd runs the backend call off the event loop. The request is never
// cancelled by the component.
func sendCmd(client conversation.Client, text string) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return replyMsg{err: errNoClient}
		}
		reply, err := client.Send(context.Background(), text)
		return replyMsg{reply: reply, err: err}
	}
}
