package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update handles input, replies and animation ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case replyMsg:
		if msg.err != nil {
			m.logger.Debug("chat request failed", zap.Error(msg.err))
		}
		m.state.Resolve(msg.reply, msg.err)
		m.input.Reset()
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.state.InFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refresh()
		return m, cmd
	}

	var tiCmd, vpCmd tea.Cmd
	m.input, tiCmd = m.input.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()

	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state.SetDraft(m.input.Value())
	return m, cmd
}

// submit sends the current draft. Blank drafts and submits made while a
// reply is outstanding do nothing.
func (m Model) submit() (Model, tea.Cmd) {
	text, ok := m.state.Begin()
	if !ok {
		return m, nil
	}

	m.logger.Debug("submitting message", zap.Int("transcript_len", m.state.Len()))
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, sendCmd(m.client, text))
}
