package chat

import (
	"strings"

	"ragchat/cmd/ragchat/ui"
	"ragchat/internal/conversation"

	"github.com/charmbracelet/lipgloss"
)

const (
	UserLabel = "You:"
	BotLabel  = "Bot:"

	// TypingText is shown below the transcript while a reply is pending.
	// It is never part of the transcript itself.
	TypingText = "Bot is typing..."
)

func (m Model) View() string {
	content := m.styles.Content.Render(m.viewport.View())
	input := m.styles.Input.Render(m.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, content, input)
}

func (m Model) renderTranscript() string {
	var sb strings.Builder

	for _, msg := range m.state.Transcript() {
		switch msg.Sender {
		case conversation.SenderUser:
			sb.WriteString(m.styles.UserLabel.Render(UserLabel))
			sb.WriteString(" ")
			sb.WriteString(m.styles.UserText.Render(msg.Text))
		default:
			sb.WriteString(m.styles.BotLabel.Render(BotLabel))
			sb.WriteString(" ")
			sb.WriteString(m.renderBotText(msg.Text))
		}
		sb.WriteString("\n")
	}

	if m.state.InFlight() {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(m.styles.Typing.Render(TypingText))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m Model) renderBotText(text string) string {
	if m.renderer == nil || text == "" {
		return m.styles.BotText.Render(text)
	}
	key := ui.CacheKey(text, m.width, m.styles.Theme.IsDark)
	return m.cache.GetOrCompute(key, func() string {
		return "\n" + strings.Trim(m.safeRenderMarkdown(text), "\n")
	})
}

// safeRenderMarkdown renders markdown with panic recovery.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// RenderPlain renders messages the way the component tags them, without
// styling. When inFlight is set the typing line is appended.
func RenderPlain(messages []conversation.Message, inFlight bool) string {
	var sb strings.Builder
	for _, msg := range messages {
		label := BotLabel
		if msg.Sender == conversation.SenderUser {
			label = UserLabel
		}
		sb.WriteString(label)
		sb.WriteString(" ")
		sb.WriteString(msg.Text)
		sb.WriteString("\n")
	}
	if inFlight {
		sb.WriteString(TypingText)
		sb.WriteString("\n")
	}
	return sb.String()
}
