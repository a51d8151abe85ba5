package main

import (
	"errors"
	"fmt"

	"ragchat/cmd/ragchat/chat"
	"ragchat/cmd/ragchat/shell"
	"ragchat/cmd/ragchat/ui"
	"ragchat/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runInteractiveChat starts the full-screen chat. The UI owns the terminal,
// so logs only ever go to the configured file.
func runInteractiveChat(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		DebugMode: cfg.Logging.DebugMode,
		Level:     cfg.Logging.Level,
		File:      cfg.Logging.File,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	boot := logging.Get(logger, logging.CategoryBoot)
	client, err := newBackendClient(cfg, logger)
	if err != nil {
		return err
	}
	boot.Info("starting interactive chat", zap.String("endpoint", client.Endpoint()))

	styles := ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))
	c := chat.New(client, chat.Config{
		Placeholder:    cfg.UI.Placeholder,
		RenderMarkdown: cfg.UI.RenderMarkdown,
		Styles:         styles,
		Logger:         logging.Get(logger, logging.CategoryUI),
	})

	p := tea.NewProgram(
		shell.New(c, shell.Config{Title: cfg.UI.Title, Styles: styles}),
		tea.WithAltScreen(),
		tea.WithContext(commandContext(cmd)),
	)
	_, err = p.Run()
	return chatExitErr(err)
}

// chatExitErr maps the program's exit error. A kill through the command
// context (SIGINT or SIGTERM) is a normal shutdown.
func chatExitErr(err error) error {
	if err == nil || errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return fmt.Errorf("chat interface: %w", err)
}
