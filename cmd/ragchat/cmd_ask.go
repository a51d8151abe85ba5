package main

import (
	"errors"
	"fmt"

	"ragchat/cmd/ragchat/chat"
	"ragchat/internal/conversation"
	"ragchat/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// askCmd sends a single message and prints the transcript
var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one message and print the reply",
	Long: `Sends a single message to the chat backend and prints the exchange:

  You: <message>
  Bot: <reply>

A failed request prints the standard failure reply and still exits 0.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var errEmptyMessage = errors.New("message is empty")

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := stderrLogger(cfg, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := newBackendClient(cfg, logger)
	if err != nil {
		return err
	}

	var state conversation.State
	state.SetDraft(joinArgs(args))

	issued, sendErr := state.Submit(commandContext(cmd), client)
	if !issued {
		return errEmptyMessage
	}
	if sendErr != nil {
		logging.Get(logger, logging.CategoryAPI).Debug("chat request failed", zap.Error(sendErr))
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), chat.RenderPlain(state.Transcript(), state.InFlight()))
	return err
}
