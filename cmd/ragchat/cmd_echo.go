package main

import (
	"ragchat/internal/echoserver"
	"ragchat/internal/logging"

	"github.com/spf13/cobra"
)

var (
	echoAddr   string
	echoPrefix string
)

// echoServerCmd runs the local echo backend
var echoServerCmd = &cobra.Command{
	Use:   "echo-server",
	Short: "Run a local backend that echoes every message",
	Long: `Serves POST /api/chat on --addr and answers {"message": m} with
{"response": prefix + m}. Useful for trying the client without a real
retrieval backend. Stops on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runEchoServer,
}

func init() {
	echoServerCmd.Flags().StringVar(&echoAddr, "addr", "", "Listen address (default from config, :8080)")
	echoServerCmd.Flags().StringVar(&echoPrefix, "prefix", "", "Reply prefix (default from config, \"Echo: \")")
}

func runEchoServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.Echo.Addr
	if echoAddr != "" {
		addr = echoAddr
	}
	prefix := cfg.Echo.Prefix
	if cmd.Flags().Changed("prefix") {
		prefix = echoPrefix
	}

	logger, err := stderrLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	log := logging.Get(logger, logging.CategoryServer)
	handler := echoserver.NewRouter(echoserver.New(echoserver.PrefixResponder(prefix), log), log)
	return echoserver.Run(commandContext(cmd), addr, handler, log)
}
