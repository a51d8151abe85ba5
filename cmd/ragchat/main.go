package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ragchat/internal/backend"
	"ragchat/internal/config"
	"ragchat/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	baseURL    string
	timeout    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ragchat",
	Short: "ragchat - terminal chat client for a RAG chat backend",
	Long: `ragchat is a terminal chat client. Each message you send is posted to
the backend's /api/chat endpoint and the reply is appended to the transcript.

Run without arguments to start the interactive chat interface.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractiveChat(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/ragchat/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend base URL, e.g. http://localhost:8080")
	rootCmd.PersistentFlags().StringVar(&timeout, "timeout", "", "Backend request timeout, e.g. 30s (0 disables)")

	rootCmd.AddCommand(askCmd, echoServerCmd, initConfigCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration: .env, then the YAML file and
// environment, then command-line flags.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(resolvedConfigPath())
	if err != nil {
		return nil, err
	}

	if baseURL != "" {
		cfg.Backend.BaseURL = baseURL
	}
	if timeout != "" {
		cfg.Backend.Timeout = timeout
	}
	if verbose {
		cfg.Logging.DebugMode = true
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

func newBackendClient(cfg *config.Config, logger *zap.Logger) (*backend.Client, error) {
	d, err := cfg.Backend.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Path:    cfg.Backend.Path,
		Timeout: d,
		Headers: cfg.Backend.Headers,
	}, logging.Get(logger, logging.CategoryAPI))
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return client, nil
}

// stderrLogger builds the logger for non-interactive commands, which may
// write to the terminal. console selects the human-readable encoder.
func stderrLogger(cfg *config.Config, console bool) (*zap.Logger, error) {
	return logging.New(logging.Options{
		DebugMode: true,
		Level:     cfg.Logging.Level,
		Console:   console,
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
