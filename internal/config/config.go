// Package config loads ragchat settings from a YAML file, the environment
// and .env files.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all ragchat configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
	Echo    EchoConfig    `yaml:"echo"`
}

// BackendConfig says where the chat endpoint lives.
type BackendConfig struct {
	BaseURL string            `yaml:"base_url"`
	Path    string            `yaml:"path"`
	Timeout string            `yaml:"timeout"` // transport timeout, "0" disables
	Headers map[string]string `yaml:"headers,omitempty"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	Title          string `yaml:"title"`
	Placeholder    string `yaml:"placeholder"`
	Theme          string `yaml:"theme"` // light, dark, auto
	RenderMarkdown bool   `yaml:"render_markdown"`
}

// LoggingConfig configures logging. DebugMode is the master toggle: when
// false nothing is written.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"`
	Level     string `yaml:"level"` // debug, info, warn, error
	File      string `yaml:"file"`
}

// EchoConfig configures the local echo backend.
type EchoConfig struct {
	Addr   string `yaml:"addr"`
	Prefix string `yaml:"prefix"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8080",
			Path:    "/api/chat",
			Timeout: "60s",
		},
		UI: UIConfig{
			Title:       "Chatbot RAG",
			Placeholder: "Type your message...",
			Theme:       "auto",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "ragchat.log",
		},
		Echo: EchoConfig{
			Addr:   ":8080",
			Prefix: "Echo: ",
		},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/ragchat/config.yaml, or a
// project-local .ragchat/config.yaml when no user config dir is known.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".ragchat", "config.yaml")
	}
	return filepath.Join(dir, "ragchat", "config.yaml")
}

// Load reads configuration from a YAML file and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := getEnv("RAGCHAT_BASE_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := getEnv("RAGCHAT_API_PATH"); v != "" {
		c.Backend.Path = v
	}
	if v := getEnv("RAGCHAT_TIMEOUT"); v != "" {
		c.Backend.Timeout = v
	}
	if v := getEnv("RAGCHAT_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := getEnv("RAGCHAT_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := getEnv("RAGCHAT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("RAGCHAT_ECHO_ADDR"); v != "" {
		c.Echo.Addr = v
	}

	markdown, err := parseBoolEnv("RAGCHAT_MARKDOWN", c.UI.RenderMarkdown)
	if err != nil {
		return err
	}
	c.UI.RenderMarkdown = markdown

	debug, err := parseBoolEnv("RAGCHAT_DEBUG", c.Logging.DebugMode)
	if err != nil {
		return err
	}
	c.Logging.DebugMode = debug
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid backend.base_url %q: %w", c.Backend.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend.base_url %q: want http(s)://host[:port]", c.Backend.BaseURL)
	}
	if c.Backend.Path != "" && !strings.HasPrefix(c.Backend.Path, "/") {
		return fmt.Errorf("invalid backend.path %q: must start with /", c.Backend.Path)
	}
	if _, err := c.Backend.TimeoutDuration(); err != nil {
		return err
	}

	switch c.UI.Theme {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("invalid ui.theme %q: want auto, light or dark", c.UI.Theme)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging.level %q", c.Logging.Level)
	}
	return nil
}

// TimeoutDuration parses the transport timeout. Empty or "0" means none.
func (b BackendConfig) TimeoutDuration() (time.Duration, error) {
	raw := strings.TrimSpace(b.Timeout)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid backend.timeout %q: %w", b.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid backend.timeout %q: must not be negative", b.Timeout)
	}
	return d, nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key)
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}
