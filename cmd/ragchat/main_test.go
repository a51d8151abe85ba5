package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ragchat/internal/config"
)

// resetFlags points the command at srvURL with a config file that does not
// exist, so only defaults and the flags apply.
func resetFlags(t *testing.T, srvURL string) {
	t.Helper()
	for _, key := range []string{
		"RAGCHAT_BASE_URL", "RAGCHAT_API_PATH", "RAGCHAT_TIMEOUT", "RAGCHAT_THEME",
		"RAGCHAT_MARKDOWN", "RAGCHAT_DEBUG", "RAGCHAT_LOG_FILE", "RAGCHAT_LOG_LEVEL",
		"RAGCHAT_ECHO_ADDR",
	} {
		t.Setenv(key, "")
	}

	configPath = filepath.Join(t.TempDir(), "missing.yaml")
	baseURL = srvURL
	timeout = "5s"
	verbose = false
	echoAddr = ""
	echoPrefix = ""
	forceInit = false
	t.Cleanup(func() {
		configPath, baseURL, timeout = "", "", ""
		verbose, forceInit = false, false
	})
}

func runAskCapture(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	err := runAsk(cmd, args)
	return out.String(), err
}

func TestJoinArgs(t *testing.T) {
	got := joinArgs([]string{"one", "two", "three"})
	if got != "one two three" {
		t.Fatalf("expected 'one two three', got '%s'", got)
	}
}

func TestAskPrintsExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "hi " + req.Message})
	}))
	defer srv.Close()
	resetFlags(t, srv.URL)

	out, err := runAskCapture(t, "hello", "there")
	if err != nil {
		t.Fatalf("runAsk returned error: %v", err)
	}
	want := "You: hello there\nBot: hi hello there\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestAskFailsSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	resetFlags(t, srv.URL)

	out, err := runAskCapture(t, "x")
	if err != nil {
		t.Fatalf("remote failure should not fail the command: %v", err)
	}
	if !strings.Contains(out, "Bot: Sorry, something went wrong.") {
		t.Fatalf("expected failure reply, got: %s", out)
	}
}

func TestAskRejectsBlankMessage(t *testing.T) {
	resetFlags(t, "http://127.0.0.1:1")

	out, err := runAskCapture(t, "   ")
	if err != errEmptyMessage {
		t.Fatalf("expected errEmptyMessage, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestAskInvalidBaseURL(t *testing.T) {
	resetFlags(t, "ftp://example.com")

	if _, err := runAskCapture(t, "hello"); err == nil {
		t.Fatal("expected configuration error for non-http base URL")
	}
}

func TestEchoServerStopsWhenContextDone(t *testing.T) {
	resetFlags(t, "http://localhost:8080")
	echoAddr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := &cobra.Command{}
	cmd.SetContext(ctx)
	if err := runEchoServer(cmd, nil); err != nil {
		t.Fatalf("runEchoServer returned error: %v", err)
	}
}

func TestAskVerboseUsesConsoleLogs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": "ok"}`))
	}))
	defer srv.Close()
	resetFlags(t, srv.URL)
	verbose = true

	out, err := runAskCapture(t, "hi")
	if err != nil {
		t.Fatalf("runAsk returned error: %v", err)
	}
	if out != "You: hi\nBot: ok\n" {
		t.Fatalf("verbose logging leaked into stdout: %q", out)
	}
}

func TestInitConfigWritesDefaults(t *testing.T) {
	resetFlags(t, "")

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	if err := runInitConfig(cmd, nil); err != nil {
		t.Fatalf("runInitConfig returned error: %v", err)
	}
	if !strings.Contains(out.String(), configPath) {
		t.Fatalf("expected written path in output, got %q", out.String())
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Backend.BaseURL != config.DefaultConfig().Backend.BaseURL {
		t.Fatalf("expected default base URL, got %q", loaded.Backend.BaseURL)
	}

	if err := runInitConfig(cmd, nil); err == nil {
		t.Fatal("expected an error when the file already exists")
	}

	if err := os.WriteFile(configPath, []byte("backend: {base_url: http://x:1}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	forceInit = true
	if err := runInitConfig(cmd, nil); err != nil {
		t.Fatalf("--force should overwrite: %v", err)
	}
	loaded, err = config.Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Backend.BaseURL != config.DefaultConfig().Backend.BaseURL {
		t.Fatalf("expected overwrite with defaults, got %q", loaded.Backend.BaseURL)
	}
}

func TestChatExitErr(t *testing.T) {
	if err := chatExitErr(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := chatExitErr(tea.ErrProgramKilled); err != nil {
		t.Fatalf("a killed program should exit cleanly, got %v", err)
	}
	if err := chatExitErr(fmt.Errorf("wrapped: %w", tea.ErrProgramKilled)); err != nil {
		t.Fatalf("a wrapped kill should exit cleanly, got %v", err)
	}

	boom := errors.New("boom")
	if err := chatExitErr(boom); !errors.Is(err, boom) {
		t.Fatalf("expected other errors to pass through, got %v", err)
	}
}
