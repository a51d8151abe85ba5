package ui

import (
	"strings"
	"testing"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for a black background")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme for a white background")
	}

	t.Setenv("COLORFGBG", "")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme when COLORFGBG is unset")
	}
}

func TestThemeByName(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	if !ThemeByName("dark").IsDark {
		t.Fatalf("dark should select the dark theme")
	}
	if ThemeByName("Light").IsDark {
		t.Fatalf("light should select the light theme")
	}
	if ThemeByName("auto").IsDark {
		t.Fatalf("auto without COLORFGBG should fall back to light")
	}
}

func TestRenderDivider(t *testing.T) {
	s := NewStyles(LightTheme())
	if got := s.RenderDivider(0); got != "" {
		t.Fatalf("expected empty divider for zero width, got %q", got)
	}
	if got := s.RenderDivider(5); !strings.Contains(got, "─────") {
		t.Fatalf("expected five rule characters, got %q", got)
	}
}

func TestNewMarkdownRenderer(t *testing.T) {
	r, err := NewMarkdownRenderer(DarkTheme(), 0)
	if err != nil {
		t.Fatalf("NewMarkdownRenderer: %v", err)
	}
	out, err := r.Render("**bold** reply")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "bold") {
		t.Fatalf("rendered output lost text: %q", out)
	}
}
