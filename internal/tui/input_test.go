package tui

import (
	"strings"
	"testing"
)

func TestEditRune(t *testing.T) {
	tests := []struct {
		name string
		text string
		key  string
		want string
	}{
		{"append letter", "ab", "c", "abc"},
		{"append space", "ab", " ", "ab "},
		{"backspace", "abc", "backspace", "ab"},
		{"backspace empty", "", "backspace", ""},
		{"backspace multibyte", "caña", "backspace", "cañ"},
		{"ignore enter", "ab", "enter", "ab"},
		{"ignore esc", "ab", "esc", "ab"},
		{"ignore multi-rune key", "ab", "ctrl+c", "ab"},
		{"multibyte append", "ca", "ñ", "cañ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := editRune(tt.text, tt.key); got != tt.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tt.text, tt.key, got, tt.want)
			}
		})
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	long := strings.Repeat("x", maxInputLen)
	if got := editRune(long, "y"); got != long {
		t.Errorf("input grew past maxInputLen")
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "a\nb\nc\nd\n"
	if got := truncateToHeight(s, 2); got != "a\nb\n" {
		t.Errorf("truncateToHeight = %q, want %q", got, "a\nb\n")
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("maxLines=0 should return input unchanged")
	}
	if got := truncateToHeight("short", 10); got != "short" {
		t.Errorf("short input should be unchanged, got %q", got)
	}
}

func TestRenderFieldMasksSecrets(t *testing.T) {
	out := renderField("password", "hunter2", false, true)
	if strings.Contains(out, "hunter2") {
		t.Error("secret value leaked into rendered field")
	}
	if !strings.Contains(out, "*******") {
		t.Error("secret value not masked with asterisks")
	}

	out = renderField("email", "a@b.com", false, false)
	if !strings.Contains(out, "a@b.com") {
		t.Error("plain value missing from rendered field")
	}
}
