package render

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean string untouched", "Hello Wörld", "Hello Wörld"},
		{"control characters dropped", "Title\x00\x1b[31m", "Title[31m"},
		{"newline dropped", "two\nlines", "twolines"},
		{"tab kept", "a\tb", "a\tb"},
		{"nbsp becomes space", "a\u00a0b", "a b"},
		{"invalid utf8 dropped", "ok\xff\xfeok", "okok"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello w…"},
		{"wide characters", "日本語テキスト", 7, "日本語…"},
		{"zero width", "hello", 0, ""},
		{"sanitized first", "a\x00bc", 5, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
			if lipgloss.Width(got) > tt.maxWidth {
				t.Errorf("Truncate(%q, %d) width = %d", tt.input, tt.maxWidth, lipgloss.Width(got))
			}
		})
	}
}

func TestCenter(t *testing.T) {
	if got := Center("ab", 6); got != "  ab  " {
		t.Errorf("Center(ab, 6) = %q", got)
	}
	if got := Center("abc", 6); got != " abc  " {
		t.Errorf("Center(abc, 6) = %q", got)
	}
	if got := Center("toolong", 3); got != "toolong" {
		t.Errorf("Center(toolong, 3) = %q", got)
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 15)
	if got != "left      right" {
		t.Errorf("Row() = %q", got)
	}
	if lipgloss.Width(got) != 15 {
		t.Errorf("Row() width = %d, want 15", lipgloss.Width(got))
	}
	if got := Row("left", "right", 4); got != "left right" {
		t.Errorf("Row() narrow = %q, want single space gap", got)
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{59*time.Second + 900*time.Millisecond, "0:59"},
		{61 * time.Second, "1:01"},
		{time.Hour, "1:00:00"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		if got := Clock(tt.d); got != tt.want {
			t.Errorf("Clock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
