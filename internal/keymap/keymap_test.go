package keymap

import (
	"testing"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		context string
		want    int
	}{
		{"session", 2},
		{"global", 2},
		{"unknown", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.context, func(t *testing.T) {
			result := ByContext(tt.context)
			if len(result) != tt.want {
				t.Errorf("ByContext(%q) returned %d items, want %d", tt.context, len(result), tt.want)
			}
			for _, binding := range result {
				if binding.Context != tt.context {
					t.Errorf("binding context = %q, want %q", binding.Context, tt.context)
				}
			}
		})
	}
}

func TestAll_EveryBindingComplete(t *testing.T) {
	for _, b := range All {
		if b.Action == "" {
			t.Errorf("binding %v has no action", b.Keys)
		}
		if len(b.Keys) == 0 {
			t.Errorf("binding %q has no keys", b.Action)
		}
		if b.Description == "" {
			t.Errorf("binding %q has no description", b.Action)
		}
	}
}

func TestKeyName(t *testing.T) {
	tests := map[string]string{
		" ":      "space",
		"right":  "→",
		"q":      "q",
		"ctrl+c": "ctrl+c",
	}
	for in, want := range tests {
		if got := KeyName(in); got != want {
			t.Errorf("KeyName(%q) = %q, want %q", in, got, want)
		}
	}
}
