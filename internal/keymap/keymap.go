package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "session", "global"
}

// All contains every key binding, in help order.
var All = []Binding{
	// Session
	{ActionSkip, []string{"s", "right", "n"}, "skip", "session"},
	{ActionTogglePause, []string{"p", " "}, "pause", "session"},

	// Global
	{ActionQuit, []string{"q", "ctrl+c", "esc"}, "quit", "global"},
	{ActionHelp, []string{"?"}, "help", "global"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// KeyName returns the display name of a key.
func KeyName(key string) string {
	switch key {
	case " ":
		return "space"
	case "right":
		return "→"
	default:
		return key
	}
}
