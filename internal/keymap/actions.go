// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Session control
	ActionSkip        Action = "skip"
	ActionTogglePause Action = "toggle_pause"
	ActionQuit        Action = "quit"

	// Display
	ActionHelp Action = "help"
)
