package app

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/powerhour/internal/keymap"
	"github.com/llehouerou/powerhour/internal/session"
	"github.com/llehouerou/powerhour/internal/ui/styles"
)

// Session is the part of a running game the view drives.
type Session interface {
	State() session.State
	Active() bool
	Skip() bool
	TogglePause() bool
	Quit() bool
}

// Model is the root application model.
type Model struct {
	session  Session
	sub      *session.Subscription
	keys     *keymap.Resolver
	progress progress.Model

	tracks int
	source string

	state     session.State
	lastRound string // outcome of the previous round attempt
	showHelp  bool
	quitting  bool

	Width  int
	Height int
}

// Option configures a Model.
type Option func(*Model)

// WithSubscription feeds round events into the view.
func WithSubscription(sub *session.Subscription) Option {
	return func(m *Model) { m.sub = sub }
}

// WithKeys replaces the default key bindings.
func WithKeys(r *keymap.Resolver) Option {
	return func(m *Model) { m.keys = r }
}

// WithLibrary sets the library size and description shown in the header.
func WithLibrary(tracks int, source string) Option {
	return func(m *Model) {
		m.tracks = tracks
		m.source = source
	}
}

// New creates the model for a session. The session should already be
// started; the model only reads snapshots and pushes events.
func New(s Session, opts ...Option) Model {
	from, to := styles.T().GradientColors()
	m := Model{
		session: s,
		keys:    keymap.Default(),
		progress: progress.New(
			progress.WithGradient(from, to),
			progress.WithoutPercentage(),
			progress.WithFillCharacters('▓', '░'),
		),
		state: s.State(),
	}
	m.progress.Width = defaultWidth - 2*clockWidth
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(TickCmd(), m.WatchEvents())
}

// State returns the last session snapshot the view rendered.
func (m Model) State() session.State {
	return m.state
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}
