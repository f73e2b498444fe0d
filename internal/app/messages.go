// Package app is the bubbletea model that shows a running power hour.
package app

import (
	"time"

	"github.com/llehouerou/powerhour/internal/session"
)

// TickMsg is sent periodically to refresh the session snapshot.
type TickMsg time.Time

// RoundStartedMsg wraps a session RoundStarted event.
type RoundStartedMsg session.RoundStarted

// RoundEndedMsg wraps a session RoundEnded event.
type RoundEndedMsg session.RoundEnded

// SessionDoneMsg is sent once the session's subscription closes.
type SessionDoneMsg struct{}
