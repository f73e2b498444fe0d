// Package notify shows desktop notifications over the freedesktop
// notification service.
package notify

import (
	"time"
)

const (
	appName      = "Power Hour"
	desktopEntry = "powerhour"
)

// Urgency levels defined by the freedesktop notification protocol.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification is one popup. A zero Expire leaves the timeout to the
// server; Replaces updates an earlier popup in place.
type Notification struct {
	Summary  string
	Body     string
	Icon     string // file path or icon name
	Expire   time.Duration
	Replaces uint32
	Urgency  Urgency
}

// Notifier sends notifications. Implementations that have no service to
// talk to return id 0 and no error.
type Notifier interface {
	Notify(n Notification) (uint32, error)
	Dismiss(id uint32) error
}

// expireMillis converts Expire to the protocol's int32 milliseconds,
// where -1 asks for the server default.
func (n Notification) expireMillis() int32 {
	if n.Expire <= 0 {
		return -1
	}
	return int32(min(n.Expire.Milliseconds(), int64(1<<31-1)))
}

type nop struct{}

func (nop) Notify(Notification) (uint32, error) { return 0, nil }
func (nop) Dismiss(uint32) error                { return nil }
