//go:build linux

package notify

import (
	"github.com/cockroachdb/errors"
	"github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	busMethod = busName + ".Notify"
	busClose  = busName + ".CloseNotification"
)

type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without one, notifications are
// silently dropped.
func New() Notifier {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nop{}
	}
	return &busNotifier{obj: conn.Object(busName, busPath)}
}

func hints(n Notification) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}
}

// Notify calls Notify(app_name, replaces_id, app_icon, summary, body,
// actions, hints, expire_timeout).
func (b *busNotifier) Notify(n Notification) (uint32, error) {
	var id uint32
	err := b.obj.Call(busMethod, 0,
		appName, n.Replaces, n.Icon, n.Summary, n.Body,
		[]string{}, hints(n), n.expireMillis(),
	).Store(&id)
	if err != nil {
		return 0, errors.Wrap(err, "notify")
	}
	return id, nil
}

func (b *busNotifier) Dismiss(id uint32) error {
	if id == 0 {
		return nil
	}
	return errors.Wrap(b.obj.Call(busClose, 0, id).Err, "close notification")
}
