// Package desktop sends freedesktop desktop notifications for
// attention-demanding categories.
package desktop

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyService   = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyInterface = "org.freedesktop.Notifications.Notify"
)

// Urgency levels per the freedesktop notification spec.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// Notify sends a desktop notification over the session bus.
// expireMs <= 0 lets the notification daemon pick the timeout.
func Notify(summary, body string, urgency byte, expireMs int32) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("connect session bus: %w", err)
	}

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgency),
	}

	obj := conn.Object(notifyService, dbus.ObjectPath(notifyPath))
	call := obj.Call(notifyInterface, 0,
		"turncue",      // app_name
		uint32(0),      // replaces_id
		"",             // app_icon
		summary,        // summary
		body,           // body
		[]string{},     // actions
		hints,          // hints
		expireMs,       // expire_timeout
	)
	if call.Err != nil {
		return fmt.Errorf("send notification: %w", call.Err)
	}
	return nil
}
