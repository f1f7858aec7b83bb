package notify

import (
	"context"

	"github.com/godbus/dbus/v5"

	"github.com/bn-notify/bn/internal/domain"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	iconBatteryLow = "battery-caution"
)

// caller is the part of dbus.BusObject the notifier uses.
type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// DBusNotifier sends notifications via org.freedesktop.Notifications.
type DBusNotifier struct {
	obj caller
}

// NewDBus connects to the session bus.
func NewDBus() (*DBusNotifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, err
	}
	return &DBusNotifier{obj: conn.Object(dbusNotifyDest, dbusNotifyPath)}, nil
}

// Show sends n and waits for the server to accept it.
func (d *DBusNotifier) Show(ctx context.Context, n domain.Notification) error {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(AppName),
	}
	if n.Sound != "" {
		hints["sound-name"] = dbus.MakeVariant(n.Sound)
	}

	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout) -> id
	call := d.obj.CallWithContext(ctx,
		dbusNotifyInterface+".Notify",
		0,
		AppName,
		uint32(0),
		iconBatteryLow,
		n.Summary,
		n.Body,
		[]string{},
		hints,
		expireTimeout(n),
	)
	if call.Err != nil {
		return call.Err
	}
	var id uint32
	return call.Store(&id)
}

// expireTimeout converts the timeout to milliseconds; -1 asks the server
// for its default.
func expireTimeout(n domain.Notification) int32 {
	if n.Timeout <= 0 {
		return -1
	}
	return int32(n.Timeout.Milliseconds())
}
