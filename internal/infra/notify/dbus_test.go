package notify

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bn-notify/bn/internal/domain"
)

type recordedCall struct {
	method string
	args   []interface{}
}

type fakeCaller struct {
	calls []recordedCall
	err   error
}

func (f *fakeCaller) CallWithContext(_ context.Context, method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	f.calls = append(f.calls, recordedCall{method: method, args: args})
	if f.err != nil {
		return &dbus.Call{Err: f.err}
	}
	return &dbus.Call{Body: []interface{}{uint32(7)}}
}

func TestDBusNotifier_Critical(t *testing.T) {
	f := &fakeCaller{}
	n := &DBusNotifier{obj: f}

	err := n.Show(context.Background(), domain.Notification{
		Summary: "Battery level",
		Body:    "Battery level is CRITICAL (8%)",
		Urgency: domain.UrgencyCritical,
		Sound:   "battery-caution",
	})
	require.NoError(t, err)
	require.Len(t, f.calls, 1)

	c := f.calls[0]
	assert.Equal(t, "org.freedesktop.Notifications.Notify", c.method)
	require.Len(t, c.args, 8)
	assert.Equal(t, "bn", c.args[0])
	assert.Equal(t, "Battery level", c.args[3])
	assert.Equal(t, "Battery level is CRITICAL (8%)", c.args[4])

	hints := c.args[6].(map[string]dbus.Variant)
	assert.Equal(t, byte(2), hints["urgency"].Value())
	assert.Equal(t, "battery-caution", hints["sound-name"].Value())
	assert.Equal(t, int32(-1), c.args[7])
}

func TestDBusNotifier_WarningTimeout(t *testing.T) {
	f := &fakeCaller{}
	n := &DBusNotifier{obj: f}

	err := n.Show(context.Background(), domain.Notification{
		Summary: "Battery level",
		Body:    "Battery level is low (18%)",
		Urgency: domain.UrgencyNormal,
		Timeout: 30 * time.Second,
	})
	require.NoError(t, err)

	c := f.calls[0]
	hints := c.args[6].(map[string]dbus.Variant)
	assert.Equal(t, byte(1), hints["urgency"].Value())
	_, hasSound := hints["sound-name"]
	assert.False(t, hasSound)
	assert.Equal(t, int32(30000), c.args[7])
}

func TestDBusNotifier_CallError(t *testing.T) {
	n := &DBusNotifier{obj: &fakeCaller{err: errors.New("org.freedesktop.DBus.Error.ServiceUnknown")}}
	err := n.Show(context.Background(), domain.Notification{Summary: "x"})
	assert.Error(t, err)
}

func TestNewDBus_LiveSession(t *testing.T) {
	// Skip if no D-Bus session (CI environment)
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}
	n, err := NewDBus()
	require.NoError(t, err)
	assert.NotNil(t, n)
}
