package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bn-notify/bn/internal/domain"
)

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New("carrier-pigeon")
	assert.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestNew_Beeep(t *testing.T) {
	n, err := New(BackendBeeep)
	require.NoError(t, err)
	assert.IsType(t, &BeeepNotifier{}, n)
}

// ─── Beeep Tests ────────────────────────────────────────────────────────────

type beeepRecorder struct {
	notified, alerted []string
	err               error
}

func (r *beeepRecorder) notifier() *BeeepNotifier {
	return &BeeepNotifier{
		notify: func(title, message string, _ any) error {
			r.notified = append(r.notified, message)
			return r.err
		},
		alert: func(title, message string, _ any) error {
			r.alerted = append(r.alerted, message)
			return r.err
		},
	}
}

func TestBeeepNotifier_CriticalAlerts(t *testing.T) {
	r := &beeepRecorder{}
	err := r.notifier().Show(context.Background(), domain.Notification{
		Body:    "Battery level is CRITICAL (8%)",
		Urgency: domain.UrgencyCritical,
		Sound:   "battery-caution",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Battery level is CRITICAL (8%)"}, r.alerted)
	assert.Empty(t, r.notified)
}

func TestBeeepNotifier_WarningNotifies(t *testing.T) {
	r := &beeepRecorder{}
	err := r.notifier().Show(context.Background(), domain.Notification{
		Body:    "Battery level is low (18%)",
		Urgency: domain.UrgencyNormal,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Battery level is low (18%)"}, r.notified)
	assert.Empty(t, r.alerted)
}

func TestBeeepNotifier_Error(t *testing.T) {
	r := &beeepRecorder{err: errors.New("no notification daemon")}
	err := r.notifier().Show(context.Background(), domain.Notification{Urgency: domain.UrgencyNormal})
	assert.Error(t, err)
}

func TestBeeepNotifier_CancelledContext(t *testing.T) {
	r := &beeepRecorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.notifier().Show(ctx, domain.Notification{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, r.notified)
}
