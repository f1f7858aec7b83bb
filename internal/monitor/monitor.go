// Package monitor implements the threshold check: compare the current
// battery percentage to the persisted one, persist, and notify once per
// downward threshold crossing.
package monitor

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/bn-notify/bn/internal/domain"
)

const (
	summary       = "Battery level"
	criticalSound = "battery-caution"
	warnTimeout   = 30 * time.Second
)

// Decide returns the notification level for a move from prev to curr.
// A threshold fires only when prev was above it and curr is at or below
// it. Critical wins over warning.
func Decide(prev, curr uint32, t domain.Thresholds) domain.Level {
	if curr <= t.Critical && prev > t.Critical {
		return domain.LevelCritical
	}
	if t.Warn != nil && curr <= *t.Warn && prev > *t.Warn {
		return domain.LevelWarning
	}
	return domain.LevelNone
}

// NotificationFor builds the notification for level. ok is false for
// LevelNone.
func NotificationFor(level domain.Level, pct uint32) (n domain.Notification, ok bool) {
	switch level {
	case domain.LevelCritical:
		return domain.Notification{
			Summary: summary,
			Body:    fmt.Sprintf("Battery level is CRITICAL (%d%%)", pct),
			Urgency: domain.UrgencyCritical,
			Sound:   criticalSound,
		}, true
	case domain.LevelWarning:
		return domain.Notification{
			Summary: summary,
			Body:    fmt.Sprintf("Battery level is low (%d%%)", pct),
			Urgency: domain.UrgencyNormal,
			Timeout: warnTimeout,
		}, true
	default:
		return domain.Notification{}, false
	}
}

// ─── Monitor ────────────────────────────────────────────────────────────────

// Monitor runs one check or listing against its collaborators.
type Monitor struct {
	Provider domain.BatteryProvider
	Notifier domain.Notifier
	Store    domain.StateStore

	// Out receives operator-facing diagnostics. Defaults to io.Discard.
	Out io.Writer
	// Status receives the "prev: P, curr: C" line. Defaults to io.Discard.
	Status io.Writer
	// Log receives debug output. Defaults to a discarding logger.
	Log *log.Logger
}

// Result describes what a Check did.
type Result struct {
	Prev    uint32
	Reading domain.Reading
	Level   domain.Level
}

// New creates a Monitor with discarding output and logger.
func New(p domain.BatteryProvider, n domain.Notifier, s domain.StateStore) *Monitor {
	return &Monitor{
		Provider: p,
		Notifier: n,
		Store:    s,
		Out:      io.Discard,
		Status:   io.Discard,
		Log:      log.New(io.Discard, "", 0),
	}
}

// Check reads the battery with the given serial, persists its percentage
// and shows a notification if a threshold was crossed.
//
// A missing battery or an unreadable one is reported on Out and returns
// a nil error with nothing persisted. Provider, store and notifier
// failures are returned.
func (m *Monitor) Check(ctx context.Context, serial string, t domain.Thresholds) (*Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	prev := m.Store.Load()

	entries, err := m.Provider.Batteries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}

	entry, err := findBySerial(entries, serial)
	if err != nil {
		fmt.Fprintln(m.out(), err)
		return nil, nil
	}

	reading := domain.ReadingFrom(entry.Battery)
	m.logger().Printf("[monitor] prev: %d, curr: %d, charging: %v", prev, reading.Percentage, reading.Charging)

	if err := m.Store.Save(reading.Percentage); err != nil {
		return nil, err
	}
	if m.Status != nil {
		fmt.Fprintf(m.Status, "prev: %d, curr: %d\n", prev, reading.Percentage)
	}

	// Charging is observed but does not suppress notifications.
	level := Decide(prev, reading.Percentage, t)
	res := &Result{Prev: prev, Reading: reading, Level: level}

	n, ok := NotificationFor(level, reading.Percentage)
	if !ok {
		return res, nil
	}
	m.logger().Printf("[monitor] %s threshold crossed, notifying", level)
	if err := m.Notifier.Show(ctx, n); err != nil {
		return res, fmt.Errorf("%w: %w", domain.ErrNotifyFailed, err)
	}
	return res, nil
}

// List returns every battery the provider exposes, failed entries included.
func (m *Monitor) List(ctx context.Context) ([]domain.BatteryEntry, error) {
	entries, err := m.Provider.Batteries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
	}
	for _, e := range entries {
		if e.Err != nil {
			m.logger().Printf("[monitor] skipping battery %q: %v", e.Battery.Serial, e.Err)
		}
	}
	return entries, nil
}

// findBySerial returns the first entry whose serial matches. The error
// wraps ErrBatteryNotFound or ErrBatteryUnavailable.
func findBySerial(entries []domain.BatteryEntry, serial string) (domain.BatteryEntry, error) {
	for _, e := range entries {
		if e.Battery.Serial == "" || e.Battery.Serial != serial {
			continue
		}
		if e.Err != nil {
			return e, fmt.Errorf("%w: %v", domain.ErrBatteryUnavailable, e.Err)
		}
		return e, nil
	}
	return domain.BatteryEntry{}, fmt.Errorf("%w: serial %q", domain.ErrBatteryNotFound, serial)
}

func (m *Monitor) out() io.Writer {
	if m.Out == nil {
		return io.Discard
	}
	return m.Out
}

func (m *Monitor) logger() *log.Logger {
	if m.Log == nil {
		return log.New(io.Discard, "", 0)
	}
	return m.Log
}
