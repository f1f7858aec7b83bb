package domain

import "context"

// ─── Service Interfaces ─────────────────────────────────────────────────────
// Infrastructure implements these; the monitor depends only on them.

// BatteryProvider enumerates the batteries the OS exposes.
type BatteryProvider interface {
	// Batteries returns one entry per battery. A non-nil error means the
	// list itself could not be retrieved.
	Batteries(ctx context.Context) ([]BatteryEntry, error)
}

// Notifier displays desktop notifications.
type Notifier interface {
	Show(ctx context.Context, n Notification) error
}

// StateStore persists the last observed percentage between invocations.
type StateStore interface {
	// Load never fails: unreadable state yields the default percentage.
	Load() uint32
	Save(pct uint32) error
}
