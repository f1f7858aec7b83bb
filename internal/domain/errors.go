package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────

var (
	// Configuration errors
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")
	ErrThresholdOrder   = errors.New("critical threshold must not exceed warn threshold")
	ErrMissingCritical  = errors.New("--critical-percentage is required with --serial")
	ErrUnknownBackend   = errors.New("unknown backend")

	// Battery errors (reported, not fatal)
	ErrBatteryNotFound    = errors.New("battery not found")
	ErrBatteryUnavailable = errors.New("unable to access battery information")

	// Fatal errors
	ErrProviderUnavailable = errors.New("battery provider unavailable")
	ErrNotifierUnavailable = errors.New("notifier unavailable")
	ErrNotifyFailed        = errors.New("failed to show notification")
	ErrStateWrite          = errors.New("failed to write power state file")
)
