// Package domain holds the battery notifier's core types.
// Domain types are pure: no OS, D-Bus or filesystem dependency.
package domain

import (
	"fmt"
	"math"
	"time"
)

// ─── Battery ────────────────────────────────────────────────────────────────

// Battery is one battery as reported by a BatteryProvider.
type Battery struct {
	Serial        string         // empty when the provider exposes none
	Vendor        string         // empty when the provider exposes none
	StateOfCharge float64        // fraction of capacity, 0.0–1.0
	TimeToFull    *time.Duration // nil unless the provider estimates a time to full
}

// BatteryEntry is one enumeration result. Entries fail independently:
// Err may be set while Battery still carries the identity read so far.
type BatteryEntry struct {
	Battery Battery
	Err     error
}

// Reading is the value the monitor compares against thresholds.
type Reading struct {
	Percentage uint32
	Charging   bool
}

// fractionEpsilon absorbs the float error of percent/100*100, e.g.
// 0.29*100 == 28.999999999999996.
const fractionEpsilon = 1e-9

// ReadingFrom derives a Reading from a battery.
// Percentage is floor(StateOfCharge*100), clamped to 0–100.
func ReadingFrom(b Battery) Reading {
	pct := math.Floor(b.StateOfCharge*100 + fractionEpsilon)
	switch {
	case math.IsNaN(pct) || pct < 0:
		pct = 0
	case pct > 100:
		pct = 100
	}
	return Reading{
		Percentage: uint32(pct),
		Charging:   b.TimeToFull != nil,
	}
}

// ─── Thresholds ─────────────────────────────────────────────────────────────

// MaxPercentage is the upper bound of every percentage value.
const MaxPercentage = 100

// Thresholds are the per-invocation notification boundaries.
type Thresholds struct {
	Critical uint32
	Warn     *uint32 // optional
}

// Validate rejects out-of-range values and a critical threshold above the
// warning threshold.
func (t Thresholds) Validate() error {
	if t.Critical > MaxPercentage {
		return fmt.Errorf("%w: critical %d exceeds %d", ErrInvalidThreshold, t.Critical, MaxPercentage)
	}
	if t.Warn == nil {
		return nil
	}
	if *t.Warn > MaxPercentage {
		return fmt.Errorf("%w: warn %d exceeds %d", ErrInvalidThreshold, *t.Warn, MaxPercentage)
	}
	if t.Critical > *t.Warn {
		return fmt.Errorf("%w: critical %d > warn %d", ErrThresholdOrder, t.Critical, *t.Warn)
	}
	return nil
}

// Level is the outcome of a threshold comparison.
type Level int

const (
	LevelNone Level = iota
	LevelWarning
	LevelCritical
)

// String returns human-readable level.
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelWarning:
		return "warning"
	case LevelCritical:
		return "critical"
	default:
		return "unknown"
	}
}
