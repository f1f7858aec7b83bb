package cli

import (
	"fmt"
	"slices"

	"github.com/bn-notify/bn/internal/domain"
	"github.com/bn-notify/bn/internal/infra/notify"
	"github.com/bn-notify/bn/internal/infra/power"
)

// Options holds the parsed command line. There is no config file.
type Options struct {
	Serial   string
	Critical uint32
	Warn     uint32

	// Set when the flag was given; a zero percentage is a valid threshold.
	CriticalSet bool
	WarnSet     bool

	StateFile   string
	MetricsFile string
	Provider    string
	Notifier    string
	Format      string
	Verbose     bool
}

// Output formats for listing mode.
const (
	FormatTable = "table"
	FormatTOML  = "toml"
)

// CheckMode reports whether a serial was given.
func (o Options) CheckMode() bool {
	return o.Serial != ""
}

// Thresholds converts the flags into domain thresholds.
func (o Options) Thresholds() domain.Thresholds {
	t := domain.Thresholds{Critical: o.Critical}
	if o.WarnSet {
		w := o.Warn
		t.Warn = &w
	}
	return t
}

// Validate checks flag combinations and ranges.
func (o Options) Validate() error {
	if !slices.Contains(power.Backends, o.Provider) {
		return fmt.Errorf("%w: battery provider %q (want one of %v)", domain.ErrUnknownBackend, o.Provider, power.Backends)
	}
	if !o.CheckMode() {
		return nil
	}
	if !slices.Contains(notify.Backends, o.Notifier) {
		return fmt.Errorf("%w: notifier %q (want one of %v)", domain.ErrUnknownBackend, o.Notifier, notify.Backends)
	}
	if !o.CriticalSet {
		return domain.ErrMissingCritical
	}
	return o.Thresholds().Validate()
}
