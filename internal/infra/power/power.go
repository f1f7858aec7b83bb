// Package power enumerates batteries. Two backends exist: the Linux
// sysfs power_supply class, and UPower over the system D-Bus.
package power

import (
	"context"
	"fmt"
	"log"

	"github.com/bn-notify/bn/internal/domain"
)

// Backend names accepted by New.
const (
	BackendAuto   = "auto"
	BackendSysfs  = "sysfs"
	BackendUPower = "upower"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendAuto, BackendSysfs, BackendUPower}

// New creates the named provider. "auto" prefers UPower and falls back to
// sysfs when the system bus or the UPower daemon is unreachable.
func New(ctx context.Context, name string) (domain.BatteryProvider, error) {
	switch name {
	case BackendSysfs:
		p := NewSysfsProvider("")
		if !p.Available() {
			return nil, fmt.Errorf("%w: %s missing", domain.ErrProviderUnavailable, p.Root)
		}
		return p, nil
	case BackendUPower:
		p, err := NewUPowerProvider(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err)
		}
		return p, nil
	case BackendAuto, "":
		p, err := NewUPowerProvider(ctx)
		if err == nil {
			return p, nil
		}
		log.Printf("[power] UPower unavailable (%v), using sysfs", err)
		return New(ctx, BackendSysfs)
	default:
		return nil, fmt.Errorf("%w: battery provider %q", domain.ErrUnknownBackend, name)
	}
}
