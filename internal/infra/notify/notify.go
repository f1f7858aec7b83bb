// Package notify shows desktop notifications, through the freedesktop
// notification service on D-Bus or through beeep elsewhere.
package notify

import (
	"fmt"
	"log"
	"runtime"

	"github.com/bn-notify/bn/internal/domain"
)

// AppName identifies bn to the notification server.
const AppName = "bn"

// Backend names accepted by New.
const (
	BackendAuto  = "auto"
	BackendDBus  = "dbus"
	BackendBeeep = "beeep"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendAuto, BackendDBus, BackendBeeep}

// New creates the named notifier. "auto" uses D-Bus on Linux when the
// session bus is reachable and beeep otherwise.
func New(name string) (domain.Notifier, error) {
	switch name {
	case BackendDBus:
		n, err := NewDBus()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrNotifierUnavailable, err)
		}
		return n, nil
	case BackendBeeep:
		return NewBeeep(), nil
	case BackendAuto, "":
		if runtime.GOOS == "linux" {
			n, err := NewDBus()
			if err == nil {
				return n, nil
			}
			log.Printf("[notify] session bus unavailable (%v), using beeep", err)
		}
		return NewBeeep(), nil
	default:
		return nil, fmt.Errorf("%w: notifier %q", domain.ErrUnknownBackend, name)
	}
}
