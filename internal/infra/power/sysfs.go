package power

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bn-notify/bn/internal/domain"
)

// DefaultSysfsRoot is where the kernel exposes power supplies.
const DefaultSysfsRoot = "/sys/class/power_supply"

// SysfsProvider reads batteries from the Linux power_supply class.
type SysfsProvider struct {
	Root string
}

// NewSysfsProvider creates a provider rooted at root, or DefaultSysfsRoot.
func NewSysfsProvider(root string) *SysfsProvider {
	if root == "" {
		root = DefaultSysfsRoot
	}
	return &SysfsProvider{Root: root}
}

// Available reports whether the power_supply class exists.
func (p *SysfsProvider) Available() bool {
	info, err := os.Stat(p.Root)
	return err == nil && info.IsDir()
}

// Batteries lists every supply whose type is Battery, sorted by name.
func (p *SysfsProvider) Batteries(ctx context.Context) ([]domain.BatteryEntry, error) {
	ents, err := os.ReadDir(p.Root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.Root, err)
	}

	names := make([]string, 0, len(ents))
	for _, ent := range ents {
		names = append(names, ent.Name())
	}
	sort.Strings(names)

	var entries []domain.BatteryEntry
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dir := filepath.Join(p.Root, name)
		typ, err := readTrimmed(filepath.Join(dir, "type"))
		if err != nil || !strings.EqualFold(typ, "Battery") {
			continue
		}
		entries = append(entries, readSupply(dir))
	}
	return entries, nil
}

// readSupply reads one battery directory. Identity is read first so a
// failed charge read still names the battery.
func readSupply(dir string) domain.BatteryEntry {
	var b domain.Battery
	b.Serial, _ = readTrimmed(filepath.Join(dir, "serial_number"))
	b.Vendor, _ = readTrimmed(filepath.Join(dir, "manufacturer"))

	soc, rate, err := stateOfCharge(dir)
	if err != nil {
		return domain.BatteryEntry{Battery: b, Err: fmt.Errorf("%s: %w", filepath.Base(dir), err)}
	}
	b.StateOfCharge = soc

	status, _ := readTrimmed(filepath.Join(dir, "status"))
	if strings.EqualFold(status, "Charging") {
		ttf := rate.timeToFull()
		b.TimeToFull = &ttf
	}
	return domain.BatteryEntry{Battery: b}
}

// chargeRate carries what is needed for a time-to-full estimate.
// Units are the kernel's: µWh/µW or µAh/µA.
type chargeRate struct {
	now, full, rate int64
}

func (r chargeRate) timeToFull() time.Duration {
	if r.rate <= 0 || r.full <= r.now {
		return 0
	}
	hours := float64(r.full-r.now) / float64(r.rate)
	return time.Duration(hours * float64(time.Hour))
}

var errNoCharge = errors.New("no energy, charge or capacity attribute")

// stateOfCharge prefers energy_*, then charge_*, then capacity.
func stateOfCharge(dir string) (float64, chargeRate, error) {
	pairs := []struct{ now, full, rate string }{
		{"energy_now", "energy_full", "power_now"},
		{"charge_now", "charge_full", "current_now"},
	}
	for _, pr := range pairs {
		now, err := readInt64(filepath.Join(dir, pr.now))
		if err != nil {
			continue
		}
		full, err := readInt64(filepath.Join(dir, pr.full))
		if err != nil || full <= 0 {
			continue
		}
		rate, _ := readInt64(filepath.Join(dir, pr.rate))
		if rate < 0 {
			rate = -rate
		}
		return clampFraction(float64(now) / float64(full)), chargeRate{now, full, rate}, nil
	}

	capStr, err := readTrimmed(filepath.Join(dir, "capacity"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, chargeRate{}, errNoCharge
		}
		return 0, chargeRate{}, err
	}
	pct, err := strconv.ParseFloat(capStr, 64)
	if err != nil {
		return 0, chargeRate{}, fmt.Errorf("parse capacity %q: %w", capStr, err)
	}
	return clampFraction(pct / 100), chargeRate{}, nil
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func readTrimmed(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func readInt64(path string) (int64, error) {
	s, err := readTrimmed(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, 64)
}
