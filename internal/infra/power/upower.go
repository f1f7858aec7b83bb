package power

import (
	"context"
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/bn-notify/bn/internal/domain"
)

const (
	upowerDest            = "org.freedesktop.UPower"
	upowerPath            = "/org/freedesktop/UPower"
	upowerInterface       = "org.freedesktop.UPower"
	upowerDeviceInterface = "org.freedesktop.UPower.Device"
	propertiesGet         = "org.freedesktop.DBus.Properties.Get"
	propertiesGetAll      = "org.freedesktop.DBus.Properties.GetAll"

	upowerTypeBattery   uint32 = 2
	upowerStateCharging uint32 = 1
)

// upowerBus is the slice of the UPower D-Bus API the provider needs.
type upowerBus interface {
	EnumerateDevices(ctx context.Context) ([]dbus.ObjectPath, error)
	DeviceProperties(ctx context.Context, path dbus.ObjectPath) (map[string]dbus.Variant, error)
	DeviceProperty(ctx context.Context, path dbus.ObjectPath, name string) (dbus.Variant, error)
}

// UPowerProvider reads batteries from the UPower daemon.
type UPowerProvider struct {
	bus upowerBus
}

// NewUPowerProvider connects to the system bus and checks that UPower
// answers.
func NewUPowerProvider(ctx context.Context) (*UPowerProvider, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, fmt.Errorf("connect system bus: %w", err)
	}
	p := &UPowerProvider{bus: &dbusUPower{conn: conn}}
	if _, err := p.bus.EnumerateDevices(ctx); err != nil {
		return nil, fmt.Errorf("upower: %w", err)
	}
	return p, nil
}

// Batteries lists every present UPower device of type battery.
func (p *UPowerProvider) Batteries(ctx context.Context) ([]domain.BatteryEntry, error) {
	paths, err := p.bus.EnumerateDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("upower enumerate: %w", err)
	}

	var entries []domain.BatteryEntry
	for _, path := range paths {
		props, err := p.bus.DeviceProperties(ctx, path)
		if err != nil {
			entries = append(entries, domain.BatteryEntry{
				Battery: p.identity(ctx, path),
				Err:     fmt.Errorf("%s: %w", path, err),
			})
			continue
		}
		if variantUint32(props["Type"]) != upowerTypeBattery || !variantBool(props["IsPresent"]) {
			continue
		}
		entries = append(entries, domain.BatteryEntry{Battery: batteryFromProps(props)})
	}
	return entries, nil
}

// identity reads Serial and Vendor one by one after GetAll failed, so an
// unreadable battery can still be matched by serial.
func (p *UPowerProvider) identity(ctx context.Context, path dbus.ObjectPath) domain.Battery {
	var b domain.Battery
	if v, err := p.bus.DeviceProperty(ctx, path, "Serial"); err == nil {
		b.Serial = variantString(v)
	}
	if v, err := p.bus.DeviceProperty(ctx, path, "Vendor"); err == nil {
		b.Vendor = variantString(v)
	}
	return b
}

func batteryFromProps(props map[string]dbus.Variant) domain.Battery {
	b := domain.Battery{
		Serial:        variantString(props["Serial"]),
		Vendor:        variantString(props["Vendor"]),
		StateOfCharge: clampFraction(variantFloat64(props["Percentage"]) / 100),
	}
	secs := variantInt64(props["TimeToFull"])
	if secs > 0 || variantUint32(props["State"]) == upowerStateCharging {
		ttf := time.Duration(max(secs, 0)) * time.Second
		b.TimeToFull = &ttf
	}
	return b
}

// ─── D-Bus Transport ────────────────────────────────────────────────────────

type dbusUPower struct {
	conn *dbus.Conn
}

func (u *dbusUPower) EnumerateDevices(ctx context.Context) ([]dbus.ObjectPath, error) {
	var paths []dbus.ObjectPath
	obj := u.conn.Object(upowerDest, upowerPath)
	if err := obj.CallWithContext(ctx, upowerInterface+".EnumerateDevices", 0).Store(&paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (u *dbusUPower) DeviceProperties(ctx context.Context, path dbus.ObjectPath) (map[string]dbus.Variant, error) {
	props := make(map[string]dbus.Variant)
	obj := u.conn.Object(upowerDest, path)
	if err := obj.CallWithContext(ctx, propertiesGetAll, 0, upowerDeviceInterface).Store(&props); err != nil {
		return nil, err
	}
	return props, nil
}

func (u *dbusUPower) DeviceProperty(ctx context.Context, path dbus.ObjectPath, name string) (dbus.Variant, error) {
	var v dbus.Variant
	obj := u.conn.Object(upowerDest, path)
	if err := obj.CallWithContext(ctx, propertiesGet, 0, upowerDeviceInterface, name).Store(&v); err != nil {
		return dbus.Variant{}, err
	}
	return v, nil
}

// ─── Variant Helpers ────────────────────────────────────────────────────────
// Missing or mistyped properties read as zero values.

func variantString(v dbus.Variant) string {
	s, _ := v.Value().(string)
	return s
}

func variantBool(v dbus.Variant) bool {
	b, _ := v.Value().(bool)
	return b
}

func variantUint32(v dbus.Variant) uint32 {
	n, _ := v.Value().(uint32)
	return n
}

func variantInt64(v dbus.Variant) int64 {
	n, _ := v.Value().(int64)
	return n
}

func variantFloat64(v dbus.Variant) float64 {
	f, _ := v.Value().(float64)
	return f
}
