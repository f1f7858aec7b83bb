// Package metrics exports the result of a check as Prometheus gauges,
// written in the node_exporter textfile-collector format. bn exits after
// each run, so there is nothing to scrape; the textfile is the hand-off.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bn-notify/bn/internal/domain"
)

const namespace = "bn"

// Recorder holds the gauges for one run.
type Recorder struct {
	registry *prometheus.Registry

	percentage *prometheus.GaugeVec
	previous   *prometheus.GaugeVec
	charging   *prometheus.GaugeVec
	level      *prometheus.GaugeVec
	lastCheck  prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry, so only bn's
// gauges end up in the textfile.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		percentage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "battery_percentage",
			Help:      "Battery charge observed on the last check.",
		}, []string{"serial"}),
		previous: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "battery_previous_percentage",
			Help:      "Battery charge persisted by the check before the last one.",
		}, []string{"serial"}),
		charging: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "battery_charging",
			Help:      "1 if the battery reported a time to full on the last check.",
		}, []string{"serial"}),
		level: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notification_level",
			Help:      "Notification shown on the last check: 0 none, 1 warning, 2 critical.",
		}, []string{"serial"}),
		lastCheck: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_check_timestamp_seconds",
			Help:      "Unix time of the last completed check.",
		}),
	}
	r.registry.MustRegister(r.percentage, r.previous, r.charging, r.level, r.lastCheck)
	return r
}

// Observe records one check result.
func (r *Recorder) Observe(serial string, prev uint32, reading domain.Reading, level domain.Level, at time.Time) {
	r.percentage.WithLabelValues(serial).Set(float64(reading.Percentage))
	r.previous.WithLabelValues(serial).Set(float64(prev))
	charging := 0.0
	if reading.Charging {
		charging = 1
	}
	r.charging.WithLabelValues(serial).Set(charging)
	r.level.WithLabelValues(serial).Set(float64(level))
	r.lastCheck.Set(float64(at.Unix()))
}

// WriteTextfile writes the gauges to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
