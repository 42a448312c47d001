package timer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/goprim/pkg/metrics"
)

// MetricsTimer wraps a Timer with Prometheus metrics collection: one
// counter for fires, one for reschedules.
type MetricsTimer struct {
	timer    *Timer
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics starts a disarmed timer that reports under name.
func NewWithMetrics(name string, config metrics.Config) *MetricsTimer {
	// The default registerer already holds DefaultRegistry's collectors;
	// registering them again would panic.
	registry := metrics.DefaultRegistry
	if config.Registry != nil && config.Registry != prometheus.DefaultRegisterer {
		registry = metrics.NewRegistry(config.Registry)
	}

	return &MetricsTimer{
		timer:    New(),
		name:     name,
		registry: registry,
		enabled:  config.Enabled,
	}
}

// Set replaces callback and deadline, counting the reschedule and each
// subsequent fire.
func (mt *MetricsTimer) Set(callback Callback, d time.Duration) {
	mt.countReschedule()
	mt.timer.Set(mt.instrument(callback), d)
}

// Reset replaces only the deadline.
func (mt *MetricsTimer) Reset(d time.Duration) {
	mt.countReschedule()
	mt.timer.Reset(d)
}

// SetSchedule arms the timer for a cron expression's next activation.
func (mt *MetricsTimer) SetSchedule(expr string, callback Callback) error {
	err := mt.timer.SetSchedule(expr, mt.instrument(callback))
	if err == nil {
		mt.countReschedule()
	}
	return err
}

// Deadline returns the currently armed deadline.
func (mt *MetricsTimer) Deadline() time.Time {
	return mt.timer.Deadline()
}

// Stop tears the underlying timer down.
func (mt *MetricsTimer) Stop() {
	mt.timer.Stop()
}

func (mt *MetricsTimer) countReschedule() {
	if mt.enabled {
		mt.registry.TimerReschedules.WithLabelValues(mt.name).Inc()
	}
}

// instrument wraps callback so every fire is counted.
func (mt *MetricsTimer) instrument(callback Callback) Callback {
	if callback == nil || !mt.enabled {
		return callback
	}
	return func() {
		mt.registry.TimerFires.WithLabelValues(mt.name).Inc()
		callback()
	}
}
