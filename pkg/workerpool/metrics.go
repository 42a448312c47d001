package workerpool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/goprim/pkg/metrics"
)

// MetricsPool wraps a Pool with Prometheus metrics collection.
type MetricsPool struct {
	pool     *Pool
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a worker pool with metrics enabled.
func NewWithMetrics(workerCount int, name string) (*MetricsPool, error) {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewWithConfigAndMetrics(Config{WorkerCount: workerCount}, name, config)
}

// NewWithConfigAndMetrics creates a worker pool with custom config and metrics.
func NewWithConfigAndMetrics(cfg Config, name string, metricsConfig metrics.Config) (*MetricsPool, error) {
	pool, err := NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}

	// The default registerer already holds DefaultRegistry's collectors;
	// registering them again would panic.
	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil && metricsConfig.Registry != prometheus.DefaultRegisterer {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	mp := &MetricsPool{
		pool:     pool,
		name:     name,
		registry: registry,
		enabled:  metricsConfig.Enabled,
	}

	if mp.enabled {
		mp.registry.WorkerPoolSize.WithLabelValues(mp.name).Set(float64(pool.Size()))
	}

	return mp, nil
}

// Execute enqueues task, recording execution count, outcome, and
// duration. A panicking task is counted as failed and then re-panics so
// the pool's own failure policy applies.
func (mp *MetricsPool) Execute(task Task) error {
	if !mp.enabled || task == nil {
		return mp.pool.Execute(task)
	}

	wrapped := func() {
		start := time.Now()
		mp.registry.TasksExecuted.WithLabelValues(mp.name).Inc()
		defer func() {
			mp.registry.TaskDuration.WithLabelValues(mp.name).Observe(time.Since(start).Seconds())
			if r := recover(); r != nil {
				mp.registry.TasksFailed.WithLabelValues(mp.name).Inc()
				panic(r)
			}
			mp.registry.TasksCompleted.WithLabelValues(mp.name).Inc()
		}()
		task()
	}

	err := mp.pool.Execute(wrapped)
	if err == nil {
		mp.registry.QueueDepth.WithLabelValues(mp.name).Set(float64(mp.pool.QueueLen()))
	}
	return err
}

// Shutdown initiates graceful shutdown of the underlying pool.
func (mp *MetricsPool) Shutdown() <-chan struct{} {
	return mp.pool.Shutdown()
}

// Size returns the number of workers.
func (mp *MetricsPool) Size() int {
	return mp.pool.Size()
}

// QueueLen returns the number of tasks waiting for a worker.
func (mp *MetricsPool) QueueLen() int {
	queued := mp.pool.QueueLen()

	if mp.enabled {
		mp.registry.QueueDepth.WithLabelValues(mp.name).Set(float64(queued))
	}

	return queued
}
