package queue

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/goprim/pkg/metrics"
)

// MetricsQueue wraps a Queue with Prometheus metrics collection.
type MetricsQueue[T any] struct {
	queue    *Queue[T]
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a queue that reports enqueue/dequeue counters
// and current depth under the given name.
func NewWithMetrics[T any](name string, config metrics.Config) *MetricsQueue[T] {
	// The default registerer already holds DefaultRegistry's collectors;
	// registering them again would panic.
	registry := metrics.DefaultRegistry
	if config.Registry != nil && config.Registry != prometheus.DefaultRegisterer {
		registry = metrics.NewRegistry(config.Registry)
	}

	return &MetricsQueue[T]{
		queue:    New[T](),
		name:     name,
		registry: registry,
		enabled:  config.Enabled,
	}
}

// Enqueue appends item and records the enqueue.
func (mq *MetricsQueue[T]) Enqueue(item T) {
	mq.queue.Enqueue(item)

	if mq.enabled {
		mq.registry.ItemsEnqueued.WithLabelValues(mq.name).Inc()
		mq.registry.QueueDepth.WithLabelValues(mq.name).Set(float64(mq.queue.Len()))
	}
}

// Dequeue blocks for the head item and records the dequeue.
func (mq *MetricsQueue[T]) Dequeue() T {
	item := mq.queue.Dequeue()

	if mq.enabled {
		mq.registry.ItemsDequeued.WithLabelValues(mq.name).Inc()
		mq.registry.QueueDepth.WithLabelValues(mq.name).Set(float64(mq.queue.Len()))
	}

	return item
}

// Len returns the number of items currently waiting.
func (mq *MetricsQueue[T]) Len() int {
	return mq.queue.Len()
}
