package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for goprim components.
type Registry struct {
	// Queue Metrics
	ItemsEnqueued *prometheus.CounterVec
	ItemsDequeued *prometheus.CounterVec
	QueueDepth    *prometheus.GaugeVec

	// Timer Metrics
	TimerFires       *prometheus.CounterVec
	TimerReschedules *prometheus.CounterVec

	// Worker Pool Metrics
	TasksExecuted  *prometheus.CounterVec
	TasksCompleted *prometheus.CounterVec
	TasksFailed    *prometheus.CounterVec
	TaskDuration   *prometheus.HistogramVec
	WorkerPoolSize *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by goprim components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Queue Metrics
		ItemsEnqueued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goprim",
				Subsystem: "queue",
				Name:      "items_enqueued_total",
				Help:      "Total number of items enqueued",
			},
			[]string{"queue_name"},
		),

		ItemsDequeued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goprim",
				Subsystem: "queue",
				Name:      "items_dequeued_total",
				Help:      "Total number of items dequeued",
			},
			[]string{"queue_name"},
		),

		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goprim",
				Subsystem: "queue",
				Name:      "depth",
				Help:      "Current number of items waiting in the queue",
			},
			[]string{"queue_name"},
		),

		// Timer Metrics
		TimerFires: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goprim",
				Subsystem: "timer",
				Name:      "fires_total",
				Help:      "Total number of timer callback invocations",
			},
			[]string{"timer_name"},
		),

		TimerReschedules: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goprim",
				Subsystem: "timer",
				Name:      "reschedules_total",
				Help:      "Total number of deadline replacements",
			},
			[]string{"timer_name"},
		),

		// Worker Pool Metrics
		TasksExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goprim",
				Subsystem: "workerpool",
				Name:      "tasks_executed_total",
				Help:      "Total number of tasks executed",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goprim",
				Subsystem: "workerpool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks completed without panicking",
			},
			[]string{"pool_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goprim",
				Subsystem: "workerpool",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that panicked during execution",
			},
			[]string{"pool_name"},
		),

		TaskDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "goprim",
				Subsystem: "workerpool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		WorkerPoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goprim",
				Subsystem: "workerpool",
				Name:      "size",
				Help:      "Current worker pool size",
			},
			[]string{"pool_name"},
		),
	}
}
