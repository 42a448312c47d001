// Package metrics provides Prometheus instrumentation for goprim components.
//
// The package holds one Registry of collectors covering the library's
// components:
//   - Queues (items enqueued, items dequeued, current depth)
//   - Timers (fires, reschedules)
//   - Worker pools (tasks executed, completed, failed, durations, size)
//
// Enable metrics by using the metrics-enabled constructors:
//
//	// Queue with metrics
//	q := queue.NewWithMetrics[Job]("ingest", metrics.DefaultConfig())
//
//	// Timer with metrics
//	t := timer.NewWithMetrics("session", metrics.DefaultConfig())
//
//	// Worker pool with metrics
//	pool, err := workerpool.NewWithMetrics(8, "background")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// Components instrumented against the same prometheus.Registerer must
// use distinct names; each NewRegistry call registers fresh collectors,
// so per-component registries avoid duplicate registration entirely.
package metrics
