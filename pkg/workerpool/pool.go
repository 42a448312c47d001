package workerpool

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	gperrors "github.com/vnykmshr/goprim/pkg/common/errors"
	"github.com/vnykmshr/goprim/pkg/queue"
	"github.com/vnykmshr/goprim/pkg/refcount"
)

// Task is a unit of work: zero arguments, no result. Execution is
// fire-and-forget; Execute returning gives no guarantee the task has run.
type Task func()

// message is what travels through the pool's queue: either a task or an
// explicit stop sentinel. The sentinel is a tagged variant rather than a
// nil task, so nil tasks can be rejected at submission.
type message struct {
	task Task
	stop bool
}

// DefaultWorkerCount is the pool size used when none is configured.
const DefaultWorkerCount = 32

// Config holds configuration options for creating a worker pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// Zero selects DefaultWorkerCount; negative values are rejected.
	WorkerCount int

	// Logger receives diagnostics for recovered task panics.
	// If nil, a no-op logger is used.
	Logger *zap.Logger

	// PanicHandler, if set, is called with the recovered value instead
	// of logging when a task panics. The worker continues either way.
	PanicHandler func(recovered interface{})
}

// Pool is a fixed set of worker goroutines draining one shared blocking
// queue. Tasks are executed in dequeue order by whichever worker is free
// first; no ordering is guaranteed across workers.
type Pool struct {
	cfg    Config
	logger *zap.Logger

	// tasks is the pool's own reference to the shared queue. Every
	// worker retains an additional reference and releases it on exit.
	tasks *refcount.Handle[*queue.Queue[message]]

	mu         sync.RWMutex
	isShutdown bool

	shutdownOnce sync.Once
	done         chan struct{}
	workerWg     sync.WaitGroup
}

// New creates a pool with the given number of workers; zero selects
// DefaultWorkerCount. It panics on a negative count; use NewWithConfig
// for an error-returning constructor.
func New(workerCount int) *Pool {
	pool, err := NewWithConfig(Config{WorkerCount: workerCount})
	if err != nil {
		panic(err)
	}
	return pool
}

// NewWithConfig creates a pool from cfg. The workers start immediately
// and block on the shared queue until tasks arrive.
func NewWithConfig(cfg Config) (*Pool, error) {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = DefaultWorkerCount
	}
	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("%w: worker count must be positive, got %d",
			gperrors.ErrInvalidConfiguration, cfg.WorkerCount)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{
		cfg:    cfg,
		logger: logger,
		tasks:  queue.NewShared[message](),
		done:   make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		p.workerWg.Add(1)
		go p.worker(i, p.tasks.Retain())
	}

	return p, nil
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return p.cfg.WorkerCount
}

// QueueLen returns the number of tasks waiting for a worker. During
// shutdown the count includes the stop sentinels.
func (p *Pool) QueueLen() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.tasks.IsNil() {
		return 0
	}
	return p.tasks.Get().Len()
}
