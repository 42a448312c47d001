package workerpool

import (
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"

	gperrors "github.com/vnykmshr/goprim/pkg/common/errors"
	"github.com/vnykmshr/goprim/pkg/queue"
	"github.com/vnykmshr/goprim/pkg/refcount"
)

// Execute enqueues task for asynchronous execution by whichever worker
// dequeues it first. Tasks from one caller are dequeued in submission
// order. It returns an error for nil tasks and once shutdown has begun.
func (p *Pool) Execute(task Task) error {
	if task == nil {
		return fmt.Errorf("cannot execute: %w", gperrors.ErrNilTask)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.isShutdown {
		return fmt.Errorf("cannot execute: %w", gperrors.ErrShutdown)
	}

	p.tasks.Get().Enqueue(message{task: task})
	return nil
}

// Shutdown initiates a graceful shutdown: it enqueues exactly one stop
// sentinel per worker, so each worker finishes the tasks ahead of the
// sentinel and then exits. The returned channel closes once every worker
// has exited and all previously submitted tasks have completed.
func (p *Pool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		p.isShutdown = true
		q := p.tasks.Get()
		p.mu.Unlock()

		for i := 0; i < p.cfg.WorkerCount; i++ {
			q.Enqueue(message{stop: true})
		}

		go func() {
			p.workerWg.Wait()
			p.mu.Lock()
			p.tasks.Release()
			p.mu.Unlock()
			close(p.done)
		}()
	})

	return p.done
}

// worker drains the shared queue until it receives a stop sentinel.
// Each worker owns its own reference to the queue and releases it on
// exit, so the queue outlives whichever of pool and workers goes last.
func (p *Pool) worker(id int, tasks *refcount.Handle[*queue.Queue[message]]) {
	defer p.workerWg.Done()
	defer tasks.Release()

	q := tasks.Get()
	for {
		msg := q.Dequeue()
		if msg.stop {
			return
		}
		p.runTask(id, msg.task)
	}
}

// runTask isolates task failures: a panic is recovered and logged (or
// handed to the configured PanicHandler) and the worker moves on to the
// next task, so a failing task never shrinks pool capacity.
func (p *Pool) runTask(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			if p.cfg.PanicHandler != nil {
				p.cfg.PanicHandler(r)
				return
			}
			p.logger.Error("task panicked",
				zap.Int("worker", id),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()

	task()
}
