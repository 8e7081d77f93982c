package task

import (
	"context"
	"log/slog"
	"sync"
)

// WorkerPool runs a fixed number of goroutines that drain a task queue.
type WorkerPool struct {
	taskQueue   TaskQueueReader
	workerCount int
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *slog.Logger
}

// WorkerPoolConfig holds configuration options for the worker pool.
type WorkerPoolConfig struct {
	// WorkerCount determines how many concurrent workers to start.
	// Zero or negative falls back to 1.
	WorkerCount int
}

// NewWorkerPool creates a worker pool reading from taskQueue. Workers do
// not run until Start is called.
func NewWorkerPool(taskQueue TaskQueueReader, config WorkerPoolConfig, logger *slog.Logger) *WorkerPool {
	workerCount := config.WorkerCount
	if workerCount <= 0 {
		workerCount = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		taskQueue:   taskQueue,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger.With(slog.String("component", "worker_pool")),
	}
}

// Start launches the worker goroutines. Each worker runs tasks one at a
// time until the queue channel closes or Stop is called.
func (p *WorkerPool) Start() {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.runWorker(i)
	}
	p.logger.Info("worker pool started", slog.Int("worker_count", p.workerCount))
}

// Stop cancels in-flight task contexts and waits for all workers to exit.
// Close the queue first so workers stop receiving new work.
func (p *WorkerPool) Stop() {
	p.cancel()
	p.wg.Wait()
	p.logger.Info("worker pool stopped")
}

// Wait blocks until all workers have exited, without cancelling them.
// Useful after closing the queue to let buffered tasks drain.
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

func (p *WorkerPool) runWorker(id int) {
	defer p.wg.Done()

	logger := p.logger.With(slog.Int("worker_id", id))

	for {
		select {
		case <-p.ctx.Done():
			return
		case t, ok := <-p.taskQueue.GetChannel():
			if !ok {
				return
			}
			logger.Debug("executing task",
				slog.String("task_id", t.ID().String()),
				slog.String("task_type", t.Type()))
			if err := t.Execute(p.ctx); err != nil {
				// The task records its own failure state; the pool just
				// logs and moves on to the next one.
				logger.Error("task execution failed",
					slog.String("task_id", t.ID().String()),
					slog.String("task_type", t.Type()),
					slog.String("error", err.Error()))
			}
		}
	}
}
