package workerpool

import (
	"errors"
	"fmt"
	"sync"
)

// ErrClosed is returned by Submit once Close has been called.
var ErrClosed = errors.New("workerpool: closed")

// Task is a unit of work. Fn must be safe to run concurrently with other
// tasks. If ResultC is set it receives exactly one Result and should be
// buffered.
type Task struct {
	Fn      func() (any, error)
	ResultC chan Result
}

type Result struct {
	Value any
	Err   error
}

type WorkerPool struct {
	tasks  chan Task
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool starts workerCount workers reading from a queue of
// queueSize tasks.
func NewWorkerPool(workerCount int, queueSize int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	wp := &WorkerPool{tasks: make(chan Task, queueSize)}
	wp.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		res := run(task.Fn)
		if task.ResultC != nil {
			task.ResultC <- res
		}
	}
}

func run(fn func() (any, error)) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("workerpool: task panicked: %v", r)}
		}
	}()
	v, err := fn()
	return Result{Value: v, Err: err}
}

// Submit queues the task, blocking while the queue is full.
func (wp *WorkerPool) Submit(task Task) error {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	if wp.closed {
		return ErrClosed
	}
	wp.tasks <- task
	return nil
}

// Close stops accepting tasks and waits for queued ones to finish.
func (wp *WorkerPool) Close() {
	wp.mu.Lock()
	if wp.closed {
		wp.mu.Unlock()
		return
	}
	wp.closed = true
	close(wp.tasks)
	wp.mu.Unlock()
	wp.wg.Wait()
}
