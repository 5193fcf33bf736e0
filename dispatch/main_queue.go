// Package dispatch provides the serial "main" queue on which every async
// completion is delivered, so continuations may touch caller-owned state
// without locking.
package dispatch

import (
	"errors"
	"log"
	"sync"
)

var ErrQueueClosed = errors.New("main queue closed")

// MainQueue runs submitted closures one at a time, in submission order,
// on a single goroutine.
type MainQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	tasks  []func()
	closed bool
	done   chan struct{}
}

func NewMainQueue() *MainQueue {
	q := &MainQueue{done: make(chan struct{})}
	q.cond = sync.NewCond(&q.mu)
	go q.run()
	return q
}

// Async enqueues fn without waiting for it to run.
func (q *MainQueue) Async(fn func()) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.tasks = append(q.tasks, fn)
	q.cond.Signal()
	return nil
}

// Sync enqueues fn and blocks until it has run. It must not be called from
// the queue itself.
func (q *MainQueue) Sync(fn func()) error {
	finished := make(chan struct{})
	if err := q.Async(func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}
	<-finished
	return nil
}

// Close stops accepting work, drains what is already queued and waits for
// the worker to exit.
func (q *MainQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.cond.Signal()
	}
	q.mu.Unlock()
	<-q.done
}

func (q *MainQueue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		for len(q.tasks) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.tasks) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		fn := q.tasks[0]
		q.tasks[0] = nil
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		q.invoke(fn)
	}
}

func (q *MainQueue) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[MainQueue] Recovered from panic in task: %v", r)
		}
	}()
	fn()
}
