// Package queue implements the deferred command queue: an ordered, run-once
// buffer of pending operations applied sequentially to a shared target.
package queue

import (
	"context"
	"fmt"
	"sync"
)

// Command is a single deferred operation. Implementations carry their own
// typed parameters, so enqueueing is checked at compile time.
type Command[T any] interface {
	// Name identifies the command in logs and events.
	Name() string

	// Apply executes the command against the shared target. It must complete
	// (including any nested work) before the next command runs.
	Apply(ctx context.Context, target T) error
}

// Queue accumulates commands until drained. Enqueue never executes anything;
// Drain is the sole ordering authority.
type Queue[T any] struct {
	mu      sync.Mutex
	pending []Command[T]
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Enqueue appends a command to the tail. It is unbounded and returns
// immediately.
func (q *Queue[T]) Enqueue(cmd Command[T]) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, cmd)
}

// Len reports the number of commands waiting for the next drain.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain takes an atomic snapshot of the queued commands, clears the queue,
// then executes the snapshot strictly in FIFO order against target. Commands
// enqueued while a drain is running are kept for the next drain.
//
// If a command fails, Drain stops and returns the failure; the rest of the
// snapshot is discarded, not requeued. Callers must not assume
// partial-failure safety.
func (q *Queue[T]) Drain(ctx context.Context, target T) error {
	q.mu.Lock()
	snapshot := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, cmd := range snapshot {
		if err := cmd.Apply(ctx, target); err != nil {
			return fmt.Errorf("command %q failed: %w", cmd.Name(), err)
		}
	}
	return nil
}
