package service

import (
	"context"
	"fmt"
)

// Task is a unit of work detached from the request that started it
type Task struct {
	done chan struct{}
	err  error
}

// Done is closed once the task has finished
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes and returns its error
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// detach runs fn on its own goroutine with a context that outlives the caller's
// cancellation but keeps its values. Errors and panics are logged here; callers
// never wait on the result.
func (o *Orchestrator) detach(ctx context.Context, operation string, fn func(context.Context) error) *Task {
	t := &Task{done: make(chan struct{})}
	dctx := context.WithoutCancel(ctx)

	o.tasks.Add(1)
	go func() {
		defer o.tasks.Done()
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.err = fmt.Errorf("panic: %v", r)
				NewLogger(dctx).LogError(operation, t.err)
			}
		}()

		logger := NewLogger(dctx)
		if t.err = fn(dctx); t.err != nil {
			logger.LogError(operation, t.err)
			return
		}
		logger.LogInfof(operation, "completed")
	}()
	return t
}
