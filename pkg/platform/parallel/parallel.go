// Package parallel provides a join combinator: run N independent tasks,
// wait for every one of them, and never short-circuit on the first failure.
package parallel

import (
	"context"
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// Task is one unit of independent work.
type Task[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// Outcome is the value or error produced by a Task.
type Outcome[T any] struct {
	Name  string
	Value T
	Err   error
}

// OK reports whether the task completed without error.
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// TaskPanic is returned in place of a task's error when the task panicked.
type TaskPanic struct {
	Task  string
	Value any
	Stack []byte
}

func (p *TaskPanic) Error() string {
	return fmt.Sprintf("task %s panicked: %v", p.Task, p.Value)
}

// All runs every task concurrently and returns their outcomes in submission
// order. Sibling tasks are not cancelled when one fails; the returned slice
// always has len(tasks) entries.
func All[T any](ctx context.Context, tasks ...Task[T]) []Outcome[T] {
	outcomes := make([]Outcome[T], len(tasks))

	// A plain Group (not WithContext) so one failure never cancels the others.
	var g errgroup.Group
	for i, task := range tasks {
		outcomes[i].Name = task.Name
		g.Go(func() error {
			outcomes[i].Value, outcomes[i].Err = run(ctx, task)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func run[T any](ctx context.Context, task Task[T]) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TaskPanic{Task: task.Name, Value: r, Stack: debug.Stack()}
		}
	}()
	if task.Run == nil {
		return value, fmt.Errorf("task %s has no run function", task.Name)
	}
	return task.Run(ctx)
}
