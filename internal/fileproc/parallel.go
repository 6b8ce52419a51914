// Package fileproc provides bounded-concurrency mapping over work items.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// DefaultWorkerMultiplier is applied to NumCPU when no worker count is
// given. Project analysis is mixed I/O and CGO work, so 2x saturates both.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each item completes.
type ProgressFunc func()

// TaskError records a failed item.
type TaskError struct {
	Name string
	Err  error
}

func (e TaskError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

// Errors collects failures across workers.
type Errors struct {
	Errors []TaskError
	mu     sync.Mutex
}

// Add appends an error. Safe for concurrent use.
func (e *Errors) Add(name string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, TaskError{Name: name, Err: err})
	e.mu.Unlock()
}

// HasErrors reports whether any item failed.
func (e *Errors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

func (e *Errors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d items failed (first: %v)", len(e.Errors), e.Errors[0])
}

// MapOrdered runs fn over items with at most workers goroutines and returns
// results in input order. Failed or cancelled items leave a zero value at
// their position and are reported through the returned Errors. If workers
// is <= 0 it defaults to 2x NumCPU.
func MapOrdered[T, R any](
	ctx context.Context,
	items []T,
	workers int,
	name func(T) string,
	fn func(context.Context, T) (R, error),
	onProgress ProgressFunc,
) ([]R, *Errors) {
	if len(items) == 0 {
		return nil, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]R, len(items))
	errs := &Errors{}

	p := pool.New().WithMaxGoroutines(workers)
	for i, item := range items {
		p.Go(func() {
			defer func() {
				if onProgress != nil {
					onProgress()
				}
			}()

			if err := ctx.Err(); err != nil {
				errs.Add(name(item), err)
				return
			}

			result, err := fn(ctx, item)
			if err != nil {
				errs.Add(name(item), err)
				return
			}
			results[i] = result
		})
	}
	p.Wait()

	if !errs.HasErrors() {
		return results, nil
	}
	return results, errs
}
