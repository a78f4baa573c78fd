// Package frame turns a per-split callback into a concrete set of
// concurrent goroutines, one per frame.
//
// This is the master/worker barrier the core's split model describes in
// the abstract, made concrete: it is grounded on gogpu-gg's
// internal/parallel.WorkerPool, but adapted from a generic work-stealing
// pool (arbitrary queued work items, steal-on-idle) into a fixed-worker
// barrier that launches exactly N calls and waits for all N to finish
// before returning, matching the core's expectation of one call per
// split per frame rather than an open work queue.
package frame

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Scheduler runs a fixed number of splits per frame as concurrent
// goroutines, joined with a barrier before RunFrame returns.
//
// The zero value is not usable; construct with NewScheduler.
type Scheduler struct {
	splits int
}

// NewScheduler returns a Scheduler that fans a frame out across splits
// goroutines. If splits is 0 or negative, 1 is used (serial execution
// on the calling goroutine's behalf, via a single-iteration errgroup).
func NewScheduler(splits int) *Scheduler {
	if splits <= 0 {
		splits = 1
	}
	return &Scheduler{splits: splits}
}

// Splits returns the number of splits the scheduler fans a frame out
// across.
func (s *Scheduler) Splits() int {
	return s.splits
}

// RunFrame calls fn(split, numSplits) once per split, each on its own
// goroutine, and blocks until every call has returned. fn must treat
// split as a disjoint partition index: callers in this codebase pass
// (split, numSplits) straight through to Rasterize/ClearColor/
// ClearDepth/Blit, which stripe tiles by split == tileIndex % numSplits.
//
// A panic inside fn propagates out of RunFrame after the other splits
// finish, via errgroup's panic-to-goroutine-exit behavior. fn has no
// error result: an operation that can fail (Blit) must have its error
// handled inside fn.
func (s *Scheduler) RunFrame(fn func(split, numSplits int)) {
	g, _ := errgroup.WithContext(context.Background())
	for split := 0; split < s.splits; split++ {
		split := split
		g.Go(func() error {
			fn(split, s.splits)
			return nil
		})
	}
	// fn's signature has no error to propagate; Wait only guards the
	// barrier.
	_ = g.Wait()
}
