package actions

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Batch holds the results of RunAll in invocation order. Resolved lists
// the same results' sequence numbers in the order they completed.
type Batch struct {
	Results  []Result
	Resolved []uint64
}

// Last is the result that resolved last: what a shared message field
// would show once the whole batch is done.
func (b Batch) Last() (Result, bool) {
	if len(b.Resolved) == 0 {
		return Result{}, false
	}
	seq := b.Resolved[len(b.Resolved)-1]
	for _, r := range b.Results {
		if r.Seq == seq {
			return r, true
		}
	}
	return Result{}, false
}

// RunAll performs acts concurrently. Sequence numbers start at 1 in
// invocation order. Failures are reported per result, never as an error
// of the batch.
func RunAll(ctx context.Context, c Client, p Params, acts ...Action) Batch {
	b := Batch{Results: make([]Result, len(acts))}
	var mu sync.Mutex

	var g errgroup.Group
	for i, a := range acts {
		i, req := i, Request{Action: a, Seq: uint64(i + 1), Params: p}
		g.Go(func() error {
			r := Perform(ctx, c, req)
			mu.Lock()
			b.Results[i] = r
			b.Resolved = append(b.Resolved, r.Seq)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return b
}

// RunSequential performs acts one at a time in invocation order, so each
// call sees the session state left by the previous one.
func RunSequential(ctx context.Context, c Client, p Params, acts ...Action) Batch {
	b := Batch{Results: make([]Result, 0, len(acts))}
	for i, a := range acts {
		r := Perform(ctx, c, Request{Action: a, Seq: uint64(i + 1), Params: p})
		b.Results = append(b.Results, r)
		b.Resolved = append(b.Resolved, r.Seq)
	}
	return b
}
