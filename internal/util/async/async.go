package async

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach calls fn for every index in [0, n) with at most limit calls in
// flight. A limit below 2 runs the calls sequentially in index order.
//
// fn reports its outcome through its own captured state, so one failing item
// never cancels the others. ForEach returns once every call has finished, or
// ctx's error if the context was cancelled before all items were started.
//
// Example:
//
//	results := make([]Result, len(items))
//	err := async.ForEach(ctx, len(items), 4, func(ctx context.Context, i int) {
//	    results[i] = process(ctx, items[i])
//	})
func ForEach(ctx context.Context, n, limit int, fn func(ctx context.Context, i int)) error {
	if limit < 2 {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(ctx, i)
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i := range n {
		if err := ctx.Err(); err != nil {
			_ = g.Wait()
			return err
		}
		g.Go(func() error {
			fn(ctx, i)
			return nil
		})
	}
	return g.Wait()
}
