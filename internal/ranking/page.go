package ranking

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Options control cutoff filtering and pagination of a ranked pool.
type Options struct {
	MinScore int `mapstructure:"min-score" json:"min_score,omitempty"`
	Offset   int `mapstructure:"offset" json:"offset,omitempty"`
	// Limit of 0 returns every remaining item.
	Limit int `mapstructure:"limit" json:"limit,omitempty"`
}

// Page is one page of a ranked pool. Total counts the items left after the cutoff, not the pool.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Paginate orders items by descending score, drops those below opts.MinScore and applies
// offset and limit. Items with equal scores keep their input order.
func Paginate[T any](items []T, score func(T) int, opts Options) Page[T] {
	sorted := append([]T{}, items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return score(sorted[i]) > score(sorted[j])
	})

	kept := sorted[:0]
	for _, item := range sorted {
		if score(item) >= opts.MinScore {
			kept = append(kept, item)
		}
	}

	page := Page[T]{Items: []T{}, Total: len(kept)}

	offset := max(opts.Offset, 0)
	if offset >= len(kept) {
		return page
	}
	kept = kept[offset:]
	if opts.Limit > 0 && opts.Limit < len(kept) {
		kept = kept[:opts.Limit]
	}
	page.Items = kept
	return page
}

// ScoreAll applies fn to every item in parallel and returns the results in input order.
// It stops early when ctx is cancelled.
func ScoreAll[In, Out any](ctx context.Context, items []In, fn func(In) Out) ([]Out, error) {
	out := make([]Out, len(items))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, item := range items {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			out[i] = fn(item)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
