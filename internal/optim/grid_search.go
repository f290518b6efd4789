package optim

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Objective scores one grid point; lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges, workers: runtime.GOMAXPROCS(0)}
}

// SetWorkers bounds how many points are evaluated at once.
func (g *GridSearch) SetWorkers(n int) {
	if n > 0 {
		g.workers = n
	}
}

// Candidates enumerates the cartesian product of the ranges.
func (g *GridSearch) Candidates() []map[string]float64 {
	var out []map[string]float64
	g.enumerate(0, map[string]float64{}, &out)
	return out
}

func (g *GridSearch) enumerate(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, maps.Clone(current))
		return
	}
	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		g.enumerate(depth+1, current, out)
	}
	delete(current, name)
}

// Search evaluates every candidate and returns the lowest score. Points whose
// objective fails are skipped; Search fails only when none succeed or ctx is
// done.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("grid search: %d names for %d ranges", len(g.paramNames), len(g.ranges))
	}
	candidates := g.Candidates()

	var (
		mu         sync.Mutex
		best       = math.Inf(1)
		bestParams map[string]float64
		lastErr    error
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for _, params := range candidates {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			val, err := objective(ctx, params)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				lastErr = err
				return nil
			}
			if val < best || bestParams == nil {
				best, bestParams = val, params
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}

	if bestParams == nil {
		if lastErr == nil {
			lastErr = errors.New("empty grid")
		}
		return nil, 0, fmt.Errorf("grid search: no candidate succeeded: %w", lastErr)
	}
	return bestParams, best, nil
}
