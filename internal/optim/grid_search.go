package optim

import (
	"context"
	"errors"
	"math"
)

// ErrNoCandidate is returned when no grid point gets a finite score.
var ErrNoCandidate = errors.New("optim: no candidate meets the tolerance")

// ScoreFunc evaluates one grid point. Lower is better; +Inf rejects the
// point.
type ScoreFunc func(ctx context.Context, params map[string]float64) (float64, error)

// GridSearch scores every point of the cartesian product of ranges.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search returns the best point and its score. Points whose score fails
// are skipped; a cancelled context stops the search.
func (g *GridSearch) Search(ctx context.Context, score ScoreFunc) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), score, &best, &bestParams); err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, best, ErrNoCandidate
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	score ScoreFunc,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		val, err := score(ctx, current)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return nil
		}

		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, score, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
