// Package optim searches config parameter grids for the settings that
// minimise a headless run metric.
package optim

import (
	"context"
	"errors"
	"math"
	"sort"

	"github.com/san-kum/trails/internal/config"
)

var ErrNoCandidates = errors.New("optim: no grid point could be evaluated")

// Evaluate scores one config; lower is better.
type Evaluate func(ctx context.Context, cfg *config.Config) (float64, error)

// Point is one evaluated grid point.
type Point struct {
	Params map[string]float64
	Score  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates every grid point on a copy of base and returns the best
// params, its score and all points in evaluation order. Points whose
// params fail validation or whose evaluation errors are recorded and
// skipped.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, eval Evaluate) (map[string]float64, float64, []Point, error) {
	best := math.Inf(1)
	var bestParams map[string]float64
	var points []Point

	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, eval, &points)
	if err != nil {
		return nil, 0, points, err
	}

	for _, p := range points {
		if p.Err == nil && p.Score < best {
			best = p.Score
			bestParams = p.Params
		}
	}
	if bestParams == nil {
		return nil, 0, points, ErrNoCandidates
	}
	return bestParams, best, points, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	eval Evaluate,
	points *[]Point,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		cfg := *base
		p := Point{Params: current}
		for _, name := range g.paramNames {
			if p.Err = cfg.SetParam(name, current[name]); p.Err != nil {
				break
			}
		}
		if p.Err == nil {
			p.Score, p.Err = eval(ctx, &cfg)
		}
		*points = append(*points, p)
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, eval, points); err != nil {
			return err
		}
	}
	return nil
}

// Ranked returns the evaluated points sorted best first.
func Ranked(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Err == nil {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}
