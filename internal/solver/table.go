package solver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/cxd309/hoopshot/internal/shot"
)

const defaultTableWorkers = 4

// Table solves the shot at every distance of spec's grid. Rows are returned in
// grid order regardless of the order in which workers finish.
func (s *Solver) Table(ctx context.Context, spec TableSpec) ([]Row, error) {
	if spec.Points < 2 {
		return nil, fmt.Errorf("table needs at least 2 points, got %d", spec.Points)
	}
	if !(spec.To > spec.From) {
		return nil, fmt.Errorf("table range [%g, %g] is empty", spec.From, spec.To)
	}
	workers := spec.Workers
	if workers <= 0 {
		workers = defaultTableWorkers
	}

	distances := floats.Span(make([]float64, spec.Points), spec.From, spec.To)
	rows := make([]Row, len(distances))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, d := range distances {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[i] = Row{
				Distance: d,
				Result: s.Solve(shot.Request{
					Distance:     d,
					RobotHeight:  spec.RobotHeight,
					TargetHeight: spec.TargetHeight,
					Arc:          spec.Arc,
				}),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Reach returns the first contiguous run of successful rows as a distance band,
// the ring around the target from which a shot exists. ok is false when no row succeeds.
func Reach(rows []Row) (Band, bool) {
	start := -1
	for i, r := range rows {
		if r.Result.Success {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return Band{Inner: rows[start].Distance, Outer: rows[i-1].Distance}, true
		}
	}
	if start < 0 {
		return Band{}, false
	}
	return Band{Inner: rows[start].Distance, Outer: rows[len(rows)-1].Distance}, true
}
