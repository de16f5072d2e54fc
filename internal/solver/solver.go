// Package solver implements the launch-parameter search.
//
// For a target at (distance, heightDiff) the search sweeps launch angles on a
// 0.1° grid over the arc's sub-range, lowest angle first:
//
//  1. Kernel pass - the ballistics model gives the speed required at each
//     angle, or reports that the angle cannot reach the target.
//
//  2. Selection pass - candidates at or above the speed cap are dropped, and a
//     candidate replaces the current best only if it is strictly slower and
//     its trajectory verifies against the target height.
//
// The solver holds no mutable state and is safe for concurrent use.
package solver

import (
	"errors"
	"math"

	"github.com/cxd309/hoopshot/internal/ballistics"
	"github.com/cxd309/hoopshot/internal/shot"
)

// ErrNoTrajectory is returned when no angle in the sub-range yields an accepted launch.
var ErrNoTrajectory = errors.New("no feasible trajectory")

// Solver searches for the minimum-speed launch under a ballistics model.
type Solver struct {
	model    ballistics.Model
	maxSpeed float64
}

// Option configures a Solver.
type Option func(*Solver)

// WithModel sets the ballistics model. A nil model is ignored.
func WithModel(m ballistics.Model) Option {
	return func(s *Solver) {
		if m != nil {
			s.model = m
		}
	}
}

// WithMaxSpeed lowers the speed cap. Values that are not positive or exceed
// ballistics.MaxSpeed leave the physical cap in place.
func WithMaxSpeed(v float64) Option {
	return func(s *Solver) {
		if v > 0 && v < s.maxSpeed {
			s.maxSpeed = v
		}
	}
}

// WithLauncher applies the launcher's model and mechanical speed limit.
func WithLauncher(l shot.Launcher) Option {
	return func(s *Solver) {
		WithModel(l.Model)(s)
		WithMaxSpeed(l.MaxSpeed)(s)
	}
}

// New constructs a drag-free Solver capped at ballistics.MaxSpeed, then applies opts.
func New(opts ...Option) *Solver {
	s := &Solver{
		model:    ballistics.DragFree{},
		maxSpeed: ballistics.MaxSpeed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxSpeed returns the effective speed cap in m/s.
func (s *Solver) MaxSpeed() float64 { return s.maxSpeed }

// Model returns the ballistics model used by the solver.
func (s *Solver) Model() ballistics.Model { return s.model }

// Search sweeps r and returns the feasible candidate with the smallest
// required speed. Ties keep the lowest angle.
func (s *Solver) Search(distance, heightDiff float64, r shot.Range) (Candidate, bool) {
	var best Candidate
	found := false
	minSpeed := math.Inf(1)

	// Integer tenths keep every implementation on the same grid points.
	for tenths := r.MinTenths; tenths <= r.MaxTenths; tenths++ {
		angleDeg := float64(tenths) / 10
		theta := ballistics.Radians(angleDeg)

		speed, ok := s.model.RequiredSpeed(distance, heightDiff, theta)
		if !ok {
			continue
		}
		if speed >= s.maxSpeed || speed >= minSpeed {
			continue
		}
		if !ballistics.Verify(s.model, distance, heightDiff, theta, speed) {
			continue
		}

		minSpeed = speed
		best = Candidate{AngleDeg: angleDeg, Speed: speed}
		found = true
	}
	return best, found
}

// Solve validates req, searches its arc's sub-range and encodes the outcome.
// Invalid input and unreachable targets both yield shot.Failed.
func (s *Solver) Solve(req shot.Request) shot.Result {
	res, _ := s.SolveDetailed(req)
	return res
}

// SolveDetailed is Solve with a diagnostic error: it wraps shot.ErrInvalidRequest
// for out-of-domain input and returns ErrNoTrajectory when the search finds nothing.
// The result is identical to Solve's.
func (s *Solver) SolveDetailed(req shot.Request) (shot.Result, error) {
	if err := req.Validate(); err != nil {
		return shot.Failed, err
	}

	c, ok := s.Search(req.Distance, req.HeightDifference(), req.Arc.Range())
	if !ok {
		return shot.Failed, ErrNoTrajectory
	}
	return shot.Result{Angle: c.AngleDeg, Velocity: c.Speed, Success: true}, nil
}

// Simulate returns the absolute height reached at targetDistance for a launch
// from robotHeight. It performs no input validation.
func (s *Solver) Simulate(speed, angleDeg, robotHeight, targetDistance float64) float64 {
	return robotHeight + s.model.HeightAt(speed, ballistics.Radians(angleDeg), targetDistance)
}
