// Package service defines the live shooting service: the launcher, arena and
// solver built from configuration, swapped atomically on reload and shared by
// the HTTP API, the ROS bridge and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/cxd309/hoopshot/internal/arena"
	"github.com/cxd309/hoopshot/internal/config"
	"github.com/cxd309/hoopshot/internal/metrics"
	"github.com/cxd309/hoopshot/internal/shot"
	"github.com/cxd309/hoopshot/internal/solver"
)

// reachStep is the distance grid spacing of a reach table, metres.
const reachStep = 0.05

// Setup is the static definition of the service, built once per config.
type Setup struct {
	Launcher shot.Launcher
	Arc      shot.Arc
	Arena    *arena.Arena
	Solver   *solver.Solver
}

// NewSetup validates cfg and builds the launcher, arena and solver it describes.
func NewSetup(cfg *config.Config) (*Setup, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	launcher, err := cfg.Launcher.Build()
	if err != nil {
		return nil, err
	}
	arc, err := cfg.Solver.ParsedArc()
	if err != nil {
		return nil, err
	}
	a, err := arena.New(cfg.Arena)
	if err != nil {
		return nil, err
	}
	return &Setup{
		Launcher: launcher,
		Arc:      arc,
		Arena:    a,
		Solver:   solver.New(solver.WithLauncher(launcher)),
	}, nil
}

// Service serves shots against the current Setup.
type Service struct {
	setup atomic.Pointer[Setup]
}

// New creates a Service from cfg.
func New(cfg *config.Config) (*Service, error) {
	setup, err := NewSetup(cfg)
	if err != nil {
		return nil, err
	}
	s := &Service{}
	s.setup.Store(setup)
	return s, nil
}

// Reload replaces the Setup. On error the current Setup stays in place.
func (s *Service) Reload(cfg *config.Config) error {
	setup, err := NewSetup(cfg)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	s.setup.Store(setup)
	return nil
}

// Setup returns the Setup in effect.
func (s *Service) Setup() *Setup { return s.setup.Load() }

// Solve solves req with the current launcher and records solve metrics.
// The error explains a failed result and is nil on success.
func (s *Service) Solve(req shot.Request) (shot.Result, error) {
	start := time.Now()
	res, err := s.Setup().Solver.SolveDetailed(req)
	metrics.ObserveSolve(req.Arc, res, time.Since(start))
	return res, err
}

// AimLog is the outcome of aiming from a pose.
type AimLog struct {
	Hoop     arena.HoopID `json:"hoop"`
	Distance float64      `json:"distance"` // metres
	Bearing  float64      `json:"bearing"`  // radians
	Result   shot.Result  `json:"result"`
	Error    string       `json:"error,omitempty"` // reason for failure, empty on success
}

// Aim solves a shot from pose at the hoop with the given id, or at the nearest
// hoop when id is empty. An unknown hoop is an error; an infeasible shot is not.
func (s *Service) Aim(pose arena.Pose, id arena.HoopID) (AimLog, error) {
	setup := s.Setup()

	var (
		aim arena.Aim
		err error
	)
	if id == "" {
		aim, err = setup.Arena.Nearest(pose)
	} else {
		aim, err = setup.Arena.Aim(pose, id)
	}
	if err != nil {
		return AimLog{}, err
	}

	log := AimLog{Hoop: aim.Hoop, Distance: aim.Distance, Bearing: aim.Bearing}
	log.Result, err = s.Solve(aim.Request(setup.Launcher.Height, setup.Arc))
	if err != nil {
		log.Error = err.Error()
	}
	return log, nil
}

// ReachLog is the feasible distance band for a launch and target height.
type ReachLog struct {
	Inner float64 `json:"inner"` // metres
	Outer float64 `json:"outer"` // metres
	OK    bool    `json:"ok"`
}

// Reach tabulates shots from just beyond zero to the arena diagonal and
// returns the first feasible band.
func (s *Service) Reach(ctx context.Context, robotHeight, targetHeight float64, arc shot.Arc) (ReachLog, error) {
	if robotHeight < 0 || targetHeight < 0 {
		return ReachLog{}, errors.New("heights must not be negative")
	}
	setup := s.Setup()
	diagonal := math.Hypot(setup.Arena.Width(), setup.Arena.Height())

	rows, err := setup.Solver.Table(ctx, solver.TableSpec{
		RobotHeight:  robotHeight,
		TargetHeight: targetHeight,
		Arc:          arc,
		From:         reachStep,
		To:           diagonal,
		Points:       int(math.Ceil(diagonal/reachStep)) + 1,
	})
	if err != nil {
		return ReachLog{}, err
	}
	band, ok := solver.Reach(rows)
	return ReachLog{Inner: band.Inner, Outer: band.Outer, OK: ok}, nil
}
