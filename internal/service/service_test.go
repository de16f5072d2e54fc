package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/hoopshot/internal/arena"
	"github.com/cxd309/hoopshot/internal/config"
	"github.com/cxd309/hoopshot/internal/shot"
	"github.com/cxd309/hoopshot/internal/solver"
)

func newService(t *testing.T) *Service {
	t.Helper()
	s, err := New(config.DefaultConfig())
	require.NoError(t, err)
	return s
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Launcher.Model = "magnus"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestSolveMatchesSolver(t *testing.T) {
	s := newService(t)
	req := shot.Request{Distance: 4.57, RobotHeight: 0.5, TargetHeight: 3.05, Arc: shot.ArcAny}

	res, err := s.Solve(req)
	require.NoError(t, err)
	assert.Equal(t, solver.CalculateTrajectory(4.57, 0.5, 3.05), res)

	res, err = s.Solve(shot.Request{Distance: -1, Arc: shot.ArcAny})
	assert.ErrorIs(t, err, shot.ErrInvalidRequest)
	assert.Equal(t, shot.Failed, res)
}

func TestReloadSwapsSetup(t *testing.T) {
	s := newService(t)
	req := shot.Request{Distance: 4.57, RobotHeight: 0.5, TargetHeight: 3.05, Arc: shot.ArcAny}

	cfg := config.DefaultConfig()
	cfg.Launcher.MaxSpeed = 8
	require.NoError(t, s.Reload(cfg))
	assert.Equal(t, 8.0, s.Setup().Solver.MaxSpeed())

	res, err := s.Solve(req)
	assert.ErrorIs(t, err, solver.ErrNoTrajectory)
	assert.False(t, res.Success)

	// A bad reload keeps the previous setup.
	bad := config.DefaultConfig()
	bad.Solver.Arc = "sideways"
	assert.Error(t, s.Reload(bad))
	assert.Equal(t, 8.0, s.Setup().Solver.MaxSpeed())
}

func TestAim(t *testing.T) {
	s := newService(t)

	// Red hoop at (1.2, 4): a pose 4 m to its right faces it head on.
	log, err := s.Aim(arena.Pose{X: 5.2, Y: 4, Theta: 0}, "red")
	require.NoError(t, err)
	assert.Equal(t, "red", log.Hoop)
	assert.InDelta(t, 4.0, log.Distance, 1e-9)
	assert.True(t, log.Result.Success)
	assert.Empty(t, log.Error)
	want := solver.CalculateTrajectory(log.Distance, s.Setup().Launcher.Height, 3.05)
	assert.Equal(t, want, log.Result)

	log, err = s.Aim(arena.Pose{X: 12, Y: 4}, "")
	require.NoError(t, err)
	assert.Equal(t, "blue", log.Hoop)

	_, err = s.Aim(arena.Pose{}, "green")
	assert.ErrorIs(t, err, arena.ErrUnknownHoop)
}

func TestAimReportsInfeasibleShot(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Launcher.MaxSpeed = 5
	s, err := New(cfg)
	require.NoError(t, err)

	log, err := s.Aim(arena.Pose{X: 14, Y: 7}, "red")
	require.NoError(t, err)
	assert.Equal(t, shot.Failed, log.Result)
	assert.Equal(t, solver.ErrNoTrajectory.Error(), log.Error)
}

func TestReach(t *testing.T) {
	s := newService(t)

	r, err := s.Reach(context.Background(), 0.5, 3.05, shot.ArcAny)
	require.NoError(t, err)
	require.True(t, r.OK)
	assert.Greater(t, r.Inner, 0.0)
	// Every distance on a 15x8 court is reachable below 50 m/s.
	assert.InDelta(t, 17.0, r.Outer, 1e-9)

	_, err = s.Reach(context.Background(), -1, 3.05, shot.ArcAny)
	assert.Error(t, err)
}
