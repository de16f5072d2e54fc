package solver

import (
	"github.com/cxd309/hoopshot/internal/ballistics"
	"github.com/cxd309/hoopshot/internal/shot"
)

// defaultSolver backs the fixed entry points shared by the C, WASM and CLI boundaries.
var defaultSolver = New()

// Default returns the drag-free solver capped at ballistics.MaxSpeed.
func Default() *Solver { return defaultSolver }

// CalculateTrajectory searches the full 15°–75° range.
func CalculateTrajectory(distance, robotHeight, targetHeight float64) shot.Result {
	return defaultSolver.Solve(shot.Request{
		Distance:     distance,
		RobotHeight:  robotHeight,
		TargetHeight: targetHeight,
		Arc:          shot.ArcAny,
	})
}

// CalculateTrajectoryWithArc searches the low range when preferredArc is 0 and
// the high range otherwise.
func CalculateTrajectoryWithArc(distance, robotHeight, targetHeight float64, preferredArc int32) shot.Result {
	return defaultSolver.Solve(shot.Request{
		Distance:     distance,
		RobotHeight:  robotHeight,
		TargetHeight: targetHeight,
		Arc:          shot.ArcFromCode(preferredArc),
	})
}

// SimulateShot returns the absolute height at targetDistance. No validation is performed.
func SimulateShot(initialVelocity, angleDegrees, robotHeight, targetDistance float64) float64 {
	return defaultSolver.Simulate(initialVelocity, angleDegrees, robotHeight, targetDistance)
}

// OptimalShot solves a shot at the standard hoop height over the full range.
// ok is false when no shot exists.
func OptimalShot(distanceToHoop, robotHeight float64) (shot.Result, bool) {
	res := CalculateTrajectory(distanceToHoop, robotHeight, ballistics.HoopHeight)
	return res, res.Success
}

// HighArcShot solves a lofted shot at the standard hoop height.
// ok is false when no shot exists.
func HighArcShot(distanceToHoop, robotHeight float64) (shot.Result, bool) {
	res := CalculateTrajectoryWithArc(distanceToHoop, robotHeight, ballistics.HoopHeight, int32(shot.ArcHigh))
	return res, res.Success
}
