// Command clib builds the trajectory solver as a C shared library:
//
//	go build -buildmode=c-shared -o libhoopshot.so ./cmd/clib
//
// The generated header declares TrajectoryResult and the three exported
// functions. No call allocates, blocks or retains state, and every failure is
// reported as a zeroed result with success = 0.
package main

/*
#include <stdint.h>

typedef struct {
	double angle;
	double velocity;
	int32_t success;
} TrajectoryResult;
*/
import "C"

import (
	"github.com/cxd309/hoopshot/internal/shot"
	"github.com/cxd309/hoopshot/internal/solver"
)

func toC(r shot.Result) C.TrajectoryResult {
	var success C.int32_t
	if r.Success {
		success = 1
	}
	return C.TrajectoryResult{
		angle:    C.double(r.Angle),
		velocity: C.double(r.Velocity),
		success:  success,
	}
}

//export calculate_trajectory
func calculate_trajectory(distance, robotHeight, targetHeight C.double) C.TrajectoryResult {
	return toC(solver.CalculateTrajectory(float64(distance), float64(robotHeight), float64(targetHeight)))
}

//export calculate_trajectory_with_arc
func calculate_trajectory_with_arc(distance, robotHeight, targetHeight C.double, preferredArc C.int32_t) C.TrajectoryResult {
	return toC(solver.CalculateTrajectoryWithArc(
		float64(distance), float64(robotHeight), float64(targetHeight), int32(preferredArc)))
}

//export simulate_shot
func simulate_shot(initialVelocity, angleDegrees, robotHeight, targetDistance C.double) C.double {
	return C.double(solver.SimulateShot(
		float64(initialVelocity), float64(angleDegrees), float64(robotHeight), float64(targetDistance)))
}

func main() {}
