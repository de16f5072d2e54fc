// Package ballistics defines the Model interface for launch physics, the
// constants of the shooting problem, and the built-in drag-free model.
//
// Adding a new physics model requires only implementing Model and registering
// it in the JSON discriminator in the shot package; the solver itself never
// needs to change.
package ballistics

import "math"

// Physical constants of the problem. They are part of the model, not configuration.
const (
	Gravity      = 9.81 // m/s²
	BallDiameter = 0.24 // m; documentation only, not used by the equations
	HoopHeight   = 3.05 // m; standard basketball hoop

	// VerifyTolerance is the maximum absolute error in reached height (m) for a
	// trajectory to be accepted. It is coupled to the 0.1° search grid.
	VerifyTolerance = 0.1

	// MaxSpeed is the physical reasonableness cap (m/s). Candidates at or above it are discarded.
	MaxSpeed = 50.0

	minCos = 1e-10
)

// Model is the physics contract every launch model must satisfy.
// All distances are in metres, speeds in m/s and angles in radians.
type Model interface {
	// RequiredSpeed returns the launch speed that makes the trajectory launched at
	// angle theta pass through (distance, heightDiff). ok is false when no speed
	// reaches the target along that angle.
	RequiredSpeed(distance, heightDiff, theta float64) (speed float64, ok bool)

	// HeightAt returns the height relative to the launch point reached at
	// horizontal displacement x for a launch with the given speed and angle.
	HeightAt(speed, theta, x float64) float64
}

// Verify reports whether the launch (theta, speed) reaches heightDiff at
// distance within VerifyTolerance under model m.
func Verify(m Model, distance, heightDiff, theta, speed float64) bool {
	return math.Abs(m.HeightAt(speed, theta, distance)-heightDiff) < VerifyTolerance
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180.0 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180.0 / math.Pi }
