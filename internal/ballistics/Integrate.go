package ballistics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultStep is the integration timestep (s) used by callers that have no
// reason to pick their own.
const DefaultStep = 1e-3

const maxSteps = 1_000_000

var (
	// ErrNoHorizontalProgress is returned when the launch never advances along x.
	ErrNoHorizontalProgress = errors.New("launch has no horizontal velocity")

	// ErrStepLimit is returned when reaching x would take more than maxSteps steps.
	ErrStepLimit = errors.New("integration step limit exceeded")
)

// Integrate numerically integrates the drag-free equations of motion with
// classical fourth-order Runge-Kutta and returns the height relative to the
// launch point at horizontal displacement x.
//
// It shares no code with DragFree and serves as an independent reference for
// the closed-form relations.
func Integrate(speed, theta, x, dt float64) (float64, error) {
	vx := speed * math.Cos(theta)
	if !(vx > 0) {
		return 0, ErrNoHorizontalProgress
	}
	if !(dt > 0) {
		return 0, fmt.Errorf("timestep must be positive, got %g", dt)
	}
	if x/(vx*dt) > maxSteps {
		return 0, fmt.Errorf("reaching x=%.3f m at dt=%g s: %w", x, dt, ErrStepLimit)
	}

	// state: x, y, vx, vy
	state := []float64{0, 0, vx, speed * math.Sin(theta)}
	k1 := make([]float64, 4)
	k2 := make([]float64, 4)
	k3 := make([]float64, 4)
	k4 := make([]float64, 4)
	tmp := make([]float64, 4)

	for state[0] < x {
		h := dt
		if remaining := (x - state[0]) / state[2]; remaining < h {
			h = remaining
		}

		derivative(k1, state)
		floats.AddScaledTo(tmp, state, h/2, k1)
		derivative(k2, tmp)
		floats.AddScaledTo(tmp, state, h/2, k2)
		derivative(k3, tmp)
		floats.AddScaledTo(tmp, state, h, k3)
		derivative(k4, tmp)

		floats.AddScaled(state, h/6, k1)
		floats.AddScaled(state, h/3, k2)
		floats.AddScaled(state, h/3, k3)
		floats.AddScaled(state, h/6, k4)

		if h < dt {
			break
		}
	}
	return state[1], nil
}

// derivative writes d(state)/dt into dst.
func derivative(dst, state []float64) {
	dst[0] = state[2]
	dst[1] = state[3]
	dst[2] = 0
	dst[3] = -Gravity
}
