package ballistics

import "math"

// DragFreeModelName is the JSON discriminator string for the DragFree model.
const DragFreeModelName = "drag_free"

// DragFree implements Model for a point mass under uniform gravity with no
// air resistance. This is the default and simplest launch model.
//
// JSON discriminator: "model": "drag_free"
type DragFree struct{}

// RequiredSpeed solves y(x) = x·tanθ − g·x² / (2·v²·cos²θ) for v at
// (distance, heightDiff).
func (DragFree) RequiredSpeed(distance, heightDiff, theta float64) (float64, bool) {
	cos := math.Cos(theta)
	if math.Abs(cos) < minCos {
		return 0, false
	}

	// Non-positive when the target lies at or above what this angle can reach.
	denominator := 2 * cos * cos * (distance*math.Tan(theta) - heightDiff)
	if !(denominator > 0) {
		return 0, false
	}

	v2 := Gravity * distance * distance / denominator
	if !(v2 > 0) {
		return 0, false
	}
	return math.Sqrt(v2), true
}

func (DragFree) HeightAt(speed, theta, x float64) float64 {
	t := x / (speed * math.Cos(theta))
	return speed*math.Sin(theta)*t - 0.5*Gravity*t*t
}
