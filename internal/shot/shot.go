// Package shot defines the value types exchanged with the trajectory solver:
// shot requests, results, arc preferences and the launcher description.
package shot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Arc is the angular regime of a shot.
type Arc int32

const (
	ArcLow  Arc = 0 // flat trajectory, 15°–45°
	ArcHigh Arc = 1 // lofted trajectory, 45°–75°
	ArcAny  Arc = 2 // full range, 15°–75°
)

// Range is an inclusive launch-angle sub-range in tenths of a degree.
type Range struct {
	MinTenths int
	MaxTenths int
}

// MinDeg returns the lower bound in degrees.
func (r Range) MinDeg() float64 { return float64(r.MinTenths) / 10 }

// MaxDeg returns the upper bound in degrees.
func (r Range) MaxDeg() float64 { return float64(r.MaxTenths) / 10 }

// Contains reports whether angleDeg lies inside the range.
func (r Range) Contains(angleDeg float64) bool {
	return angleDeg >= r.MinDeg() && angleDeg <= r.MaxDeg()
}

// Points returns the number of grid angles in the range.
func (r Range) Points() int { return r.MaxTenths - r.MinTenths + 1 }

// Range returns the searched sub-range for the arc. Unknown values search the full range.
func (a Arc) Range() Range {
	switch a {
	case ArcLow:
		return Range{MinTenths: 150, MaxTenths: 450}
	case ArcHigh:
		return Range{MinTenths: 450, MaxTenths: 750}
	default:
		return Range{MinTenths: 150, MaxTenths: 750}
	}
}

// ArcFromCode maps the C boundary encoding: 0 selects the low arc, anything else the high arc.
func ArcFromCode(code int32) Arc {
	if code == 0 {
		return ArcLow
	}
	return ArcHigh
}

func (a Arc) String() string {
	switch a {
	case ArcLow:
		return "low"
	case ArcHigh:
		return "high"
	case ArcAny:
		return "any"
	default:
		return fmt.Sprintf("Arc(%d)", int32(a))
	}
}

// ParseArc parses "low", "high" or "any" (case-insensitive). An empty string is "any".
func ParseArc(s string) (Arc, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return ArcLow, nil
	case "high":
		return ArcHigh, nil
	case "any", "":
		return ArcAny, nil
	default:
		return ArcAny, fmt.Errorf("unknown arc %q (want low, high or any)", s)
	}
}

func (a Arc) MarshalText() ([]byte, error) {
	switch a {
	case ArcLow, ArcHigh, ArcAny:
		return []byte(a.String()), nil
	default:
		return nil, fmt.Errorf("unknown arc %d", int32(a))
	}
}

func (a *Arc) UnmarshalText(text []byte) error {
	parsed, err := ParseArc(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ErrInvalidRequest is wrapped by every request validation failure.
var ErrInvalidRequest = errors.New("invalid shot request")

// Request is a single shot to solve. Heights are above ground, all in metres.
type Request struct {
	Distance     float64 `json:"distance"`      // horizontal, metres
	RobotHeight  float64 `json:"robot_height"`  // launch point, metres
	TargetHeight float64 `json:"target_height"` // target point, metres
	Arc          Arc     `json:"arc"`
}

// requestJSON lets an omitted "arc" default to ArcAny rather than the zero value ArcLow.
type requestJSON struct {
	Distance     float64 `json:"distance"`
	RobotHeight  float64 `json:"robot_height"`
	TargetHeight float64 `json:"target_height"`
	Arc          *Arc    `json:"arc"`
}

// UnmarshalJSON implements json.Unmarshaler for Request.
func (r *Request) UnmarshalJSON(data []byte) error {
	var aux requestJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Distance = aux.Distance
	r.RobotHeight = aux.RobotHeight
	r.TargetHeight = aux.TargetHeight
	r.Arc = ArcAny
	if aux.Arc != nil {
		r.Arc = *aux.Arc
	}
	return nil
}

// HeightDifference is the signed vertical displacement from launch point to target.
func (r Request) HeightDifference() float64 { return r.TargetHeight - r.RobotHeight }

// Validate returns an error wrapping ErrInvalidRequest when the request is outside the domain.
// A negative height difference (target below the launcher) is valid.
func (r Request) Validate() error {
	switch {
	case !(r.Distance > 0):
		return fmt.Errorf("%w: distance %g must be positive", ErrInvalidRequest, r.Distance)
	case r.RobotHeight < 0:
		return fmt.Errorf("%w: robot height %g must not be negative", ErrInvalidRequest, r.RobotHeight)
	case r.TargetHeight < 0:
		return fmt.Errorf("%w: target height %g must not be negative", ErrInvalidRequest, r.TargetHeight)
	}
	return nil
}

// Result is the outcome of a solve. On failure Angle and Velocity are both 0.
type Result struct {
	Angle    float64 `json:"angle"`    // degrees
	Velocity float64 `json:"velocity"` // m/s
	Success  bool    `json:"success"`
}

// Failed is the result reported for invalid input and for unreachable targets alike.
var Failed = Result{}
