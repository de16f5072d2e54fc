package arena

import (
	"errors"
	"fmt"
	"math"

	"github.com/cxd309/hoopshot/internal/shot"
)

// Pose is the robot's planar position and heading, as in geometry_msgs/Pose2D.
type Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"` // heading, radians counter-clockwise from +X
}

// Loc returns the pose position.
func (p Pose) Loc() Coordinate { return Coordinate{X: p.X, Y: p.Y} }

// Aim is the geometry of a shot from a pose at a hoop.
type Aim struct {
	Hoop         HoopID  `json:"hoop"`
	Distance     float64 `json:"distance"`      // horizontal, metres
	Bearing      float64 `json:"bearing"`       // turn from the robot heading to the hoop, radians in (-π, π]
	TargetHeight float64 `json:"target_height"` // metres
}

// Request builds the solver input for a launcher at robotHeight.
func (a Aim) Request(robotHeight float64, arc shot.Arc) shot.Request {
	return shot.Request{
		Distance:     a.Distance,
		RobotHeight:  robotHeight,
		TargetHeight: a.TargetHeight,
		Arc:          arc,
	}
}

// Distance returns the straight-line floor distance between two coordinates.
func Distance(a, b Coordinate) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// normalizeAngle wraps rad into (-π, π].
func normalizeAngle(rad float64) float64 {
	rad = math.Remainder(rad, 2*math.Pi)
	if rad <= -math.Pi {
		rad += 2 * math.Pi
	}
	return rad
}

// Aim computes the shot geometry from pose at the hoop with the given id.
func (a *Arena) Aim(pose Pose, id HoopID) (Aim, error) {
	h, err := a.Hoop(id)
	if err != nil {
		return Aim{}, err
	}
	return aimAt(pose, h), nil
}

func aimAt(pose Pose, h Hoop) Aim {
	dx, dy := h.Loc.X-pose.X, h.Loc.Y-pose.Y
	return Aim{
		Hoop:         h.ID,
		Distance:     math.Hypot(dx, dy),
		Bearing:      normalizeAngle(math.Atan2(dy, dx) - pose.Theta),
		TargetHeight: h.Height,
	}
}

// Nearest aims at the closest hoop. Ties go to the lowest id.
func (a *Arena) Nearest(pose Pose) (Aim, error) {
	hoops := a.Hoops()
	if len(hoops) == 0 {
		return Aim{}, errors.New("arena has no hoops")
	}
	best := aimAt(pose, hoops[0])
	for _, h := range hoops[1:] {
		if aim := aimAt(pose, h); aim.Distance < best.Distance {
			best = aim
		}
	}
	return best, nil
}

// Ring is the annulus around a hoop from which a shot is feasible.
type Ring struct {
	Hoop   HoopID     `json:"hoop"`
	Center Coordinate `json:"center"`
	Inner  float64    `json:"inner"` // metres
	Outer  float64    `json:"outer"` // metres
}

// Ring returns the annulus of radii [inner, outer] around the hoop.
func (a *Arena) Ring(id HoopID, inner, outer float64) (Ring, error) {
	h, err := a.Hoop(id)
	if err != nil {
		return Ring{}, err
	}
	if inner < 0 || outer < inner {
		return Ring{}, fmt.Errorf("ring radii [%g, %g] are invalid", inner, outer)
	}
	return Ring{Hoop: h.ID, Center: h.Loc, Inner: inner, Outer: outer}, nil
}

// Contains reports whether c lies inside the ring, boundaries included.
func (r Ring) Contains(c Coordinate) bool {
	d := Distance(r.Center, c)
	return d >= r.Inner && d <= r.Outer
}
