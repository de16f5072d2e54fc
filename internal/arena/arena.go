// Package arena provides court geometry for the shot planner: the playing
// area, the hoops on it and the robot pose used to aim at them.
package arena

import (
	"errors"
	"fmt"
	"sort"
)

// HoopID is a string alias used as a hoop identifier.
type HoopID = string

// Default court dimensions in metres.
const (
	DefaultWidth  = 15.0
	DefaultHeight = 8.0
)

// ErrUnknownHoop is returned when a hoop id is not on the arena.
var ErrUnknownHoop = errors.New("unknown hoop")

// Coordinate is a 2D position on the floor in metres.
type Coordinate struct {
	X float64 `json:"x" yaml:"x"` // metres
	Y float64 `json:"y" yaml:"y"` // metres
}

// Hoop is a target on the arena.
type Hoop struct {
	ID     HoopID     `json:"id" yaml:"id"`
	Loc    Coordinate `json:"loc" yaml:"loc"`
	Height float64    `json:"height" yaml:"height"` // rim above floor, metres
}

// Data is the serialisable input representation of an arena.
type Data struct {
	Width  float64 `json:"width" yaml:"width"`   // metres along X
	Height float64 `json:"height" yaml:"height"` // metres along Y
	Hoops  []Hoop  `json:"hoops" yaml:"hoops"`
}

// Arena is a validated, read-only court description.
type Arena struct {
	width, height float64
	hoops         []Hoop
	hoopMap       map[HoopID]Hoop
}

// New builds an Arena from Data, returning an error if the dimensions are not
// positive or any hoop is invalid.
func New(data Data) (*Arena, error) {
	if !(data.Width > 0) || !(data.Height > 0) {
		return nil, fmt.Errorf("arena dimensions %gx%g must be positive", data.Width, data.Height)
	}
	a := &Arena{
		width:   data.Width,
		height:  data.Height,
		hoopMap: make(map[HoopID]Hoop, len(data.Hoops)),
	}
	for _, h := range data.Hoops {
		if err := a.addHoop(h); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// addHoop adds a hoop. Returns an error if the id is empty or already exists,
// the hoop lies outside the arena, or its height is negative.
func (a *Arena) addHoop(h Hoop) error {
	if h.ID == "" {
		return errors.New("hoop id must not be empty")
	}
	if _, exists := a.hoopMap[h.ID]; exists {
		return fmt.Errorf("hoop %q already exists", h.ID)
	}
	if !a.Contains(h.Loc) {
		return fmt.Errorf("hoop %q: location (%g, %g) is outside the %gx%g arena", h.ID, h.Loc.X, h.Loc.Y, a.width, a.height)
	}
	if h.Height < 0 {
		return fmt.Errorf("hoop %q: height %g must not be negative", h.ID, h.Height)
	}
	a.hoops = append(a.hoops, h)
	a.hoopMap[h.ID] = h
	return nil
}

// Width returns the arena extent along X in metres.
func (a *Arena) Width() float64 { return a.width }

// Height returns the arena extent along Y in metres.
func (a *Arena) Height() float64 { return a.height }

// Contains reports whether c lies on the arena floor, edges included.
func (a *Arena) Contains(c Coordinate) bool {
	return c.X >= 0 && c.X <= a.width && c.Y >= 0 && c.Y <= a.height
}

// Hoop looks up a hoop by its ID.
func (a *Arena) Hoop(id HoopID) (Hoop, error) {
	h, ok := a.hoopMap[id]
	if !ok {
		return Hoop{}, fmt.Errorf("%w %q", ErrUnknownHoop, id)
	}
	return h, nil
}

// Hoops returns the hoops sorted by id.
func (a *Arena) Hoops() []Hoop {
	out := make([]Hoop, len(a.hoops))
	copy(out, a.hoops)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
