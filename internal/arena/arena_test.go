package arena

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/hoopshot/internal/shot"
)

func court(t *testing.T) *Arena {
	t.Helper()
	a, err := New(Data{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Hoops: []Hoop{
			{ID: "red", Loc: Coordinate{X: 1.2, Y: 4}, Height: 3.05},
			{ID: "blue", Loc: Coordinate{X: 13.8, Y: 4}, Height: 3.05},
		},
	})
	require.NoError(t, err)
	return a
}

func TestNewRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name string
		data Data
	}{
		{"zero width", Data{Width: 0, Height: 8}},
		{"NaN height", Data{Width: 15, Height: math.NaN()}},
		{"empty id", Data{Width: 15, Height: 8, Hoops: []Hoop{{Loc: Coordinate{1, 1}}}}},
		{"duplicate", Data{Width: 15, Height: 8, Hoops: []Hoop{{ID: "a"}, {ID: "a"}}}},
		{"outside", Data{Width: 15, Height: 8, Hoops: []Hoop{{ID: "a", Loc: Coordinate{16, 1}}}}},
		{"negative height", Data{Width: 15, Height: 8, Hoops: []Hoop{{ID: "a", Height: -1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestHoopLookup(t *testing.T) {
	a := court(t)

	h, err := a.Hoop("red")
	require.NoError(t, err)
	assert.Equal(t, 3.05, h.Height)

	_, err = a.Hoop("green")
	assert.ErrorIs(t, err, ErrUnknownHoop)

	ids := []HoopID{}
	for _, h := range a.Hoops() {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []HoopID{"blue", "red"}, ids)
}

func TestAim(t *testing.T) {
	a := court(t)

	// Robot at (4.2, 8) facing -Y: the red hoop is 3 m left and 4 m down.
	aim, err := a.Aim(Pose{X: 4.2, Y: 8, Theta: -math.Pi / 2}, "red")
	require.NoError(t, err)
	assert.Equal(t, "red", aim.Hoop)
	assert.InDelta(t, 5.0, aim.Distance, 1e-12)
	assert.InDelta(t, -math.Atan2(3, 4), aim.Bearing, 1e-12)
	assert.Equal(t, 3.05, aim.TargetHeight)

	req := aim.Request(0.5, shot.ArcHigh)
	assert.Equal(t, shot.Request{Distance: aim.Distance, RobotHeight: 0.5, TargetHeight: 3.05, Arc: shot.ArcHigh}, req)

	_, err = a.Aim(Pose{}, "green")
	assert.ErrorIs(t, err, ErrUnknownHoop)
}

func TestAimBearingIsNormalized(t *testing.T) {
	a := court(t)
	// Hoop straight behind the robot: bearing is +π, never -π.
	aim, err := a.Aim(Pose{X: 5, Y: 4, Theta: 0}, "red")
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, aim.Bearing, 1e-12)

	aim, err = a.Aim(Pose{X: 5, Y: 4, Theta: 7 * math.Pi}, "blue")
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, math.Abs(aim.Bearing), 1e-9)
}

func TestNearest(t *testing.T) {
	a := court(t)

	aim, err := a.Nearest(Pose{X: 10, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, "blue", aim.Hoop)

	// Equidistant: lowest id wins.
	twin, err := New(Data{Width: 15, Height: 8, Hoops: []Hoop{
		{ID: "b", Loc: Coordinate{X: 14, Y: 4}},
		{ID: "a", Loc: Coordinate{X: 1, Y: 4}},
	}})
	require.NoError(t, err)
	aim, err = twin.Nearest(Pose{X: 7.5, Y: 4})
	require.NoError(t, err)
	assert.Equal(t, "a", aim.Hoop)

	empty, err := New(Data{Width: 1, Height: 1})
	require.NoError(t, err)
	_, err = empty.Nearest(Pose{})
	assert.Error(t, err)
}

func TestRing(t *testing.T) {
	a := court(t)

	r, err := a.Ring("red", 1, 3)
	require.NoError(t, err)
	assert.True(t, r.Contains(Coordinate{X: 3.2, Y: 4}))
	assert.True(t, r.Contains(Coordinate{X: 1.2, Y: 7}))
	assert.False(t, r.Contains(Coordinate{X: 1.5, Y: 4}))
	assert.False(t, r.Contains(Coordinate{X: 5, Y: 4}))

	_, err = a.Ring("red", 3, 1)
	assert.Error(t, err)
	_, err = a.Ring("green", 1, 3)
	assert.ErrorIs(t, err, ErrUnknownHoop)
}

func TestContains(t *testing.T) {
	a := court(t)
	assert.True(t, a.Contains(Coordinate{0, 0}))
	assert.True(t, a.Contains(Coordinate{15, 8}))
	assert.False(t, a.Contains(Coordinate{-0.1, 2}))
	assert.Equal(t, 15.0, a.Width())
	assert.Equal(t, 8.0, a.Height())
}
