// Package rosbridge connects the shot planner to a ROS graph through a
// rosbridge v2 websocket: robot poses come in, shot solutions go out.
package rosbridge

import (
	"encoding/json"

	"github.com/cxd309/hoopshot/internal/arena"
	"github.com/cxd309/hoopshot/internal/shot"
)

// rosbridge v2 operations.
const (
	OpSubscribe   = "subscribe"
	OpUnsubscribe = "unsubscribe"
	OpAdvertise   = "advertise"
	OpPublish     = "publish"
)

// ROS message types.
const (
	TypePose2D            = "geometry_msgs/Pose2D"
	TypeFloat64MultiArray = "std_msgs/Float64MultiArray"
)

// Message is a rosbridge v2 operation envelope.
type Message struct {
	Op    string          `json:"op"`
	ID    string          `json:"id,omitempty"`
	Topic string          `json:"topic,omitempty"`
	Type  string          `json:"type,omitempty"`
	Msg   json.RawMessage `json:"msg,omitempty"`
}

// Pose2D mirrors geometry_msgs/Pose2D.
type Pose2D struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
}

// Pose converts to an arena pose.
func (p Pose2D) Pose() arena.Pose { return arena.Pose{X: p.X, Y: p.Y, Theta: p.Theta} }

// MultiArrayDimension mirrors std_msgs/MultiArrayDimension.
type MultiArrayDimension struct {
	Label  string `json:"label"`
	Size   uint32 `json:"size"`
	Stride uint32 `json:"stride"`
}

// MultiArrayLayout mirrors std_msgs/MultiArrayLayout.
type MultiArrayLayout struct {
	Dim        []MultiArrayDimension `json:"dim"`
	DataOffset uint32                `json:"data_offset"`
}

// Float64MultiArray mirrors std_msgs/Float64MultiArray.
type Float64MultiArray struct {
	Layout MultiArrayLayout `json:"layout"`
	Data   []float64        `json:"data"`
}

// EncodeResult packs a result as [angle, velocity, success] with success 1 or 0.
func EncodeResult(res shot.Result) Float64MultiArray {
	success := 0.0
	if res.Success {
		success = 1
	}
	return Float64MultiArray{
		Layout: MultiArrayLayout{
			Dim: []MultiArrayDimension{{Label: "angle_velocity_success", Size: 3, Stride: 3}},
		},
		Data: []float64{res.Angle, res.Velocity, success},
	}
}
