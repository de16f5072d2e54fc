package solver

import (
	"github.com/cxd309/hoopshot/internal/shot"
)

// Candidate is a feasible launch found by the search.
type Candidate struct {
	AngleDeg float64 // degrees, on the 0.1° grid
	Speed    float64 // m/s
}

// BatchMeta holds the identity of a batch run.
type BatchMeta struct {
	BatchID string `json:"batch_id,omitempty"`
}

// BatchInput is the JSON-serialisable input to RunJSON.
type BatchInput struct {
	Meta     BatchMeta      `json:"meta"`
	Launcher *shot.Launcher `json:"launcher,omitempty"`
	Shots    []shot.Request `json:"shots"`
}

// ShotLog is the outcome of a single shot in a batch.
type ShotLog struct {
	Request shot.Request `json:"request"`
	Result  shot.Result  `json:"result"`
	Error   string       `json:"error,omitempty"` // reason for failure, empty on success
}

// BatchLog is the complete output of a batch run.
type BatchLog struct {
	Meta    BatchMeta `json:"meta"`
	Results []ShotLog `json:"results"`
}

// TableSpec describes a reach table: one solve per distance on an evenly
// spaced grid from From to To inclusive.
type TableSpec struct {
	RobotHeight  float64
	TargetHeight float64
	Arc          shot.Arc
	From, To     float64 // metres
	Points       int     // grid size, at least 2
	Workers      int     // concurrent solves; <= 0 means 4
}

// Row is one line of a reach table.
type Row struct {
	Distance float64     `json:"distance"`
	Result   shot.Result `json:"result"`
}

// Band is a contiguous distance interval in which every grid distance has a solution.
type Band struct {
	Inner float64 `json:"inner"` // metres
	Outer float64 `json:"outer"` // metres
}
