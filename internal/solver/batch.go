package solver

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Run solves every shot in the batch with a solver built for its launcher.
// A batch without an id is assigned a random one.
func Run(input BatchInput) BatchLog {
	s := defaultSolver
	if input.Launcher != nil {
		s = New(WithLauncher(*input.Launcher))
	}
	if input.Meta.BatchID == "" {
		input.Meta.BatchID = uuid.NewString()
	}

	log := BatchLog{Meta: input.Meta, Results: make([]ShotLog, 0, len(input.Shots))}
	for _, req := range input.Shots {
		res, err := s.SolveDetailed(req)
		entry := ShotLog{Request: req, Result: res}
		if err != nil {
			entry.Error = err.Error()
		}
		log.Results = append(log.Results, entry)
	}
	return log
}

// RunJSON is the batch entry point shared by the CLI and WASM targets.
// It accepts a JSON-encoded BatchInput, solves every shot, and returns a
// JSON-encoded BatchLog.
func RunJSON(jsonInput string) (string, error) {
	var input BatchInput
	if err := json.Unmarshal([]byte(jsonInput), &input); err != nil {
		return "", fmt.Errorf("invalid input JSON: %w", err)
	}

	out, err := json.Marshal(Run(input))
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}
