//go:build js && wasm

// Command wasm exposes the trajectory solver to the browser via WebAssembly.
// After loading, it registers global JavaScript functions:
//
//	calculateTrajectory(distance, robotHeight, targetHeight) -> {angle, velocity, success}
//	calculateTrajectoryWithArc(distance, robotHeight, targetHeight, arc) -> {angle, velocity, success}
//	simulateShot(velocity, angleDegrees, robotHeight, distance) -> number
//	runBatch(jsonString) -> jsonString
//
// arc is 0 for a low arc and anything else for a high arc. runBatch takes and
// returns the same JSON batch contract as the CLI run command.
package main

import (
	"syscall/js"

	"github.com/cxd309/hoopshot/internal/shot"
	"github.com/cxd309/hoopshot/internal/solver"
)

func main() {
	js.Global().Set("calculateTrajectory", js.FuncOf(calculateTrajectory))
	js.Global().Set("calculateTrajectoryWithArc", js.FuncOf(calculateTrajectoryWithArc))
	js.Global().Set("simulateShot", js.FuncOf(simulateShot))
	js.Global().Set("runBatch", js.FuncOf(runBatch))
	select {} // keep the WASM module alive until the page is closed
}

func resultValue(r shot.Result) map[string]any {
	success := 0
	if r.Success {
		success = 1
	}
	return map[string]any{"angle": r.Angle, "velocity": r.Velocity, "success": success}
}

func calculateTrajectory(_ js.Value, args []js.Value) any {
	if len(args) < 3 {
		return map[string]any{"error": "want distance, robotHeight, targetHeight"}
	}
	return resultValue(solver.CalculateTrajectory(args[0].Float(), args[1].Float(), args[2].Float()))
}

func calculateTrajectoryWithArc(_ js.Value, args []js.Value) any {
	if len(args) < 4 {
		return map[string]any{"error": "want distance, robotHeight, targetHeight, arc"}
	}
	return resultValue(solver.CalculateTrajectoryWithArc(
		args[0].Float(), args[1].Float(), args[2].Float(), int32(args[3].Int())))
}

func simulateShot(_ js.Value, args []js.Value) any {
	if len(args) < 4 {
		return map[string]any{"error": "want velocity, angleDegrees, robotHeight, distance"}
	}
	return solver.SimulateShot(args[0].Float(), args[1].Float(), args[2].Float(), args[3].Float())
}

func runBatch(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no input provided"}
	}

	result, err := solver.RunJSON(args[0].String())
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}
