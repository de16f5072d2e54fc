package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/hoopshot/internal/config"
	"github.com/cxd309/hoopshot/internal/service"
	"github.com/cxd309/hoopshot/internal/solver"
)

// execute runs the CLI with args against a config that does not exist, so
// every command sees the defaults.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	missing := filepath.Join(t.TempDir(), "none.yaml")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", missing}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRunFromStdin(t *testing.T) {
	out, err := execute(t, `{"meta":{"batch_id":"b1"},"shots":[{"distance":4.57,"robot_height":0.5,"target_height":3.05}]}`, "run")
	require.NoError(t, err)

	var log solver.BatchLog
	require.NoError(t, json.Unmarshal([]byte(out), &log))
	assert.Equal(t, "b1", log.Meta.BatchID)
	require.Len(t, log.Results, 1)
	assert.True(t, log.Results[0].Result.Success)
}

func TestRunFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"shots":[{"distance":0}]}`), 0644))

	out, err := execute(t, "", "run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "invalid shot request")
}

func TestRunRejectsBadJSON(t *testing.T) {
	_, err := execute(t, "{", "run")
	assert.ErrorContains(t, err, "invalid input JSON")
}

func TestSolve(t *testing.T) {
	out, err := execute(t, "", "solve", "--distance", "4.57", "--robot-height", "0.5", "--check")
	require.NoError(t, err)

	var got solveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, solver.CalculateTrajectory(4.57, 0.5, 3.05), got.Result)
	require.NotNil(t, got.OracleHeight)
	assert.InDelta(t, 3.05, *got.OracleHeight, 0.1)
}

func TestSolveNoSolution(t *testing.T) {
	out, err := execute(t, "", "solve", "--distance", "1000", "--robot-height", "1", "--arc", "low")
	assert.ErrorIs(t, err, errNoSolution)
	assert.Contains(t, out, `"success": false`)
	assert.Contains(t, out, "no feasible trajectory")
}

func TestSolveBadArc(t *testing.T) {
	_, err := execute(t, "", "solve", "--distance", "4", "--arc", "sideways")
	assert.Error(t, err)
}

func TestSimulate(t *testing.T) {
	out, err := execute(t, "", "simulate", "--velocity", "10", "--angle", "45", "--robot-height", "0.5", "--distance", "0")
	require.NoError(t, err)
	assert.Equal(t, "0.500000\n", out)
}

func TestTable(t *testing.T) {
	out, err := execute(t, "", "table", "--from", "1", "--to", "4", "--points", "4")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "distance\tangle\tvelocity\tsuccess", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1.000\t"))
	assert.Equal(t, "reach\t1.000\t4.000", lines[5])
}

func TestAim(t *testing.T) {
	out, err := execute(t, "", "aim", "--x", "5.2", "--y", "4", "--hoop", "red")
	require.NoError(t, err)

	var log service.AimLog
	require.NoError(t, json.Unmarshal([]byte(out), &log))
	assert.Equal(t, "red", log.Hoop)
	assert.True(t, log.Result.Success)
}

func TestAimWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hoopshot.yaml")
	cfg := config.DefaultConfig()
	cfg.Launcher.MaxSpeed = 5
	require.NoError(t, cfg.Save(path))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "aim", "--x", "14", "--y", "7", "--hoop", "red"})
	err := cmd.Execute()
	assert.ErrorIs(t, err, errNoSolution)
	assert.Contains(t, out.String(), "no feasible trajectory")
}

func TestAimUnknownHoop(t *testing.T) {
	_, err := execute(t, "", "aim", "--x", "1", "--y", "1", "--hoop", "green")
	assert.ErrorContains(t, err, "unknown hoop")
}
