// Package api serves the trajectory solver over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cxd309/hoopshot/internal/arena"
	"github.com/cxd309/hoopshot/internal/ballistics"
	"github.com/cxd309/hoopshot/internal/service"
	"github.com/cxd309/hoopshot/internal/shot"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// TrajectoryResponse is a shot.Result with the reason for a failure.
type TrajectoryResponse struct {
	shot.Result
	Reason string `json:"reason,omitempty"`
}

// SimulateRequest is the body of POST /api/v1/simulate.
type SimulateRequest struct {
	Velocity    float64 `json:"velocity"`     // m/s
	Angle       float64 `json:"angle"`        // degrees
	RobotHeight float64 `json:"robot_height"` // metres
	Distance    float64 `json:"distance"`     // metres
}

// SimulateResponse is the reply to POST /api/v1/simulate.
type SimulateResponse struct {
	Height float64 `json:"height"` // metres above the floor
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func trajectoryHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req shot.Request
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		res, err := svc.Solve(req)
		resp := TrajectoryResponse{Result: res}
		if err != nil {
			resp.Reason = err.Error()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func simulateHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SimulateRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		h := svc.Setup().Solver.Simulate(req.Velocity, req.Angle, req.RobotHeight, req.Distance)
		writeJSON(w, http.StatusOK, SimulateResponse{Height: h})
	}
}

// queryFloat parses a float query parameter, returning def when it is absent.
func queryFloat(r *http.Request, key string, def float64, required bool) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		if required {
			return 0, fmt.Errorf("missing query parameter %q", key)
		}
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("query parameter %q: %w", key, err)
	}
	return v, nil
}

func aimHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		x, err := queryFloat(r, "x", 0, true)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		y, err := queryFloat(r, "y", 0, true)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		theta, err := queryFloat(r, "theta", 0, false)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		log, err := svc.Aim(arena.Pose{X: x, Y: y, Theta: theta}, r.URL.Query().Get("hoop"))
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, arena.ErrUnknownHoop) {
				status = http.StatusNotFound
			}
			writeError(w, status, err)
			return
		}
		writeJSON(w, http.StatusOK, log)
	}
}

func reachHandler(svc *service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setup := svc.Setup()
		robotHeight, err := queryFloat(r, "robot_height", setup.Launcher.Height, false)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		targetHeight, err := queryFloat(r, "target_height", ballistics.HoopHeight, false)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		arc := setup.Arc
		if raw := r.URL.Query().Get("arc"); raw != "" {
			if arc, err = shot.ParseArc(raw); err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
		}

		reach, err := svc.Reach(r.Context(), robotHeight, targetHeight, arc)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, reach)
	}
}
