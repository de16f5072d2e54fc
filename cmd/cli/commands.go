package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cxd309/hoopshot/internal/arena"
	"github.com/cxd309/hoopshot/internal/ballistics"
	"github.com/cxd309/hoopshot/internal/service"
	"github.com/cxd309/hoopshot/internal/shot"
	"github.com/cxd309/hoopshot/internal/solver"
)

// errNoSolution makes the process exit non-zero after the result is printed.
var errNoSolution = errors.New("no feasible trajectory")

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "Solve a JSON batch from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if len(args) > 0 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			result, err := solver.RunJSON(string(data))
			if err != nil {
				return fmt.Errorf("batch error: %w", err)
			}
			a.logger.Debug("batch solved", zap.Int("bytes_in", len(data)), zap.Int("bytes_out", len(result)))

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

// solveOutput is the JSON printed by the solve command.
type solveOutput struct {
	shot.Result
	Reason       string   `json:"reason,omitempty"`
	OracleHeight *float64 `json:"oracle_height,omitempty"` // RK4 height at the target, metres
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		req   shot.Request
		arc   string
		check bool
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the minimum-speed launch for one shot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := shot.ParseArc(arc)
			if err != nil {
				return err
			}
			req.Arc = parsed

			launcher, err := a.cfg.Launcher.Build()
			if err != nil {
				return err
			}
			s := solver.New(solver.WithLauncher(launcher))

			res, err := s.SolveDetailed(req)
			out := solveOutput{Result: res}
			if err != nil {
				out.Reason = err.Error()
			}
			if check && res.Success {
				y, err := ballistics.Integrate(res.Velocity, ballistics.Radians(res.Angle), req.Distance, ballistics.DefaultStep)
				if err != nil {
					return fmt.Errorf("oracle: %w", err)
				}
				h := req.RobotHeight + y
				out.OracleHeight = &h
			}
			a.logger.Debug("solve",
				zap.Float64("distance", req.Distance),
				zap.Stringer("arc", req.Arc),
				zap.Bool("success", res.Success),
			)

			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			if !res.Success {
				return errNoSolution
			}
			return nil
		},
	}
	cmd.Flags().Float64VarP(&req.Distance, "distance", "d", 0, "Horizontal distance to the target, metres")
	cmd.Flags().Float64Var(&req.RobotHeight, "robot-height", 0, "Launch height, metres")
	cmd.Flags().Float64Var(&req.TargetHeight, "target-height", ballistics.HoopHeight, "Target height, metres")
	cmd.Flags().StringVar(&arc, "arc", "any", "Arc preference: low, high or any")
	cmd.Flags().BoolVar(&check, "check", false, "Cross-check the result with numerical integration")
	cmd.MarkFlagRequired("distance")
	return cmd
}

func newSimulateCmd(a *app) *cobra.Command {
	var velocity, angle, robotHeight, distance float64
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Print the height a launch reaches at a distance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := solver.SimulateShot(velocity, angle, robotHeight, distance)
			fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", h)
			return nil
		},
	}
	cmd.Flags().Float64Var(&velocity, "velocity", 0, "Launch speed, m/s")
	cmd.Flags().Float64Var(&angle, "angle", 45, "Launch angle, degrees")
	cmd.Flags().Float64Var(&robotHeight, "robot-height", 0, "Launch height, metres")
	cmd.Flags().Float64Var(&distance, "distance", 0, "Horizontal distance, metres")
	cmd.MarkFlagRequired("velocity")
	cmd.MarkFlagRequired("distance")
	return cmd
}

func newTableCmd(a *app) *cobra.Command {
	var (
		spec solver.TableSpec
		arc  string
	)
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Tabulate shots over a distance range and report the reach band",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := shot.ParseArc(arc)
			if err != nil {
				return err
			}
			spec.Arc = parsed

			launcher, err := a.cfg.Launcher.Build()
			if err != nil {
				return err
			}
			rows, err := solver.New(solver.WithLauncher(launcher)).Table(cmd.Context(), spec)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "distance\tangle\tvelocity\tsuccess")
			for _, r := range rows {
				success := 0
				if r.Result.Success {
					success = 1
				}
				fmt.Fprintf(w, "%.3f\t%.1f\t%.4f\t%d\n", r.Distance, r.Result.Angle, r.Result.Velocity, success)
			}
			if band, ok := solver.Reach(rows); ok {
				fmt.Fprintf(w, "reach\t%.3f\t%.3f\n", band.Inner, band.Outer)
			} else {
				fmt.Fprintln(w, "reach\tnone")
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&spec.RobotHeight, "robot-height", 0.5, "Launch height, metres")
	cmd.Flags().Float64Var(&spec.TargetHeight, "target-height", ballistics.HoopHeight, "Target height, metres")
	cmd.Flags().Float64Var(&spec.From, "from", 0.5, "First distance, metres")
	cmd.Flags().Float64Var(&spec.To, "to", 10, "Last distance, metres")
	cmd.Flags().IntVar(&spec.Points, "points", 20, "Number of distances")
	cmd.Flags().IntVar(&spec.Workers, "workers", 4, "Concurrent solves")
	cmd.Flags().StringVar(&arc, "arc", "any", "Arc preference: low, high or any")
	return cmd
}

func newAimCmd(a *app) *cobra.Command {
	var (
		pose arena.Pose
		hoop string
	)
	cmd := &cobra.Command{
		Use:   "aim",
		Short: "Solve the shot from a robot pose on the configured arena",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.New(a.cfg)
			if err != nil {
				return err
			}
			log, err := svc.Aim(pose, hoop)
			if err != nil {
				return err
			}
			if err := writeJSON(cmd.OutOrStdout(), log); err != nil {
				return err
			}
			if !log.Result.Success {
				return errNoSolution
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&pose.X, "x", 0, "Robot X on the arena, metres")
	cmd.Flags().Float64Var(&pose.Y, "y", 0, "Robot Y on the arena, metres")
	cmd.Flags().Float64Var(&pose.Theta, "theta", 0, "Robot heading, radians")
	cmd.Flags().StringVar(&hoop, "hoop", "", "Hoop id (default: nearest)")
	cmd.MarkFlagRequired("x")
	cmd.MarkFlagRequired("y")
	return cmd
}
