// Command shotd serves the trajectory solver over HTTP and, when enabled,
// answers robot poses arriving through rosbridge. The config file is watched
// and reloaded without a restart.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cxd309/hoopshot/internal/api"
	"github.com/cxd309/hoopshot/internal/config"
	"github.com/cxd309/hoopshot/internal/logging"
	"github.com/cxd309/hoopshot/internal/rosbridge"
	"github.com/cxd309/hoopshot/internal/service"
)

func main() {
	var (
		configPath string
		verbose    bool
	)
	rootCmd := &cobra.Command{
		Use:           "shotd",
		Short:         "Trajectory solver daemon (HTTP API and rosbridge planner)",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, verbose)
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "hoopshot.yaml", "Config file (defaults apply when missing)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, verbose bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	svc, err := service.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := api.NewServer(cfg.Server.Addr, logger, svc)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.HTTPServer().Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	g.Go(func() error {
		err := config.Watch(gctx, configPath, func(next *config.Config, err error) {
			if err != nil {
				logger.Warn("config reload rejected", zap.Error(err))
				return
			}
			if err := svc.Reload(next); err != nil {
				logger.Warn("config reload rejected", zap.Error(err))
				return
			}
			logger.Info("config reloaded", zap.String("path", configPath))
		})
		if err != nil {
			// Serving continues with the config loaded at startup.
			logger.Warn("config watch disabled", zap.Error(err))
		}
		return nil
	})

	if cfg.Rosbridge.Enabled {
		planner, err := rosbridge.NewPlanner(cfg.Rosbridge, svc, logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return planner.Run(gctx) })
	}

	logger.Info("shotd started",
		zap.String("addr", cfg.Server.Addr),
		zap.Bool("rosbridge", cfg.Rosbridge.Enabled),
	)
	return g.Wait()
}
