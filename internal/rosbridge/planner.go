package rosbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cxd309/hoopshot/internal/config"
	"github.com/cxd309/hoopshot/internal/service"
	"github.com/cxd309/hoopshot/internal/shot"
)

// Planner turns robot poses into published shot solutions.
type Planner struct {
	cfg    config.RosbridgeConfig
	svc    *service.Service
	logger *zap.Logger
	delay  time.Duration
}

// NewPlanner creates a Planner for the topics and hoop in cfg.
func NewPlanner(cfg config.RosbridgeConfig, svc *service.Service, logger *zap.Logger) (*Planner, error) {
	delay, err := cfg.ReconnectDelay()
	if err != nil {
		return nil, err
	}
	return &Planner{
		cfg:    cfg,
		svc:    svc,
		logger: logger.With(zap.String("component", "rosbridge")),
		delay:  delay,
	}, nil
}

// Solution aims from pose at the configured hoop and encodes the result.
// Aiming errors are logged and published as a failed shot.
func (p *Planner) Solution(pose Pose2D) Float64MultiArray {
	log, err := p.svc.Aim(pose.Pose(), p.cfg.Hoop)
	if err != nil {
		p.logger.Warn("aim failed", zap.Error(err))
		return EncodeResult(shot.Failed)
	}
	p.logger.Debug("shot solved",
		zap.String("hoop", log.Hoop),
		zap.Float64("distance", log.Distance),
		zap.Float64("angle", log.Result.Angle),
		zap.Float64("velocity", log.Result.Velocity),
		zap.Bool("success", log.Result.Success),
	)
	return EncodeResult(log.Result)
}

// Run connects to rosbridge and serves poses until ctx is cancelled,
// reconnecting after a fixed delay whenever the session ends.
func (p *Planner) Run(ctx context.Context) error {
	for {
		err := p.session(ctx)
		if ctx.Err() != nil {
			return nil
		}
		p.logger.Warn("rosbridge session ended", zap.Error(err), zap.Duration("retry_in", p.delay))

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(p.delay):
		}
	}
}

// session runs one connection until it fails or ctx is cancelled.
func (p *Planner) session(ctx context.Context) error {
	c, err := Dial(ctx, p.cfg.URL)
	if err != nil {
		return err
	}
	defer c.Close()
	// Unblock Read on cancellation.
	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()

	if err := c.Advertise(p.cfg.SolutionTopic, TypeFloat64MultiArray); err != nil {
		return err
	}
	if err := c.Subscribe(p.cfg.PoseTopic, TypePose2D); err != nil {
		return err
	}
	p.logger.Info("rosbridge connected",
		zap.String("url", p.cfg.URL),
		zap.String("pose_topic", p.cfg.PoseTopic),
		zap.String("solution_topic", p.cfg.SolutionTopic),
	)

	for {
		m, err := c.Read()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if m.Op != OpPublish || m.Topic != p.cfg.PoseTopic {
			continue
		}
		var pose Pose2D
		if err := json.Unmarshal(m.Msg, &pose); err != nil {
			p.logger.Warn("bad pose message", zap.Error(err))
			continue
		}
		if err := c.Publish(p.cfg.SolutionTopic, p.Solution(pose)); err != nil {
			return err
		}
	}
}
