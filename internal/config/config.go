// Package config holds the YAML configuration of the hoopshot binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cxd309/hoopshot/internal/arena"
	"github.com/cxd309/hoopshot/internal/ballistics"
	"github.com/cxd309/hoopshot/internal/shot"
)

// Config holds all hoopshot configuration.
type Config struct {
	Name string `yaml:"name"`

	// Launcher geometry and limits
	Launcher LauncherConfig `yaml:"launcher"`

	// Search preferences
	Solver SolverConfig `yaml:"solver"`

	// Court layout
	Arena arena.Data `yaml:"arena"`

	// HTTP API
	Server ServerConfig `yaml:"server"`

	// ROS bridge client
	Rosbridge RosbridgeConfig `yaml:"rosbridge"`

	Logging LoggingConfig `yaml:"logging"`
}

// LauncherConfig describes the robot's launcher.
type LauncherConfig struct {
	Name     string  `yaml:"name"`
	Height   float64 `yaml:"height"`    // metres above the floor
	MaxSpeed float64 `yaml:"max_speed"` // m/s, 0 = physical cap only
	Model    string  `yaml:"model"`     // drag_free
}

// SolverConfig configures the search.
type SolverConfig struct {
	Arc string `yaml:"arc"` // low, high, any
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// RosbridgeConfig configures the rosbridge websocket client.
type RosbridgeConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	PoseTopic     string `yaml:"pose_topic"`
	SolutionTopic string `yaml:"solution_topic"`
	Hoop          string `yaml:"hoop"`      // empty = nearest hoop
	Reconnect     string `yaml:"reconnect"` // duration, e.g. "2s"
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// ValidLogLevels lists accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name: "hoopshot",
		Launcher: LauncherConfig{
			Name:   "shooter",
			Height: 0.5,
			Model:  ballistics.DragFreeModelName,
		},
		Solver: SolverConfig{Arc: "any"},
		Arena: arena.Data{
			Width:  arena.DefaultWidth,
			Height: arena.DefaultHeight,
			Hoops: []arena.Hoop{
				{ID: "red", Loc: arena.Coordinate{X: 1.2, Y: 4}, Height: ballistics.HoopHeight},
				{ID: "blue", Loc: arena.Coordinate{X: 13.8, Y: 4}, Height: ballistics.HoopHeight},
			},
		},
		Server: ServerConfig{Addr: ":8080"},
		Rosbridge: RosbridgeConfig{
			Enabled:       false,
			URL:           "ws://localhost:9090",
			PoseTopic:     "/robot_pose",
			SolutionTopic: "/shot_solution",
			Hoop:          "red",
			Reconnect:     "2s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("HOOPSHOT_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("HOOPSHOT_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if url := os.Getenv("HOOPSHOT_ROSBRIDGE_URL"); url != "" {
		c.Rosbridge.URL = url
	}
	if arc := os.Getenv("HOOPSHOT_ARC"); arc != "" {
		c.Solver.Arc = arc
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := c.Launcher.Build(); err != nil {
		return err
	}
	if _, err := c.Solver.ParsedArc(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	a, err := arena.New(c.Arena)
	if err != nil {
		return fmt.Errorf("arena: %w", err)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if f := c.Logging.Format; f != "json" && f != "console" {
		return fmt.Errorf("invalid log format: %s (valid: json, console)", f)
	}

	if c.Rosbridge.Enabled {
		if c.Rosbridge.URL == "" {
			return errors.New("rosbridge: url is required when enabled")
		}
		if c.Rosbridge.PoseTopic == "" || c.Rosbridge.SolutionTopic == "" {
			return errors.New("rosbridge: pose_topic and solution_topic are required when enabled")
		}
		if c.Rosbridge.Hoop != "" {
			if _, err := a.Hoop(c.Rosbridge.Hoop); err != nil {
				return fmt.Errorf("rosbridge: %w", err)
			}
		}
		if _, err := c.Rosbridge.ReconnectDelay(); err != nil {
			return err
		}
	}

	return nil
}

// Build converts the launcher description into a shot.Launcher.
func (l LauncherConfig) Build() (shot.Launcher, error) {
	model, err := shot.ModelByName(l.Model)
	if err != nil {
		return shot.Launcher{}, fmt.Errorf("launcher %q: %w", l.Name, err)
	}
	if l.Height < 0 {
		return shot.Launcher{}, fmt.Errorf("launcher %q: height %g must not be negative", l.Name, l.Height)
	}
	if l.MaxSpeed < 0 {
		return shot.Launcher{}, fmt.Errorf("launcher %q: max_speed %g must not be negative", l.Name, l.MaxSpeed)
	}
	return shot.Launcher{Name: l.Name, Height: l.Height, MaxSpeed: l.MaxSpeed, Model: model}, nil
}

// ParsedArc returns the configured arc preference.
func (s SolverConfig) ParsedArc() (shot.Arc, error) {
	return shot.ParseArc(s.Arc)
}

// ReconnectDelay parses the reconnect backoff. An empty value means 2s.
func (r RosbridgeConfig) ReconnectDelay() (time.Duration, error) {
	if r.Reconnect == "" {
		return 2 * time.Second, nil
	}
	d, err := time.ParseDuration(r.Reconnect)
	if err != nil {
		return 0, fmt.Errorf("rosbridge: invalid reconnect %q: %w", r.Reconnect, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("rosbridge: reconnect %s must be positive", d)
	}
	return d, nil
}
