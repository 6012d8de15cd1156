package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// ArcConfig shapes an airborne parabola.
type ArcConfig struct {
	Peak float64 `yaml:"peak"`
	Span float64 `yaml:"span"`
}

// MotionConfig contains agent movement values. Speeds are per tick.
type MotionConfig struct {
	WalkingSpeed float64 `yaml:"walking_speed"`
	DiggingSpeed float64 `yaml:"digging_speed"`

	// Dimensions
	AgentHeight  float64 `yaml:"agent_height"`
	TunnelHeight float64 `yaml:"tunnel_height"`

	// Airborne trajectories
	Jump    ArcConfig `yaml:"jump"`
	Fall    ArcConfig `yaml:"fall"`
	DigFall ArcConfig `yaml:"dig_fall"`
}

// SimConfig contains simulation loop values.
type SimConfig struct {
	TickRate    int `yaml:"tick_rate"`    // ticks per second
	PlanWorkers int `yaml:"plan_workers"` // concurrent path searches when planning
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"` // "json" or "console"
}

var Motion MotionConfig
var Sim SimConfig
var Log LogConfig

func init() {
	Motion = DefaultMotion()
	Sim = DefaultSim()
	Log = DefaultLog()
}

func DefaultMotion() MotionConfig {
	return MotionConfig{
		WalkingSpeed: 3.0,
		DiggingSpeed: 2.0, // slower than walking

		AgentHeight:  40.0,
		TunnelHeight: 60.0, // at least AgentHeight

		// The same parabola is used for every airborne case until they get tuned apart.
		Jump:    ArcConfig{Peak: 40.0, Span: 80.0},
		Fall:    ArcConfig{Peak: 40.0, Span: 80.0},
		DigFall: ArcConfig{Peak: 40.0, Span: 80.0},
	}
}

func DefaultSim() SimConfig {
	return SimConfig{
		TickRate:    36,
		PlanWorkers: 4,
	}
}

func DefaultLog() LogConfig {
	return LogConfig{
		Level:    "info",
		Encoding: "json",
	}
}

func (c MotionConfig) Validate() error {
	switch {
	case c.WalkingSpeed <= 0:
		return fmt.Errorf("%w: walking_speed must be positive, got %v", ErrInvalidConfig, c.WalkingSpeed)
	case c.DiggingSpeed <= 0:
		return fmt.Errorf("%w: digging_speed must be positive, got %v", ErrInvalidConfig, c.DiggingSpeed)
	case c.AgentHeight < 0:
		return fmt.Errorf("%w: agent_height must not be negative, got %v", ErrInvalidConfig, c.AgentHeight)
	case c.AgentHeight > c.TunnelHeight:
		return fmt.Errorf("%w: agent_height %v does not fit tunnel_height %v", ErrInvalidConfig, c.AgentHeight, c.TunnelHeight)
	}
	for name, arc := range map[string]ArcConfig{"jump": c.Jump, "fall": c.Fall, "dig_fall": c.DigFall} {
		if arc.Span <= 0 {
			return fmt.Errorf("%w: %s.span must be positive, got %v", ErrInvalidConfig, name, arc.Span)
		}
	}
	return nil
}

func (c SimConfig) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}
	if c.PlanWorkers < 0 {
		return fmt.Errorf("%w: plan_workers must not be negative, got %d", ErrInvalidConfig, c.PlanWorkers)
	}
	return nil
}

func (c LogConfig) Validate() error {
	switch c.Encoding {
	case "json", "console":
		return nil
	}
	return fmt.Errorf("%w: log encoding %q", ErrInvalidConfig, c.Encoding)
}
