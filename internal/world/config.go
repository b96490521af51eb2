package world

import (
	"fmt"
	"math"
	"strings"

	"orb-duel/engine/internal/vec"
)

const (
	DefaultSeed   = "duel"
	DefaultWidth  = 800.0
	DefaultHeight = 600.0

	DefaultAirFriction           = 0.01
	DefaultFixedTimeStep         = 1.0 / 60.0
	DefaultInvulnerabilityWindow = 0.3
	DefaultEnergyRegenPerSecond  = 10.0
)

// Config captures the tunable parameters for one battle world. Zero values
// fall back to defaults during normalization; negative or non-finite values
// are rejected at construction time.
type Config struct {
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Gravity vec.Vec2 `json:"gravity"`

	AirFriction   float64 `json:"airFriction"`
	FixedTimeStep float64 `json:"fixedTimeStep"`

	InvulnerabilityWindow float64 `json:"invulnerabilityWindow"`
	EnergyRegenPerSecond  float64 `json:"energyRegenPerSecond"`

	Seed string `json:"seed"`
}

func (cfg Config) normalized() Config {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = DefaultSeed
	}
	if normalized.Width == 0 {
		normalized.Width = DefaultWidth
	}
	if normalized.Height == 0 {
		normalized.Height = DefaultHeight
	}
	if normalized.AirFriction == 0 {
		normalized.AirFriction = DefaultAirFriction
	}
	if normalized.FixedTimeStep == 0 {
		normalized.FixedTimeStep = DefaultFixedTimeStep
	}
	if normalized.InvulnerabilityWindow == 0 {
		normalized.InvulnerabilityWindow = DefaultInvulnerabilityWindow
	}
	if normalized.EnergyRegenPerSecond == 0 {
		normalized.EnergyRegenPerSecond = DefaultEnergyRegenPerSecond
	}
	return normalized
}

// Normalized returns the configuration with defaults applied.
func (cfg Config) Normalized() Config {
	return cfg.normalized()
}

func (cfg Config) validate() error {
	if cfg.Width < 0 || cfg.Height < 0 {
		return fmt.Errorf("world: negative bounds %vx%v", cfg.Width, cfg.Height)
	}
	if !isFinite(cfg.Width) || !isFinite(cfg.Height) {
		return fmt.Errorf("world: non-finite bounds %vx%v", cfg.Width, cfg.Height)
	}
	if cfg.AirFriction < 0 || cfg.AirFriction >= 1 {
		return fmt.Errorf("world: air friction %v outside [0,1)", cfg.AirFriction)
	}
	if cfg.FixedTimeStep < 0 || !isFinite(cfg.FixedTimeStep) {
		return fmt.Errorf("world: invalid fixed timestep %v", cfg.FixedTimeStep)
	}
	if cfg.InvulnerabilityWindow < 0 {
		return fmt.Errorf("world: negative invulnerability window %v", cfg.InvulnerabilityWindow)
	}
	if cfg.EnergyRegenPerSecond < 0 {
		return fmt.Errorf("world: negative energy regen rate %v", cfg.EnergyRegenPerSecond)
	}
	return nil
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// DefaultConfig returns the configuration used when the host supplies
// nothing.
func DefaultConfig() Config {
	return Config{}.normalized()
}
