// Package config handles game configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/canyon-flight/internal/canyon"
	"github.com/Faultbox/canyon-flight/internal/flight"
	"github.com/Faultbox/canyon-flight/internal/sim"
	"github.com/Faultbox/canyon-flight/pkg/math"
)

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Canyon   CanyonConfig   `yaml:"canyon"`
	Flight   FlightConfig   `yaml:"flight"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowFPS    bool `yaml:"show_fps"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`

	// ExplosionSound is an optional WAV file replacing the built-in crash sound.
	ExplosionSound string `yaml:"explosion_sound"`
}

// CanyonConfig holds terrain generation settings.
type CanyonConfig struct {
	Seed            uint64  `yaml:"seed"` // 0 picks a seed from the clock
	SegmentWidth    int     `yaml:"segment_width"`
	SegmentLength   int     `yaml:"segment_length"`
	CurveSamples    int     `yaml:"curve_samples"`
	BoundarySamples int     `yaml:"boundary_samples"`
	WallPadding     float64 `yaml:"wall_padding"`
	WallFalloff     float64 `yaml:"wall_falloff"`
	NoiseAmplitude  float64 `yaml:"noise_amplitude"`
	CellSize        float64 `yaml:"cell_size"`
	TriggerMargin   float64 `yaml:"trigger_margin"`
}

// FlightConfig holds flight model settings.
type FlightConfig struct {
	Speed           float64 `yaml:"speed"`
	LRMaxTurn       float64 `yaml:"lr_max_turn"`
	LRTurnRate      float64 `yaml:"lr_turn_rate"`
	UDMaxTurn       float64 `yaml:"ud_max_turn"`
	UDTurnRate      float64 `yaml:"ud_turn_rate"`
	RotationalScale float64 `yaml:"rotational_scale"`
	ExplosionTime   float64 `yaml:"explosion_time"`
	StartAltitude   float64 `yaml:"start_altitude"`
	Collisions      bool    `yaml:"collisions"`
	AutoRestart     bool    `yaml:"auto_restart"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	cc := canyon.DefaultConfig()
	fc := flight.DefaultConfig()
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,

			ScreenshotDir: "screenshots",
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
		},
		Canyon: CanyonConfig{
			SegmentWidth:    cc.Width,
			SegmentLength:   cc.Height,
			CurveSamples:    cc.CurveSamples,
			BoundarySamples: cc.BoundarySamples,
			WallPadding:     cc.WallPadding,
			WallFalloff:     cc.WallFalloff,
			NoiseAmplitude:  cc.NoiseAmplitude,
			CellSize:        cc.CellSize,
			TriggerMargin:   cc.TriggerMargin,
		},
		Flight: FlightConfig{
			Speed:           fc.Speed,
			LRMaxTurn:       fc.LRMaxTurn,
			LRTurnRate:      fc.LRTurnRate,
			UDMaxTurn:       fc.UDMaxTurn,
			UDTurnRate:      fc.UDTurnRate,
			RotationalScale: fc.RotationalScale,
			ExplosionTime:   fc.ExplosionTime,
			StartAltitude:   fc.StartPosition.Y,
			Collisions:      true,
			AutoRestart:     false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("graphics.width", float64(c.Graphics.Width))
	positive("graphics.height", float64(c.Graphics.Height))
	positive("canyon.segment_width", float64(c.Canyon.SegmentWidth))
	positive("canyon.segment_length", float64(c.Canyon.SegmentLength))
	positive("canyon.curve_samples", float64(c.Canyon.CurveSamples))
	positive("canyon.wall_falloff", c.Canyon.WallFalloff)
	positive("canyon.cell_size", c.Canyon.CellSize)
	positive("flight.speed", c.Flight.Speed)
	positive("flight.lr_turn_rate", c.Flight.LRTurnRate)
	positive("flight.ud_turn_rate", c.Flight.UDTurnRate)

	if c.Canyon.BoundarySamples < 0 {
		errs = append(errs, fmt.Errorf("canyon.boundary_samples must not be negative, got %d", c.Canyon.BoundarySamples))
	}
	if c.Canyon.WallPadding < 0 {
		errs = append(errs, fmt.Errorf("canyon.wall_padding must not be negative, got %v", c.Canyon.WallPadding))
	}
	if c.Canyon.NoiseAmplitude < 0 {
		errs = append(errs, fmt.Errorf("canyon.noise_amplitude must not be negative, got %v", c.Canyon.NoiseAmplitude))
	}
	if c.Canyon.TriggerMargin < 0 || c.Canyon.TriggerMargin >= float64(c.Canyon.SegmentLength) {
		errs = append(errs, fmt.Errorf("canyon.trigger_margin must be in [0, segment_length), got %v", c.Canyon.TriggerMargin))
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		errs = append(errs, fmt.Errorf("audio.master_volume must be in [0, 1], got %v", c.Audio.MasterVolume))
	}
	if c.Audio.SFXVolume < 0 || c.Audio.SFXVolume > 1 {
		errs = append(errs, fmt.Errorf("audio.sfx_volume must be in [0, 1], got %v", c.Audio.SFXVolume))
	}

	return errors.Join(errs...)
}

// CanyonConfig converts the terrain settings to the generator's config.
func (c *Config) CanyonConfig() canyon.Config {
	return canyon.Config{
		Width:           c.Canyon.SegmentWidth,
		Height:          c.Canyon.SegmentLength,
		CurveSamples:    c.Canyon.CurveSamples,
		BoundarySamples: c.Canyon.BoundarySamples,
		WallPadding:     c.Canyon.WallPadding,
		WallFalloff:     c.Canyon.WallFalloff,
		NoiseAmplitude:  c.Canyon.NoiseAmplitude,
		CellSize:        c.Canyon.CellSize,
		TriggerMargin:   c.Canyon.TriggerMargin,
	}
}

// FlightConfig converts the flight settings to the controller's config.
func (c *Config) FlightConfig() flight.Config {
	fc := flight.DefaultConfig()
	fc.Speed = c.Flight.Speed
	fc.LRMaxTurn = c.Flight.LRMaxTurn
	fc.LRTurnRate = c.Flight.LRTurnRate
	fc.UDMaxTurn = c.Flight.UDMaxTurn
	fc.UDTurnRate = c.Flight.UDTurnRate
	fc.RotationalScale = c.Flight.RotationalScale
	fc.ExplosionTime = c.Flight.ExplosionTime
	fc.StartPosition = math.Vec3{Y: c.Flight.StartAltitude}
	return fc
}

// SimConfig builds the simulation config. A zero seed is replaced by one
// derived from the clock.
func (c *Config) SimConfig() sim.Config {
	seed := c.Canyon.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	sc := sim.DefaultConfig()
	sc.Canyon = c.CanyonConfig()
	sc.Flight = c.FlightConfig()
	sc.Seed = seed
	sc.Collisions = c.Flight.Collisions
	return sc
}
