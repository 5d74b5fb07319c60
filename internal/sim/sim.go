// Package sim ties the flight model to terrain streaming: one explicit
// simulation context per run, advanced by Tick.
package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/canyon-flight/internal/canyon"
	"github.com/Faultbox/canyon-flight/internal/flight"
	"github.com/Faultbox/canyon-flight/pkg/math"
)

// Config holds simulation settings.
type Config struct {
	Canyon canyon.Config
	Flight flight.Config
	Seed   uint64

	// Collisions kills the vehicle when an airframe point dips below the
	// terrain. Disabled, the vehicle flies through walls.
	Collisions bool

	// PlaceAtEntrance moves the vehicle over the first centerline control
	// point, facing along the canyon, when the simulation starts.
	PlaceAtEntrance bool
}

// DefaultConfig returns the reference scenario.
func DefaultConfig() Config {
	return Config{
		Canyon:          canyon.DefaultConfig(),
		Flight:          flight.DefaultConfig(),
		Collisions:      true,
		PlaceAtEntrance: true,
	}
}

// TickResult reports what happened during one tick.
type TickResult struct {
	Generated bool // A background segment generation started
	Crashed   bool // The vehicle hit terrain this tick
	Overrun   bool // The vehicle is past all generated terrain
}

// Simulation owns the vehicle and the terrain streamer.
type Simulation struct {
	cfg      Config
	log      *zap.Logger
	vehicle  *flight.Controller
	streamer *canyon.Streamer

	overrun bool
	ticks   uint64
}

// New creates a simulation. Call Start before ticking.
func New(cfg Config, log *zap.Logger, opts ...canyon.Option) *Simulation {
	if log == nil {
		log = zap.NewNop()
	}
	streamerOpts := append([]canyon.Option{
		canyon.WithSeed(cfg.Seed),
		canyon.WithLogger(log.Named("canyon")),
	}, opts...)

	return &Simulation{
		cfg:      cfg,
		log:      log,
		vehicle:  flight.New(cfg.Flight),
		streamer: canyon.NewStreamer(cfg.Canyon, streamerOpts...),
	}
}

// Start generates the initial two segments.
func (s *Simulation) Start() error {
	if err := s.streamer.Initialize(); err != nil {
		return fmt.Errorf("initializing terrain: %w", err)
	}
	if s.cfg.PlaceAtEntrance {
		s.placeAtEntrance()
	}
	s.log.Info("simulation started",
		zap.Uint64("seed", s.cfg.Seed),
		zap.Stringer("position", vec(s.vehicle.Position())),
	)
	return nil
}

func (s *Simulation) placeAtEntrance() {
	first := s.streamer.ActiveSegment()
	entry := first.ControlPoint(0)
	tangent := first.ControlPoint(1).Sub(entry)
	cell := s.cfg.Canyon.CellSize

	s.vehicle.SetPosition(math.Vec3{
		X: entry.X * cell,
		Y: s.cfg.Flight.StartPosition.Y,
		Z: entry.Y * cell,
	})
	// Grid Y runs along world Z.
	s.vehicle.SetDirection(math.Vec3{X: tangent.X, Z: tangent.Y}.Normalize())
}

// Tick advances the simulation by dt seconds: flight step, terrain trigger,
// collision check and overrun check, in that order.
func (s *Simulation) Tick(dt float64) TickResult {
	var res TickResult
	s.ticks++

	wasDead := s.vehicle.Dead()
	s.vehicle.Step(dt)
	if wasDead {
		return res
	}

	depth := s.vehicle.Position().Z
	res.Generated = s.streamer.MaybeAdvance(depth)

	if s.cfg.Collisions && s.collides() {
		s.vehicle.Kill()
		res.Crashed = true
		s.log.Info("vehicle crashed",
			zap.Stringer("position", vec(s.vehicle.Position())),
			zap.Uint64("tick", s.ticks),
		)
	}

	overrun := s.streamer.Overrun(depth)
	if overrun && !s.overrun {
		s.log.Warn("vehicle outran terrain generation",
			zap.Float64("depth", depth),
			zap.Bool("generating", s.streamer.Generating()),
		)
	}
	s.overrun = overrun
	res.Overrun = overrun

	return res
}

// collides checks the nose and both wing tips against the terrain.
// Positions over ungenerated terrain count as open air.
func (s *Simulation) collides() bool {
	for _, p := range []math.Vec3{
		s.vehicle.Nose(),
		s.vehicle.WingTip(true),
		s.vehicle.WingTip(false),
	} {
		if h, ok := s.streamer.HeightAt(p.X, p.Z); ok && p.Y < h {
			return true
		}
	}
	return false
}

// Command routes an input command to the vehicle.
func (s *Simulation) Command(cmd flight.Command) {
	s.log.Debug("command", zap.Stringer("cmd", cmd))
	s.vehicle.Apply(cmd)
}

// Vehicle returns the flight controller.
func (s *Simulation) Vehicle() *flight.Controller {
	return s.vehicle
}

// Terrain returns the segment streamer.
func (s *Simulation) Terrain() *canyon.Streamer {
	return s.streamer
}

// Ticks returns the number of ticks run.
func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

// Close joins any in-flight terrain generation.
func (s *Simulation) Close() error {
	if err := s.streamer.Wait(); err != nil {
		return fmt.Errorf("terrain worker: %w", err)
	}
	return nil
}

type vec math.Vec3

func (v vec) String() string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}
