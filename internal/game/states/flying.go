package states

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/canyon-flight/internal/engine/input"
	"github.com/Faultbox/canyon-flight/internal/flight"
	"github.com/Faultbox/canyon-flight/internal/sim"
)

// FlyingState runs one flight until the vehicle crashes.
type FlyingState struct {
	ctx *Context
	sim *sim.Simulation
	run uint64

	autopilot *sim.Autopilot
	handedOff bool
}

// NewFlyingState creates a state that starts a fresh run on Enter.
func NewFlyingState(ctx *Context) *FlyingState {
	return &FlyingState{ctx: ctx}
}

// Enter starts a new simulation.
func (s *FlyingState) Enter() error {
	cfg, run := s.ctx.newRun()
	s.run = run
	s.sim = sim.New(cfg, s.ctx.Log.Named("sim"))
	if err := s.sim.Start(); err != nil {
		return fmt.Errorf("starting run %d: %w", run, err)
	}
	s.ctx.Log.Info("run started", zap.Uint64("run", run), zap.Uint64("seed", cfg.Seed))
	return nil
}

// Exit closes the simulation unless the crash state took it over.
func (s *FlyingState) Exit() error {
	if s.handedOff || s.sim == nil {
		return nil
	}
	return s.sim.Close()
}

// Update advances the simulation one frame.
func (s *FlyingState) Update(dt float64) error {
	if s.autopilot != nil {
		s.autopilot.Steer(s.sim)
	}
	res := s.sim.Tick(dt)
	if !res.Crashed {
		return nil
	}

	if s.ctx.Sounds != nil {
		if err := s.ctx.Sounds.PlayExplosion(); err != nil {
			s.ctx.Log.Warn("explosion sound failed", zap.Error(err))
		}
	}
	s.handedOff = true
	s.ctx.Manager.Change(NewCrashedState(s.ctx, s.sim, s.run))
	return nil
}

// Render draws the simulation.
func (s *FlyingState) Render() error {
	if s.ctx.Scene != nil {
		s.ctx.Scene.Draw(s.sim)
	}
	return nil
}

// HandleAction routes flight commands; restart begins a new run at once.
// Manual commands are ignored while the autopilot flies.
func (s *FlyingState) HandleAction(action input.Action) error {
	switch {
	case action.Restart:
		s.ctx.Manager.Change(NewFlyingState(s.ctx))
	case action.Autopilot:
		s.toggleAutopilot()
	case s.autopilot == nil:
		s.sim.Command(action.Command)
	}
	return nil
}

func (s *FlyingState) toggleAutopilot() {
	if s.autopilot != nil {
		s.autopilot = nil
		s.sim.Command(flight.CmdStopLeftRight)
		s.sim.Command(flight.CmdStopUpDown)
		s.ctx.Log.Info("autopilot off")
		return
	}
	s.autopilot = sim.NewAutopilot(s.ctx.Config.Flight.StartPosition.Y)
	s.ctx.Log.Info("autopilot on")
}

// Autopilot reports whether the autopilot is flying.
func (s *FlyingState) Autopilot() bool {
	return s.autopilot != nil
}

// Simulation returns the running simulation.
func (s *FlyingState) Simulation() *sim.Simulation {
	return s.sim
}
