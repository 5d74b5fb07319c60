package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/canyon-flight/internal/engine/input"
	"github.com/Faultbox/canyon-flight/internal/sim"
)

// CrashedState plays the explosion of a finished run.
type CrashedState struct {
	ctx *Context
	sim *sim.Simulation
	run uint64

	restartRequested bool
	restarting       bool
}

// NewCrashedState takes ownership of a crashed simulation.
func NewCrashedState(ctx *Context, s *sim.Simulation, run uint64) *CrashedState {
	return &CrashedState{ctx: ctx, sim: s, run: run}
}

// Enter logs the crash.
func (s *CrashedState) Enter() error {
	pos := s.sim.Vehicle().Position()
	s.ctx.Log.Info("run ended",
		zap.Uint64("run", s.run),
		zap.Float64("distance", pos.Z),
		zap.Int("segments", s.sim.Terrain().Index()),
	)
	return nil
}

// Exit closes the simulation.
func (s *CrashedState) Exit() error {
	return s.sim.Close()
}

// Update advances the explosion timer and restarts when it is done.
func (s *CrashedState) Update(dt float64) error {
	s.sim.Tick(dt)
	if s.restarting || !s.sim.Vehicle().DoneExploding() {
		return nil
	}
	if s.restartRequested || s.ctx.AutoRestart {
		s.restarting = true
		s.ctx.Manager.Change(NewFlyingState(s.ctx))
	}
	return nil
}

// Render draws the wreck.
func (s *CrashedState) Render() error {
	if s.ctx.Scene != nil {
		s.ctx.Scene.Draw(s.sim)
	}
	return nil
}

// HandleAction queues a restart; flight commands are ignored.
func (s *CrashedState) HandleAction(action input.Action) error {
	if action.Restart {
		s.restartRequested = true
	}
	return nil
}

// Simulation returns the crashed simulation.
func (s *CrashedState) Simulation() *sim.Simulation {
	return s.sim
}
