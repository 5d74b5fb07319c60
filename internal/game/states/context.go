package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/canyon-flight/internal/sim"
)

// Scene draws a running simulation.
type Scene interface {
	Draw(s *sim.Simulation)
}

// Sounds plays game sound effects.
type Sounds interface {
	PlayExplosion() error
}

// Context is shared by all states of one game.
type Context struct {
	Config  sim.Config
	Log     *zap.Logger
	Scene   Scene
	Sounds  Sounds
	Manager *Manager

	// AutoRestart starts a new run once the explosion finishes.
	// Otherwise the game waits for a restart key.
	AutoRestart bool

	runs uint64
}

// newRun returns the simulation config for the next run. Each run flies
// a different canyon derived from the base seed.
func (c *Context) newRun() (sim.Config, uint64) {
	run := c.runs
	c.runs++
	cfg := c.Config
	cfg.Seed += run
	return cfg, run
}
