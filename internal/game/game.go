// Package game implements the main game loop and state management.
package game

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/canyon-flight/internal/config"
	"github.com/Faultbox/canyon-flight/internal/engine/audio"
	"github.com/Faultbox/canyon-flight/internal/engine/camera"
	"github.com/Faultbox/canyon-flight/internal/engine/debug"
	"github.com/Faultbox/canyon-flight/internal/engine/input"
	"github.com/Faultbox/canyon-flight/internal/engine/renderer"
	"github.com/Faultbox/canyon-flight/internal/engine/window"
	"github.com/Faultbox/canyon-flight/internal/game/states"
	"github.com/Faultbox/canyon-flight/internal/sim"
)

// Title is the window title prefix.
const Title = "Canyon Flight"

// maxFrameTime caps dt after a stall (window drag, breakpoint) so the
// vehicle does not jump through a wall.
const maxFrameTime = 0.1

// Game is the main game instance.
type Game struct {
	config  *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Poller
	bindings *input.Bindings
	audio    *audio.Manager
	camera   *camera.ChaseCamera
	states   *states.Manager
	shots    *debug.Screenshots

	screenshotPending bool

	simCfg  sim.Config
	current *sim.Simulation
}

// New creates a new game instance.
func New(cfg *config.Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Uint64("seed", cfg.Canyon.Seed),
	)

	g := &Game{
		config:   cfg,
		log:      log,
		input:    input.NewPoller(),
		bindings: input.DefaultBindings(),
		audio:    audio.New(),
		camera:   camera.NewChaseCamera(),
		states:   states.NewManager(),
		shots:    debug.NewScreenshots(cfg.Graphics.ScreenshotDir, "canyon"),
		simCfg:   cfg.SimConfig(),
	}

	// Window first; it owns the OpenGL context
	var err error
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.DefaultConfig(width, height), log.Named("renderer"))
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to create renderer: %w", err), g.window.Close())
	}

	g.initAudio()

	g.states.Change(states.NewFlyingState(&states.Context{
		Config:      g.simCfg,
		Log:         log,
		Scene:       g,
		Sounds:      g.audio,
		Manager:     g.states,
		AutoRestart: cfg.Flight.AutoRestart,
	}))

	log.Info("game initialized successfully")
	return g, nil
}

// initAudio opens the speaker. Sound is optional: failures are logged.
func (g *Game) initAudio() {
	cfg := g.config.Audio
	g.audio.SetMuted(cfg.Muted)
	g.audio.SetMasterVolume(float64(cfg.MasterVolume))
	g.audio.SetSFXVolume(float64(cfg.SFXVolume))

	if err := g.audio.Init(); err != nil {
		g.log.Warn("audio unavailable", zap.Error(err))
		return
	}
	if cfg.ExplosionSound == "" {
		return
	}
	data, err := os.ReadFile(cfg.ExplosionSound)
	if err == nil {
		err = g.audio.LoadExplosion(data)
	}
	if err != nil {
		g.log.Warn("using built-in explosion sound",
			zap.String("path", cfg.ExplosionSound),
			zap.Error(err),
		)
	}
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := min(now.Sub(lastTime).Seconds(), maxFrameTime)
		lastTime = now

		// 1. Process input
		if g.input.Poll() {
			g.running = false
			break
		}
		if err := g.handleEvents(g.input.Events()); err != nil {
			return fmt.Errorf("input error: %w", err)
		}
		if !g.running {
			break
		}

		// 2. Update game state
		if err := g.states.Update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		if err := g.states.Render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if g.screenshotPending {
			g.screenshotPending = false
			g.saveScreenshot()
		}

		// 4. Present
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			)
			g.updateTitle(frameCount)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents(events []input.Event) error {
	for _, event := range events {
		switch event.Type {
		case input.EventWindowResize:
			width, height := g.window.DrawableSize()
			g.renderer.Resize(width, height)
			continue
		case input.EventFocusLost:
			for _, action := range g.bindings.ReleaseAll() {
				if err := g.states.HandleAction(action); err != nil {
					return err
				}
			}
			continue
		}

		action := g.bindings.Translate(event)
		if action == (input.Action{}) {
			continue
		}
		switch {
		case action.Quit:
			g.running = false
			return nil
		case action.Screenshot:
			g.screenshotPending = true
			continue
		case action.Restart:
			g.bindings.Reset()
		}
		if err := g.states.HandleAction(action); err != nil {
			return err
		}
	}
	return nil
}

// saveScreenshot captures the back buffer before it is presented.
func (g *Game) saveScreenshot() {
	pixels, width, height := g.renderer.ReadPixels()
	path, err := g.shots.SavePixels(pixels, width, height)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) updateTitle(fps int) {
	if g.current == nil {
		return
	}
	title := fmt.Sprintf("%s - %.0f m", Title, g.current.Vehicle().Position().Z)
	if g.config.Graphics.ShowFPS {
		title += fmt.Sprintf(" - %d fps", fps)
	}
	g.window.SetTitle(title)
}

// Draw renders one frame of a simulation. It implements states.Scene.
func (g *Game) Draw(s *sim.Simulation) {
	g.current = s

	g.renderer.SyncTerrain(s.Terrain().Segments(), g.simCfg.Canyon.CellSize)

	vehicle := s.Vehicle()
	pose := vehicle.Pose()
	g.renderer.Begin(renderer.View{
		ViewProj: g.camera.ViewProj(pose.Body, g.renderer.Aspect()),
		Eye:      g.camera.Position(pose.Body),
	})
	g.renderer.DrawTerrain()
	g.renderer.DrawVehicle(pose, vehicle.Dead(), vehicle.TimeSinceDeath())
	g.renderer.End()
}

// Close cleans up game resources.
func (g *Game) Close() error {
	g.log.Info("closing game")

	err := g.states.Close()
	g.audio.Close()
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		err = multierr.Append(err, g.window.Close())
	}
	return err
}
