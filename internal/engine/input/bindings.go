package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/canyon-flight/internal/flight"
)

// Control is a logical key role.
type Control int

const (
	ControlNone Control = iota
	ControlLeft
	ControlRight
	ControlUp
	ControlDown
	ControlQuit
	ControlRestart
	ControlAutopilot
	ControlScreenshot
)

// Action is what a key event asks the game to do.
type Action struct {
	Command    flight.Command
	Quit       bool
	Restart    bool
	Autopilot  bool // Toggle
	Screenshot bool
}

// Bindings maps keys to controls and turns key transitions into flight
// commands. Releasing one direction while the opposite key is still held
// turns that way instead of stopping.
type Bindings struct {
	keys map[sdl.Scancode]Control
	held map[Control]int
}

// DefaultBindings returns WASD plus arrow keys, Escape to quit, R to restart,
// P to toggle the autopilot and F12 for a screenshot.
func DefaultBindings() *Bindings {
	return NewBindings(map[sdl.Scancode]Control{
		sdl.SCANCODE_A:      ControlLeft,
		sdl.SCANCODE_LEFT:   ControlLeft,
		sdl.SCANCODE_D:      ControlRight,
		sdl.SCANCODE_RIGHT:  ControlRight,
		sdl.SCANCODE_W:      ControlUp,
		sdl.SCANCODE_UP:     ControlUp,
		sdl.SCANCODE_S:      ControlDown,
		sdl.SCANCODE_DOWN:   ControlDown,
		sdl.SCANCODE_ESCAPE: ControlQuit,
		sdl.SCANCODE_R:      ControlRestart,
		sdl.SCANCODE_P:      ControlAutopilot,
		sdl.SCANCODE_F12:    ControlScreenshot,
	})
}

// NewBindings creates bindings from a key map.
func NewBindings(keys map[sdl.Scancode]Control) *Bindings {
	return &Bindings{
		keys: keys,
		held: make(map[Control]int),
	}
}

// Translate converts one event into an action. Events with no meaning
// return the zero Action.
func (b *Bindings) Translate(e Event) Action {
	switch e.Type {
	case EventQuit:
		return Action{Quit: true}
	case EventKeyDown:
		return b.press(b.keys[e.Key])
	case EventKeyUp:
		return b.release(b.keys[e.Key])
	}
	return Action{}
}

// TranslateAll converts a frame's events, dropping empty actions.
func (b *Bindings) TranslateAll(events []Event) []Action {
	var out []Action
	for _, e := range events {
		if a := b.Translate(e); a != (Action{}) {
			out = append(out, a)
		}
	}
	return out
}

// Reset forgets held keys, e.g. after a restart.
func (b *Bindings) Reset() {
	clear(b.held)
}

// ReleaseAll forgets held keys and returns the stop commands for every
// axis that was turning. Used when the window loses focus.
func (b *Bindings) ReleaseAll() []Action {
	var out []Action
	if b.held[ControlLeft] > 0 || b.held[ControlRight] > 0 {
		out = append(out, Action{Command: flight.CmdStopLeftRight})
	}
	if b.held[ControlUp] > 0 || b.held[ControlDown] > 0 {
		out = append(out, Action{Command: flight.CmdStopUpDown})
	}
	b.Reset()
	return out
}

func (b *Bindings) press(c Control) Action {
	switch c {
	case ControlQuit:
		return Action{Quit: true}
	case ControlRestart:
		return Action{Restart: true}
	case ControlAutopilot:
		return Action{Autopilot: true}
	case ControlScreenshot:
		return Action{Screenshot: true}
	case ControlNone:
		return Action{}
	}
	b.held[c]++
	return Action{Command: turnCommand(c)}
}

func (b *Bindings) release(c Control) Action {
	switch c {
	case ControlLeft, ControlRight, ControlUp, ControlDown:
	default:
		return Action{}
	}
	if b.held[c] > 0 {
		b.held[c]--
	}
	if b.held[c] > 0 {
		// Another key bound to the same control is still down
		return Action{}
	}
	if opp := opposite(c); b.held[opp] > 0 {
		return Action{Command: turnCommand(opp)}
	}
	return Action{Command: stopCommand(c)}
}

func opposite(c Control) Control {
	switch c {
	case ControlLeft:
		return ControlRight
	case ControlRight:
		return ControlLeft
	case ControlUp:
		return ControlDown
	case ControlDown:
		return ControlUp
	}
	return ControlNone
}

func turnCommand(c Control) flight.Command {
	switch c {
	case ControlLeft:
		return flight.CmdTurnLeft
	case ControlRight:
		return flight.CmdTurnRight
	case ControlUp:
		return flight.CmdTurnUp
	case ControlDown:
		return flight.CmdTurnDown
	}
	return flight.CmdNone
}

func stopCommand(c Control) flight.Command {
	switch c {
	case ControlLeft, ControlRight:
		return flight.CmdStopLeftRight
	case ControlUp, ControlDown:
		return flight.CmdStopUpDown
	}
	return flight.CmdNone
}
