// Package input turns SDL window and keyboard events into flight controls.
//
// Poller drains the SDL queue once per frame into a small set of Events;
// Bindings maps those onto flight commands and game actions.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType is the kind of a frame event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	// EventFocusLost means key releases may never arrive.
	EventFocusLost
)

// Event is one window or key transition.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Poller collects the events of one frame.
type Poller struct {
	events []Event
}

func NewPoller() *Poller {
	return &Poller{events: make([]Event, 0, 8)}
}

// Poll drains the SDL queue. It reports true once the window is closed;
// events after the close are left queued.
func (p *Poller) Poll() bool {
	p.events = p.events[:0]
	for raw := sdl.PollEvent(); raw != nil; raw = sdl.PollEvent() {
		e, ok := fromSDL(raw)
		if !ok {
			continue
		}
		p.events = append(p.events, e)
		if e.Type == EventQuit {
			return true
		}
	}
	return false
}

// Events returns what the last Poll collected. The slice is reused.
func (p *Poller) Events() []Event {
	return p.events
}

// fromSDL keeps the events the game reacts to. Auto-repeated key downs
// are dropped so a held key issues one command.
func fromSDL(raw sdl.Event) (Event, bool) {
	switch e := raw.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_FOCUS_LOST:
			return Event{Type: EventFocusLost}, true
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return Event{}, false
		}
		switch e.Type {
		case sdl.KEYDOWN:
			return Event{Type: EventKeyDown, Key: e.Keysym.Scancode}, true
		case sdl.KEYUP:
			return Event{Type: EventKeyUp, Key: e.Keysym.Scancode}, true
		}
	}
	return Event{}, false
}
