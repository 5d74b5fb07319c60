package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestFromSDL(t *testing.T) {
	key := func(typ uint32, code sdl.Scancode, repeat uint8) *sdl.KeyboardEvent {
		return &sdl.KeyboardEvent{Type: typ, Repeat: repeat, Keysym: sdl.Keysym{Scancode: code}}
	}

	tests := []struct {
		name string
		raw  sdl.Event
		want Event
		ok   bool
	}{
		{"quit", &sdl.QuitEvent{}, Event{Type: EventQuit}, true},
		{"resized", &sdl.WindowEvent{Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600},
			Event{Type: EventWindowResize, Width: 800, Height: 600}, true},
		{"size changed", &sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 640, Data2: 480},
			Event{Type: EventWindowResize, Width: 640, Height: 480}, true},
		{"focus lost", &sdl.WindowEvent{Event: sdl.WINDOWEVENT_FOCUS_LOST}, Event{Type: EventFocusLost}, true},
		{"window moved", &sdl.WindowEvent{Event: sdl.WINDOWEVENT_MOVED}, Event{}, false},
		{"key down", key(sdl.KEYDOWN, sdl.SCANCODE_A, 0), Event{Type: EventKeyDown, Key: sdl.SCANCODE_A}, true},
		{"key up", key(sdl.KEYUP, sdl.SCANCODE_A, 0), Event{Type: EventKeyUp, Key: sdl.SCANCODE_A}, true},
		{"auto repeat", key(sdl.KEYDOWN, sdl.SCANCODE_A, 1), Event{}, false},
		{"mouse", &sdl.MouseMotionEvent{X: 3, Y: 4}, Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := fromSDL(tt.raw)
			if ok != tt.ok || got != tt.want {
				t.Errorf("fromSDL = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}
