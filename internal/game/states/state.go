// Package states implements game state management.
package states

import (
	"errors"

	"github.com/Faultbox/canyon-flight/internal/engine/input"
)

// State represents a game state (flying, crashed).
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every frame.
	Update(dt float64) error

	// Render is called every frame to draw the state.
	Render() error

	// HandleAction processes one translated input action.
	HandleAction(action input.Action) error
}

// Manager manages game state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change. It takes effect on the next Update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes state changes and updates current state.
func (m *Manager) Update(dt float64) error {
	if err := m.transition(); err != nil {
		return err
	}
	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

func (m *Manager) transition() error {
	if m.next == nil {
		return nil
	}
	if m.current != nil {
		if err := m.current.Exit(); err != nil {
			return err
		}
	}
	m.current = m.next
	m.next = nil
	return m.current.Enter()
}

// Render renders the current state.
func (m *Manager) Render() error {
	if m.current != nil {
		return m.current.Render()
	}
	return nil
}

// HandleAction forwards an action to the current state.
func (m *Manager) HandleAction(action input.Action) error {
	if m.current != nil {
		return m.current.HandleAction(action)
	}
	return nil
}

// Close exits the current state. A pending state is exited too so it can
// release anything handed to it.
func (m *Manager) Close() error {
	var errs []error
	if m.current != nil {
		errs = append(errs, m.current.Exit())
		m.current = nil
	}
	if m.next != nil {
		errs = append(errs, m.next.Exit())
		m.next = nil
	}
	return errors.Join(errs...)
}
