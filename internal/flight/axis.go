package flight

// Turn command directions.
const (
	Left  = -1
	Right = 1
	Down  = -1
	Up    = 1
)

// Axis is one damped turning degree of freedom.
type Axis struct {
	Accel    int     // Held command: -1, 0 or +1
	Velocity float64 // Current turn velocity
	Rate     float64 // Velocity change per second
	Max      float64 // Absolute velocity cap
}

// Step integrates the axis over dt seconds.
// With a command held, velocity ramps toward it; without one it decays and
// snaps to exactly zero once it is within one step of zero. Velocity that
// opposes the held command is pulled back at the same rate.
func (a *Axis) Step(dt float64) {
	mag := a.Rate * dt

	if a.Accel != 0 {
		a.Velocity += float64(a.Accel) * mag
	} else if abs(a.Velocity) < mag {
		a.Velocity = 0
	}

	if a.Velocity > 0 && a.Accel != 1 {
		a.Velocity -= mag
	}
	if a.Velocity < 0 && a.Accel != -1 {
		a.Velocity += mag
	}

	if a.Velocity > a.Max {
		a.Velocity = a.Max
	} else if a.Velocity < -a.Max {
		a.Velocity = -a.Max
	}
}

// Hold sets the commanded direction.
func (a *Axis) Hold(dir int) {
	a.Accel = dir
}

// Release clears the command.
func (a *Axis) Release() {
	a.Accel = 0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
