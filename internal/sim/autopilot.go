package sim

import (
	gomath "math"

	"github.com/Faultbox/canyon-flight/internal/flight"
	"github.com/Faultbox/canyon-flight/pkg/math"
)

// Autopilot flies the canyon centerline at a fixed altitude using the same
// six commands a player has. It only issues a command when the wanted
// action changes.
//
// The pilot picks a target turn velocity and nudges the axis toward it.
// The target is the turn rate the centerline demands a short way ahead,
// which covers the time the axis needs to ramp, plus a correction toward
// the path heading that is never larger than the axis can shed before the
// heading error closes.
type Autopilot struct {
	FeedLead      float64 // Rows ahead where the centerline's turn rate is read
	CrossGain     float64 // Slope of the heading correction per cell off the centerline
	MaxCorrection float64 // Largest heading correction for cross-track error, degrees
	TurnGain      float64 // Turn velocity per degree of heading error near zero
	TurnBrake     float64 // Squared turn velocity per degree of error that can be shed without overshoot
	TurnBand      float64 // Turn velocity tolerance before a correction

	Altitude   float64 // Target altitude in world units
	ClimbGain  float64 // Climb speed per unit of altitude error near zero
	ClimbBrake float64 // Squared climb speed per unit of altitude error
	ClimbBand  float64 // Up/down velocity tolerance before a correction

	lr flight.Command
	ud flight.Command
}

// NewAutopilot returns an autopilot holding the given altitude.
func NewAutopilot(altitude float64) *Autopilot {
	return &Autopilot{
		FeedLead:      10,
		CrossGain:     0.04,
		MaxCorrection: 45,
		TurnGain:      1.6,
		TurnBrake:     20,
		TurnBand:      1,

		Altitude:   altitude,
		ClimbGain:  2,
		ClimbBrake: 80,
		ClimbBand:  0.02,
	}
}

// Steer issues any commands needed this tick.
func (a *Autopilot) Steer(s *Simulation) {
	if s.Vehicle().Dead() {
		return
	}

	if cmd := a.heading(s); cmd != a.lr {
		a.lr = cmd
		s.Command(cmd)
	}
	if cmd := a.altitude(s); cmd != a.ud {
		a.ud = cmd
		s.Command(cmd)
	}
}

func (a *Autopilot) heading(s *Simulation) flight.Command {
	cell := s.cfg.Canyon.CellSize
	fc := s.cfg.Flight
	v := s.Vehicle()
	pos := v.Position()
	dir := math.Vec3{X: v.Direction().X, Z: v.Direction().Z}.Normalize()
	row := pos.Z / cell

	center, ok := s.centerX(row)
	if !ok {
		return flight.CmdStopLeftRight
	}
	path, ok1 := s.pathDirection(row)
	ahead, ok2 := s.pathDirection(row + a.FeedLead)
	beyond, ok3 := s.pathDirection(row + a.FeedLead + 1)
	if !ok1 || !ok2 || !ok3 {
		return flight.CmdStopLeftRight
	}

	// Cells the centerline lies to the right of the vehicle, across the path.
	cross := (center - pos.X/cell) * -path.Z
	correction := clampAbs(math.Degrees(gomath.Atan(a.CrossGain*cross)), a.MaxCorrection)
	want := math.RotateY(math.Radians(-correction)).TransformDirection(path)
	headingErr := rightOf(dir, want)

	rowsPerSecond := fc.Speed / cell * dir.Z
	feed := rightOf(ahead, beyond) * rowsPerSecond / fc.RotationalScale

	target := clampAbs(feed+approach(headingErr, a.TurnGain, a.TurnBrake), fc.LRMaxTurn)
	lr, _ := v.Velocities()
	return chase(lr, target, a.TurnBand, flight.CmdTurnRight, flight.CmdTurnLeft, flight.CmdStopLeftRight)
}

func (a *Autopilot) altitude(s *Simulation) flight.Command {
	fc := s.cfg.Flight
	v := s.Vehicle()

	climb := approach(a.Altitude-v.Position().Y, a.ClimbGain, a.ClimbBrake)
	target := clampAbs(climb/fc.Speed, fc.UDMaxTurn)
	_, ud := v.Velocities()
	return chase(ud, target, a.ClimbBand, flight.CmdTurnUp, flight.CmdTurnDown, flight.CmdStopUpDown)
}

// centerX returns the centerline X in cells at a grid row, from whichever
// segment covers it.
func (s *Simulation) centerX(row float64) (float64, bool) {
	for _, seg := range s.streamer.Segments() {
		if seg == nil || !seg.Ready() {
			continue
		}
		if x, ok := seg.CenterX(row); ok {
			return x, true
		}
	}
	return 0, false
}

// pathDirection returns the horizontal unit direction of the centerline at
// a grid row. Grid rows run along world Z.
func (s *Simulation) pathDirection(row float64) (math.Vec3, bool) {
	behind, ok1 := s.centerX(row - 0.5)
	ahead, ok2 := s.centerX(row + 0.5)
	if !ok1 || !ok2 {
		return math.Vec3{}, false
	}
	return math.Vec3{X: ahead - behind, Z: 1}.Normalize(), true
}

// rightOf returns the signed horizontal angle in degrees from dir to to.
// Positive angles need a right turn, which swings a +Z heading toward -X.
func rightOf(dir, to math.Vec3) float64 {
	return math.Degrees(gomath.Atan2(dir.X*to.Z-dir.Z*to.X, dir.X*to.X+dir.Z*to.Z))
}

// approach returns the rate at which to close err: linear near zero and
// limited to sqrt(brake*|err|) further out, so the rate can be wound back
// down before the error closes.
func approach(err, gain, brake float64) float64 {
	rate := min(gomath.Sqrt(brake*gomath.Abs(err)), gain*gomath.Abs(err))
	return gomath.Copysign(rate, err)
}

// chase picks the command that moves velocity toward target.
func chase(velocity, target, band float64, raise, lower, hold flight.Command) flight.Command {
	switch {
	case velocity < target-band:
		return raise
	case velocity > target+band:
		return lower
	default:
		return hold
	}
}

func clampAbs(v, limit float64) float64 {
	return gomath.Max(-limit, gomath.Min(limit, v))
}
