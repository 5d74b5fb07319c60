// Package flight implements the vehicle's damped turning model.
package flight

import (
	gomath "math"

	"github.com/Faultbox/canyon-flight/pkg/math"
)

// Config holds the flight model constants.
type Config struct {
	Speed           float64 // Forward speed, world units per second
	LRMaxTurn       float64 // Left/right turn velocity cap (degrees per second before scaling)
	LRTurnRate      float64 // Left/right velocity change per second
	UDMaxTurn       float64 // Up/down velocity cap
	UDTurnRate      float64 // Up/down velocity change per second
	RotationalScale float64 // Heading degrees per unit of left/right velocity per second
	ExplosionTime   float64 // Seconds the explosion plays before DoneExploding
	StartPosition   math.Vec3
	StartDirection  math.Vec3
}

// DefaultConfig returns the reference flight constants.
func DefaultConfig() Config {
	return Config{
		Speed:           160,
		LRMaxTurn:       70,
		LRTurnRate:      40,
		UDMaxTurn:       2,
		UDTurnRate:      1,
		RotationalScale: 2,
		ExplosionTime:   3,
		StartPosition:   math.Vec3{X: 0, Y: 50, Z: 0},
		StartDirection:  math.Vec3{X: 0, Y: 0, Z: 1},
	}
}

// Airframe points in model space, used for terrain contact.
var (
	noseOffset     = math.Vec3{X: 0, Y: 0, Z: 7.5}
	rightWingTip   = math.Vec3{X: -6.5, Y: -1, Z: -4.5}
	leftWingTip    = math.Vec3{X: 6.5, Y: -1, Z: -4.5}
	pitchAttitude  = 20.0 // Degrees of visual pitch per unit of up/down velocity
	degenerateNorm = 1e-9
)

// AirframePoints returns the nose, left and right wing tips in model space.
func AirframePoints() (nose, left, right math.Vec3) {
	return noseOffset, leftWingTip, rightWingTip
}

// Pose is the vehicle transform handed to the renderer and camera.
type Pose struct {
	Body     math.Mat4 // Translation and heading
	Attitude math.Mat4 // Bank and pitch in body space
}

// Model returns Body × Attitude.
func (p Pose) Model() math.Mat4 {
	return p.Body.Mul(p.Attitude)
}

// Controller integrates vehicle position and heading from turn commands.
type Controller struct {
	cfg Config

	lr Axis
	ud Axis

	position  math.Vec3
	direction math.Vec3
	pose      Pose

	dead           bool
	timeSinceDeath float64
}

// New creates a controller at the configured start position.
func New(cfg Config) *Controller {
	c := &Controller{
		cfg:       cfg,
		lr:        Axis{Rate: cfg.LRTurnRate, Max: cfg.LRMaxTurn},
		ud:        Axis{Rate: cfg.UDTurnRate, Max: cfg.UDMaxTurn},
		position:  cfg.StartPosition,
		direction: cfg.StartDirection,
	}
	if c.direction == (math.Vec3{}) {
		c.direction = math.Vec3{Z: 1}
	}
	c.updatePose()
	return c
}

// Step advances the vehicle by dt seconds.
func (c *Controller) Step(dt float64) {
	if c.dead {
		c.timeSinceDeath += dt
		return
	}

	c.lr.Step(dt)
	c.ud.Step(dt)

	turn := math.RotateY(math.Radians(-c.lr.Velocity * c.cfg.RotationalScale * dt))
	c.direction = turn.TransformDirection(c.direction)

	// Turning only reorients; forward speed never changes.
	movement := c.direction.Add(math.Vec3{Y: c.ud.Velocity})
	c.position = c.position.Add(movement.Scale(c.cfg.Speed * dt))

	c.updatePose()
}

func (c *Controller) updatePose() {
	c.pose = Pose{
		Body: math.TranslateVec(c.position).Mul(math.RotateY(c.Heading() + gomath.Pi/2)),
		Attitude: math.RotateZ(math.Radians(c.lr.Velocity)).Mul(
			math.RotateX(math.Radians(-c.ud.Velocity * pitchAttitude))),
	}
}

// Orient places the vehicle on a scripted path: it faces velocity, pitches
// with its climb angle and banks toward the lateral acceleration.
// The bank angle is zero when velocity is vertical or acceleration is zero.
func (c *Controller) Orient(position, velocity, acceleration math.Vec3) {
	c.position = position
	if velocity != (math.Vec3{}) {
		c.direction = velocity
	}

	angleXZ := gomath.Atan2(-velocity.Z, velocity.X) + gomath.Pi/2
	angleY := gomath.Asin(clamp(velocity.Normalize().Y, -1, 1))

	orthoVel := math.Vec3{X: -velocity.Z, Z: velocity.X}
	turnAngle := 0.0
	if denom := orthoVel.Length() * acceleration.Length(); denom > degenerateNorm {
		turnAngle = gomath.Acos(clamp(orthoVel.Dot(acceleration)/denom, -1, 1)) - gomath.Pi/2
	}

	c.pose = Pose{
		Body:     math.TranslateVec(position).Mul(math.RotateY(angleXZ)),
		Attitude: math.RotateZ(-turnAngle).Mul(math.RotateX(-angleY)),
	}
}

// TurnLeft holds a left turn.
func (c *Controller) TurnLeft() { c.lr.Hold(Left) }

// TurnRight holds a right turn.
func (c *Controller) TurnRight() { c.lr.Hold(Right) }

// TurnUp holds a climb.
func (c *Controller) TurnUp() { c.ud.Hold(Up) }

// TurnDown holds a dive.
func (c *Controller) TurnDown() { c.ud.Hold(Down) }

// StopLeftRight releases the left/right command.
func (c *Controller) StopLeftRight() { c.lr.Release() }

// StopUpDown releases the up/down command.
func (c *Controller) StopUpDown() { c.ud.Release() }

// Position returns the world position.
func (c *Controller) Position() math.Vec3 {
	return c.position
}

// SetPosition moves the vehicle.
func (c *Controller) SetPosition(p math.Vec3) {
	c.position = p
	c.updatePose()
}

// Direction returns the forward direction.
func (c *Controller) Direction() math.Vec3 {
	return c.direction
}

// SetDirection points the vehicle along d.
func (c *Controller) SetDirection(d math.Vec3) {
	c.direction = d
	c.updatePose()
}

// Heading returns atan2(-dirZ, dirX) in radians.
func (c *Controller) Heading() float64 {
	return gomath.Atan2(-c.direction.Z, c.direction.X)
}

// Velocities returns the left/right and up/down turn velocities.
func (c *Controller) Velocities() (lr, ud float64) {
	return c.lr.Velocity, c.ud.Velocity
}

// Axes returns copies of both turn axes.
func (c *Controller) Axes() (lr, ud Axis) {
	return c.lr, c.ud
}

// Pose returns the current transform.
func (c *Controller) Pose() Pose {
	return c.pose
}

// Nose returns the nose tip in world space.
func (c *Controller) Nose() math.Vec3 {
	return c.pose.Model().TransformVec3(noseOffset)
}

// WingTip returns a wing tip in world space.
func (c *Controller) WingTip(right bool) math.Vec3 {
	if right {
		return c.pose.Model().TransformVec3(rightWingTip)
	}
	return c.pose.Model().TransformVec3(leftWingTip)
}

// Kill switches to the death state. Turning freezes and the airframe levels.
func (c *Controller) Kill() {
	if c.dead {
		return
	}
	c.dead = true
	c.timeSinceDeath = 0
	c.pose.Attitude = math.Identity()
}

// Dead reports whether the vehicle has been destroyed.
func (c *Controller) Dead() bool {
	return c.dead
}

// TimeSinceDeath returns seconds since Kill.
func (c *Controller) TimeSinceDeath() float64 {
	return c.timeSinceDeath
}

// DoneExploding reports whether the explosion has finished playing.
func (c *Controller) DoneExploding() bool {
	return c.dead && c.timeSinceDeath > c.cfg.ExplosionTime
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
