package tuio

import (
	"math"
	"time"
)

// Point is a normalized position stamped with session time.
type Point struct {
	X    float32       `json:"x"`
	Y    float32       `json:"y"`
	Time time.Duration `json:"time"`
}

// Distance returns the euclidean distance between p and (x, y).
func (p Point) Distance(x, y float32) float32 {
	dx := float64(p.X - x)
	dy := float64(p.Y - y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// Container holds the fields and kinematics shared by every profile.
// Times are durations since the client session started.
type Container struct {
	SessionID   int64         `json:"session_id"`
	X           float32       `json:"x"`
	Y           float32       `json:"y"`
	XSpeed      float32       `json:"x_speed"`
	YSpeed      float32       `json:"y_speed"`
	MotionSpeed float32       `json:"motion_speed"`
	MotionAccel float32       `json:"motion_accel"`
	State       State         `json:"state"`
	Start       time.Duration `json:"start"`
	Updated     time.Duration `json:"updated"`
	Path        []Point       `json:"path,omitempty"`
}

// Position returns the current position as a point.
func (c *Container) Position() Point {
	return Point{X: c.X, Y: c.Y, Time: c.Updated}
}

// Distance returns the distance from the current position to (x, y).
func (c *Container) Distance(x, y float32) float32 {
	return c.Position().Distance(x, y)
}

// IsMoving reports whether the last update carried acceleration.
func (c *Container) IsMoving() bool {
	return c.State == StateAccelerating || c.State == StateDecelerating || c.State == StateRotating
}

func (c *Container) begin(t time.Duration, sessionID int64, x, y float32) {
	c.SessionID = sessionID
	c.X, c.Y = x, y
	c.State = StateAdded
	c.Start = t
	c.Updated = t
	c.Path = []Point{{X: x, Y: y, Time: t}}
}

// lastTime is the timestamp of the newest path point.
func (c *Container) lastTime() time.Duration {
	if n := len(c.Path); n > 0 {
		return c.Path[n-1].Time
	}
	return c.Updated
}

// moveTo applies sender supplied velocity and acceleration.
func (c *Container) moveTo(t time.Duration, x, y, xSpeed, ySpeed, accel float32) {
	c.X, c.Y = x, y
	c.XSpeed, c.YSpeed = xSpeed, ySpeed
	c.MotionSpeed = float32(math.Sqrt(float64(xSpeed*xSpeed + ySpeed*ySpeed)))
	c.MotionAccel = accel
	c.advance(t, x, y)
}

// deriveTo computes velocity and acceleration from the previous path point.
// A non-positive interval moves the entity without touching its kinematics.
func (c *Container) deriveTo(t time.Duration, x, y float32) {
	dt := (t - c.lastTime()).Seconds()
	if dt <= 0 {
		c.X, c.Y = x, y
		c.advance(t, x, y)
		return
	}
	dx := float64(x - c.X)
	dy := float64(y - c.Y)
	lastSpeed := c.MotionSpeed

	c.X, c.Y = x, y
	c.XSpeed = float32(dx / dt)
	c.YSpeed = float32(dy / dt)
	c.MotionSpeed = float32(math.Sqrt(dx*dx+dy*dy) / dt)
	c.MotionAccel = float32(float64(c.MotionSpeed-lastSpeed) / dt)
	c.advance(t, x, y)
}

func (c *Container) advance(t time.Duration, x, y float32) {
	c.Path = append(c.Path, Point{X: x, Y: y, Time: t})
	c.Updated = t
	switch {
	case c.MotionAccel > 0:
		c.State = StateAccelerating
	case c.MotionAccel < 0:
		c.State = StateDecelerating
	default:
		c.State = StateStopped
	}
}

func (c *Container) remove(t time.Duration) {
	c.State = StateRemoved
	c.Updated = t
}

// trimPath keeps at most limit points. A limit <= 0 keeps everything.
func (c *Container) trimPath(limit int) {
	if limit <= 0 || len(c.Path) <= limit {
		return
	}
	kept := make([]Point, limit)
	copy(kept, c.Path[len(c.Path)-limit:])
	c.Path = kept
}

func (c *Container) clonePath() []Point {
	if c.Path == nil {
		return nil
	}
	out := make([]Point, len(c.Path))
	copy(out, c.Path)
	return out
}

// rotation tracks angular kinematics for objects and blobs.
type rotation struct {
	Angle         float32 `json:"angle"`
	RotationSpeed float32 `json:"rotation_speed"`
	RotationAccel float32 `json:"rotation_accel"`
}

// AngleDegrees returns Angle converted from radians.
func (r *rotation) AngleDegrees() float32 {
	return r.Angle * 180 / math.Pi
}

func (r *rotation) set(angle, speed, accel float32) {
	r.Angle = angle
	r.RotationSpeed = speed
	r.RotationAccel = accel
}

// derive computes rotations per second from the angle change over dt seconds.
// Turns of more than three quarters are read as wrapping the other way.
func (r *rotation) derive(angle float32, dt float64) {
	if dt <= 0 {
		r.Angle = angle
		return
	}
	da := float64(angle-r.Angle) / (2 * math.Pi)
	if da > 0.75 {
		da -= 1
	} else if da < -0.75 {
		da += 1
	}
	lastSpeed := r.RotationSpeed
	r.Angle = angle
	r.RotationSpeed = float32(da / dt)
	r.RotationAccel = float32(float64(r.RotationSpeed-lastSpeed) / dt)
}

// settle marks a stopped container as rotating when angular acceleration is
// present.
func (r *rotation) settle(c *Container) {
	if r.RotationAccel != 0 && c.State == StateStopped {
		c.State = StateRotating
	}
}
