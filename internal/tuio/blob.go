package tuio

import "time"

// Blob is an untagged region with an oriented bounding ellipse. ID is the
// dense blob index.
type Blob struct {
	Container
	rotation
	ID     int     `json:"blob_id"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
	Area   float32 `json:"area"`
}

func (b *Blob) base() *Container  { return &b.Container }
func (b *Blob) denseID() int      { return b.ID }
func (b *Blob) setDenseID(id int) { b.ID = id }

func (b *Blob) differs(s *Blob) bool {
	return motionDiffers(&b.Container, &s.Container) ||
		rotationDiffers(&b.rotation, &s.rotation) ||
		b.Width != s.Width ||
		b.Height != s.Height ||
		b.Area != s.Area
}

func (b *Blob) begin(t time.Duration, s *Blob) {
	b.Container.begin(t, s.SessionID, s.X, s.Y)
	b.Angle = s.Angle
	b.Width, b.Height, b.Area = s.Width, s.Height, s.Area
}

func (b *Blob) merge(t time.Duration, s *Blob) {
	if derives(&b.Container, &s.Container) {
		dt := (t - b.lastTime()).Seconds()
		b.deriveTo(t, s.X, s.Y)
		b.rotation.derive(s.Angle, dt)
	} else {
		b.moveTo(t, s.X, s.Y, s.XSpeed, s.YSpeed, s.MotionAccel)
		b.rotation.set(s.Angle, s.RotationSpeed, s.RotationAccel)
	}
	b.Width, b.Height, b.Area = s.Width, s.Height, s.Area
	b.rotation.settle(&b.Container)
}

func (b *Blob) clone() Blob {
	out := *b
	out.Path = b.clonePath()
	return out
}
