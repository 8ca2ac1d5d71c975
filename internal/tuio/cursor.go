package tuio

import "time"

// Cursor is a fingertip or pointer on the tracking surface. ID is the dense
// cursor index, distinct from the sender's session ID.
type Cursor struct {
	Container
	ID int `json:"cursor_id"`
}

func (c *Cursor) base() *Container  { return &c.Container }
func (c *Cursor) denseID() int      { return c.ID }
func (c *Cursor) setDenseID(id int) { c.ID = id }

func (c *Cursor) differs(s *Cursor) bool {
	return motionDiffers(&c.Container, &s.Container)
}

func (c *Cursor) begin(t time.Duration, s *Cursor) {
	c.Container.begin(t, s.SessionID, s.X, s.Y)
}

func (c *Cursor) merge(t time.Duration, s *Cursor) {
	if derives(&c.Container, &s.Container) {
		c.deriveTo(t, s.X, s.Y)
		return
	}
	c.moveTo(t, s.X, s.Y, s.XSpeed, s.YSpeed, s.MotionAccel)
}

func (c *Cursor) clone() Cursor {
	out := *c
	out.Path = c.clonePath()
	return out
}
