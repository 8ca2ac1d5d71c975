package tuio

import "time"

// Object is a tagged physical token. Objects have no dense index; SymbolID
// identifies the fiducial class.
type Object struct {
	Container
	rotation
	SymbolID int32 `json:"symbol_id"`
}

func (o *Object) base() *Container { return &o.Container }
func (o *Object) denseID() int     { return -1 }
func (o *Object) setDenseID(int)   {}

func (o *Object) differs(s *Object) bool {
	return motionDiffers(&o.Container, &s.Container) || rotationDiffers(&o.rotation, &s.rotation)
}

func (o *Object) begin(t time.Duration, s *Object) {
	o.Container.begin(t, s.SessionID, s.X, s.Y)
	o.SymbolID = s.SymbolID
	o.Angle = s.Angle
}

func (o *Object) merge(t time.Duration, s *Object) {
	if derives(&o.Container, &s.Container) {
		dt := (t - o.lastTime()).Seconds()
		o.deriveTo(t, s.X, s.Y)
		o.rotation.derive(s.Angle, dt)
	} else {
		o.moveTo(t, s.X, s.Y, s.XSpeed, s.YSpeed, s.MotionAccel)
		o.rotation.set(s.Angle, s.RotationSpeed, s.RotationAccel)
	}
	o.rotation.settle(&o.Container)
}

func (o *Object) clone() Object {
	out := *o
	out.Path = o.clonePath()
	return out
}
