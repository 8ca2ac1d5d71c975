package tuio

import "time"

// entity is the contract the generic profile machinery needs from Cursor,
// Object and Blob. Samples are staged values built from set messages.
type entity[E any] interface {
	*E
	base() *Container
	denseID() int
	setDenseID(id int)
	differs(sample *E) bool
	begin(t time.Duration, sample *E)
	merge(t time.Duration, sample *E)
	clone() E
}

// derives reports whether an update must compute kinematics itself: the
// sender moved the entity along an axis without reporting speed for it.
func derives(current, sample *Container) bool {
	return (sample.X != current.X && sample.XSpeed == 0) ||
		(sample.Y != current.Y && sample.YSpeed == 0)
}

func motionDiffers(current, sample *Container) bool {
	return current.X != sample.X ||
		current.Y != sample.Y ||
		current.XSpeed != sample.XSpeed ||
		current.YSpeed != sample.YSpeed ||
		current.MotionAccel != sample.MotionAccel
}

func rotationDiffers(current, sample *rotation) bool {
	return current.Angle != sample.Angle ||
		current.RotationSpeed != sample.RotationSpeed ||
		current.RotationAccel != sample.RotationAccel
}
