package tuio

import "time"

const (
	// DefaultLateFrameTolerance is how far behind the current frame a
	// sequence number may fall before it is read as a sender restart.
	DefaultLateFrameTolerance = 100
	// DefaultUnsequencedRefresh is how often unsequenced frames (fseq <= 0)
	// advance the frame timestamp.
	DefaultUnsequencedRefresh = 100 * time.Millisecond
)

// frameClock gates frame commits by sequence number for one profile.
type frameClock struct {
	current   int32
	stamp     time.Duration
	tolerance int32
	refresh   time.Duration
}

func newFrameClock(tolerance int32, refresh time.Duration) frameClock {
	if tolerance <= 0 {
		tolerance = DefaultLateFrameTolerance
	}
	if refresh <= 0 {
		refresh = DefaultUnsequencedRefresh
	}
	return frameClock{current: -1, tolerance: tolerance, refresh: refresh}
}

// admit decides whether frame fseq received at now commits. Sequenced frames
// commit when they do not go backwards, or when they fall so far behind that
// the sender must have restarted. A repeated sequence number commits under
// the previous timestamp. Unsequenced frames always commit and only
// move the timestamp once the refresh interval has passed.
func (c *frameClock) admit(fseq int32, now time.Duration) bool {
	if fseq <= 0 {
		if now-c.stamp > c.refresh {
			c.stamp = now
		}
		return true
	}
	if fseq >= c.current || int64(c.current)-int64(fseq) > int64(c.tolerance) {
		if fseq != c.current {
			c.stamp = now
		}
		c.current = fseq
		return true
	}
	return false
}

func (c *frameClock) reset() {
	c.current = -1
	c.stamp = 0
}
