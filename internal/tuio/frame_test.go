package tuio

import (
	"testing"
	"time"

	"github.com/danmuck/tuioctl/internal/testutil/testlog"
)

func TestFrameClockSequenced(t *testing.T) {
	testlog.Start(t)

	c := newFrameClock(100, 100*time.Millisecond)
	steps := []struct {
		fseq int32
		want bool
	}{
		{10, true},
		{11, true},
		{9, false},
		{11, true},
		{12, true},
		{500, true},
		{399, true},
		{398, false},
		{299, false},
		{298, true},
	}
	for i, s := range steps {
		if got := c.admit(s.fseq, time.Duration(i)*time.Second); got != s.want {
			t.Fatalf("step %d fseq=%d: expected %v, got %v", i, s.fseq, s.want, got)
		}
	}
}

func TestFrameClockTimestamps(t *testing.T) {
	testlog.Start(t)

	c := newFrameClock(100, 100*time.Millisecond)
	c.admit(10, time.Second)
	if c.stamp != time.Second {
		t.Fatalf("expected stamp 1s, got %v", c.stamp)
	}
	c.admit(10, 2*time.Second)
	if c.stamp != time.Second {
		t.Fatalf("repeated frame moved stamp to %v", c.stamp)
	}
	c.admit(9, 3*time.Second)
	if c.stamp != time.Second {
		t.Fatalf("stale frame moved stamp to %v", c.stamp)
	}
}

func TestFrameClockUnsequenced(t *testing.T) {
	testlog.Start(t)

	c := newFrameClock(100, 100*time.Millisecond)
	for _, step := range []struct {
		now, stamp time.Duration
	}{
		{50 * time.Millisecond, 0},
		{150 * time.Millisecond, 150 * time.Millisecond},
		{200 * time.Millisecond, 150 * time.Millisecond},
		{260 * time.Millisecond, 260 * time.Millisecond},
	} {
		if !c.admit(0, step.now) {
			t.Fatalf("unsequenced frame rejected at %v", step.now)
		}
		if c.stamp != step.stamp {
			t.Fatalf("at %v expected stamp %v, got %v", step.now, step.stamp, c.stamp)
		}
	}
	if !c.admit(-1, time.Second) {
		t.Fatalf("negative fseq must be accepted")
	}
}
