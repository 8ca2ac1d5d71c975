package tuio

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/danmuck/tuioctl/internal/osc"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// newTestClient returns an unbound client fed through ProcessPacket.
func newTestClient(t *testing.T, opts Options) (*Client, *fakeClock, *recorder) {
	t.Helper()
	clk := newFakeClock()
	opts.Clock = clk.Now
	c := NewClientWithListener(opts, nil)
	rec := &recorder{}
	c.AddListener(rec)
	return c, clk, rec
}

func encodeFrame(t *testing.T, kind Profile, alive []int32, fseq int32, sets ...Command) []byte {
	t.Helper()
	buf, err := osc.Marshal(EncodeFrame(kind, alive, sets, fseq))
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	return buf
}

func feed(t *testing.T, c *Client, buf []byte) {
	t.Helper()
	if err := c.ProcessPacket(buf, nil); err != nil {
		t.Fatalf("process packet: %v", err)
	}
}

// recorder flattens notifications into comparable strings.
type recorder struct {
	mu         sync.Mutex
	events     []string
	frameTimes []time.Duration
}

func (r *recorder) add(format string, args ...any) {
	r.mu.Lock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
	r.mu.Unlock()
}

func (r *recorder) AddCursor(c Cursor)    { r.add("add cursor %d", c.SessionID) }
func (r *recorder) UpdateCursor(c Cursor) { r.add("update cursor %d", c.SessionID) }
func (r *recorder) RemoveCursor(c Cursor) { r.add("remove cursor %d", c.SessionID) }
func (r *recorder) AddObject(o Object)    { r.add("add object %d", o.SessionID) }
func (r *recorder) UpdateObject(o Object) { r.add("update object %d", o.SessionID) }
func (r *recorder) RemoveObject(o Object) { r.add("remove object %d", o.SessionID) }
func (r *recorder) AddBlob(b Blob)        { r.add("add blob %d", b.SessionID) }
func (r *recorder) UpdateBlob(b Blob)     { r.add("update blob %d", b.SessionID) }
func (r *recorder) RemoveBlob(b Blob)     { r.add("remove blob %d", b.SessionID) }

func (r *recorder) Refresh(frameTime time.Duration) {
	r.mu.Lock()
	r.events = append(r.events, "refresh")
	r.frameTimes = append(r.frameTimes, frameTime)
	r.mu.Unlock()
}

// take returns and clears the recorded events.
func (r *recorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}

func expectEvents(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected events %q, got %q", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: expected %q, got %q (all %q)", i, want[i], got[i], got)
		}
	}
}

func cursorIDs(cs []Cursor) map[int64]int {
	out := make(map[int64]int, len(cs))
	for _, c := range cs {
		out[c.SessionID] = c.ID
	}
	return out
}
