package tuio

import (
	"testing"

	"github.com/danmuck/tuioctl/internal/testutil/testlog"
)

func TestIDPoolFreshIDsAreDense(t *testing.T) {
	testlog.Start(t)

	p := newIDPool()
	ids := p.allocate(0, []Point{{}, {}, {}})
	for i, id := range ids {
		if id != i {
			t.Fatalf("expected ids 0..2, got %v", ids)
		}
	}
	if p.max != 2 {
		t.Fatalf("expected max 2, got %d", p.max)
	}
}

func TestIDPoolReleaseMaxShrinksAndPrunes(t *testing.T) {
	testlog.Start(t)

	p := newIDPool()
	p.allocate(0, []Point{{}, {}, {}, {}})
	p.release(2, 0.5, 0.5, []int{0, 1, 3})
	if len(p.free) != 1 || p.max != 3 {
		t.Fatalf("expected id 2 pooled under max 3, got free=%v max=%d", p.free, p.max)
	}
	p.release(3, 0.9, 0.9, []int{0, 1})
	if p.max != 1 || len(p.free) != 0 {
		t.Fatalf("expected max 1 with empty pool, got free=%v max=%d", p.free, p.max)
	}
	p.release(1, 0, 0, []int{0})
	p.release(0, 0, 0, nil)
	if p.max != -1 || len(p.free) != 0 {
		t.Fatalf("expected empty pool, got free=%v max=%d", p.free, p.max)
	}
}

func TestIDPoolGreedyNearestMatch(t *testing.T) {
	testlog.Start(t)

	p := newIDPool()
	p.allocate(0, []Point{{}, {}, {}, {}})
	p.release(1, 0.2, 0.1, []int{0, 2, 3})
	p.release(2, 0.3, 0.1, []int{0, 3})

	ids := p.allocate(2, []Point{{X: 0.29, Y: 0.1}, {X: 0.22, Y: 0.1}, {X: 0.5, Y: 0.5}})
	if ids[0] != 2 || ids[1] != 1 || ids[2] != 4 {
		t.Fatalf("unexpected assignment: %v", ids)
	}
	if p.max != 4 || len(p.free) != 0 {
		t.Fatalf("unexpected pool state: free=%v max=%d", p.free, p.max)
	}
}
