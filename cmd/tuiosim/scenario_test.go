package main

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danmuck/tuioctl/internal/testutil/testlog"
	"github.com/danmuck/tuioctl/internal/tuio"
)

const sampleScenario = `
target = "127.0.0.1:4444"
interval_ms = 0
loops = 2

[[frames]]
  [[frames.cursors]]
  session = 1
  x = 0.25
  y = 0.5

  [[frames.blobs]]
  session = 9
  x = 0.5
  y = 0.5
  width = 0.1
  height = 0.2

[[frames]]
`

func writeScenario(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadScenarioOverlaysDefaults(t *testing.T) {
	testlog.Start(t)

	sc, err := loadScenario(writeScenario(t, sampleScenario))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.target != "127.0.0.1:4444" || sc.interval != 0 || sc.loops != 2 || len(sc.frames) != 2 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}
	if got := sc.profiles(); len(got) != 2 || got[0] != tuio.ProfileCursor || got[1] != tuio.ProfileBlob {
		t.Fatalf("unexpected profiles: %v", got)
	}

	sc, err = loadScenario(writeScenario(t, "[[frames]]\n  [[frames.objects]]\n  session = 2\n  symbol = 4\n"))
	if err != nil {
		t.Fatalf("load minimal: %v", err)
	}
	if sc.target != "127.0.0.1:3333" || sc.interval != 50*time.Millisecond || sc.loops != 1 {
		t.Fatalf("defaults not applied: %+v", sc)
	}
}

func TestBundledSwipeScenario(t *testing.T) {
	testlog.Start(t)

	sc, err := loadScenario(filepath.Join("testdata", "swipe.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.interval != 40*time.Millisecond || sc.loops != 2 || len(sc.frames) != 4 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}
	if last := sc.frames[3]; len(last.cursors)+len(last.objects)+len(last.blobs) != 0 {
		t.Fatalf("expected empty closing frame, got %+v", last)
	}
}

func TestLoadScenarioRejectsEmpty(t *testing.T) {
	testlog.Start(t)

	if _, err := loadScenario(writeScenario(t, "target = \"x:1\"\n")); !errors.Is(err, errEmptyScenario) {
		t.Fatalf("expected errEmptyScenario, got %v", err)
	}
	if _, err := loadScenario(writeScenario(t, "interval = \"soon\"\n[[frames]]\n")); err == nil {
		t.Fatalf("expected interval parse error")
	}
}

func TestPlayDrivesClient(t *testing.T) {
	testlog.Start(t)

	sc, err := loadScenario(writeScenario(t, sampleScenario))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	client := tuio.NewClientWithListener(tuio.Options{}, nil)
	var adds, removes int
	client.AddListener(tuio.ListenerFuncs{
		OnAddCursor:    func(tuio.Cursor) { adds++ },
		OnRemoveCursor: func(tuio.Cursor) { removes++ },
		OnAddBlob:      func(tuio.Blob) { adds++ },
		OnRemoveBlob:   func(tuio.Blob) { removes++ },
	})

	send := func(_ context.Context, addr string, payload []byte) error {
		if addr != "127.0.0.1:4444" {
			t.Fatalf("unexpected target %s", addr)
		}
		return client.ProcessPacket(payload, &net.UDPAddr{})
	}
	if err := play(context.Background(), sc, send); err != nil {
		t.Fatalf("play: %v", err)
	}
	if adds != 4 || removes != 4 {
		t.Fatalf("expected 4 adds and 4 removes over two loops, got %d/%d", adds, removes)
	}
	if len(client.Cursors()) != 0 || len(client.Blobs()) != 0 {
		t.Fatalf("expected empty registry after final frame")
	}
}

func TestDemoScenarioEndsEmpty(t *testing.T) {
	testlog.Start(t)

	sc := demoScenario(2, 10)
	if len(sc.frames) != 11 || len(sc.frames[10].cursors) != 0 {
		t.Fatalf("unexpected demo shape: %d frames", len(sc.frames))
	}
	buf, err := sc.packet(sc.frames[0], 1)
	if err != nil || len(buf) == 0 {
		t.Fatalf("packet: %v", err)
	}
}
