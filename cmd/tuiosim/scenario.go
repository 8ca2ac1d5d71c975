package main

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/tuioctl/internal/osc"
	"github.com/danmuck/tuioctl/internal/tuio"
)

var errEmptyScenario = errors.New("scenario has no frames")

type fileConfig struct {
	Target     string      `toml:"target"`
	Interval   string      `toml:"interval"`
	IntervalMS int64       `toml:"interval_ms"`
	Loops      int         `toml:"loops"`
	Frames     []fileFrame `toml:"frames"`
}

type fileFrame struct {
	Cursors []fileCursor `toml:"cursors"`
	Objects []fileObject `toml:"objects"`
	Blobs   []fileBlob   `toml:"blobs"`
}

type fileCursor struct {
	Session int32   `toml:"session"`
	X       float32 `toml:"x"`
	Y       float32 `toml:"y"`
	XSpeed  float32 `toml:"x_speed"`
	YSpeed  float32 `toml:"y_speed"`
	Accel   float32 `toml:"accel"`
}

type fileObject struct {
	Session int32   `toml:"session"`
	Symbol  int32   `toml:"symbol"`
	X       float32 `toml:"x"`
	Y       float32 `toml:"y"`
	Angle   float32 `toml:"angle"`
}

type fileBlob struct {
	Session int32   `toml:"session"`
	X       float32 `toml:"x"`
	Y       float32 `toml:"y"`
	Angle   float32 `toml:"angle"`
	Width   float32 `toml:"width"`
	Height  float32 `toml:"height"`
	Area    float32 `toml:"area"`
}

type scenario struct {
	target   string
	interval time.Duration
	loops    int
	frames   []frame
}

type frame struct {
	cursors []tuio.CursorSet
	objects []tuio.ObjectSet
	blobs   []tuio.BlobSet
}

func defaultScenario() scenario {
	return scenario{
		target:   "127.0.0.1:3333",
		interval: 50 * time.Millisecond,
		loops:    1,
	}
}

func loadScenario(path string) (scenario, error) {
	sc := defaultScenario()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return scenario{}, fmt.Errorf("load scenario: %w", err)
	}

	if meta.IsDefined("target") {
		if target := strings.TrimSpace(raw.Target); target != "" {
			sc.target = target
		}
	}

	if meta.IsDefined("interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Interval))
		if err != nil {
			return scenario{}, fmt.Errorf("parse interval: %w", err)
		}
		sc.interval = d
	}

	if meta.IsDefined("interval_ms") {
		sc.interval = time.Duration(raw.IntervalMS) * time.Millisecond
	}

	if meta.IsDefined("loops") {
		sc.loops = raw.Loops
	}

	for _, f := range raw.Frames {
		sc.frames = append(sc.frames, f.frame())
	}
	if len(sc.frames) == 0 {
		return scenario{}, errEmptyScenario
	}
	if sc.loops < 1 {
		return scenario{}, fmt.Errorf("loops must be at least 1, got %d", sc.loops)
	}
	return sc, nil
}

func (f fileFrame) frame() frame {
	var out frame
	for _, c := range f.Cursors {
		out.cursors = append(out.cursors, tuio.CursorSet{
			SessionID:   c.Session,
			X:           c.X,
			Y:           c.Y,
			XSpeed:      c.XSpeed,
			YSpeed:      c.YSpeed,
			MotionAccel: c.Accel,
		})
	}
	for _, o := range f.Objects {
		out.objects = append(out.objects, tuio.ObjectSet{
			SessionID: o.Session,
			SymbolID:  o.Symbol,
			X:         o.X,
			Y:         o.Y,
			Angle:     o.Angle,
		})
	}
	for _, b := range f.Blobs {
		out.blobs = append(out.blobs, tuio.BlobSet{
			SessionID: b.Session,
			X:         b.X,
			Y:         b.Y,
			Angle:     b.Angle,
			Width:     b.Width,
			Height:    b.Height,
			Area:      b.Area,
		})
	}
	return out
}

// profiles lists every profile the scenario touches so frames that drop a
// profile's last entity still send an empty alive list.
func (s scenario) profiles() []tuio.Profile {
	var cur, obj, blb bool
	for _, f := range s.frames {
		cur = cur || len(f.cursors) > 0
		obj = obj || len(f.objects) > 0
		blb = blb || len(f.blobs) > 0
	}
	var out []tuio.Profile
	if cur {
		out = append(out, tuio.ProfileCursor)
	}
	if obj {
		out = append(out, tuio.ProfileObject)
	}
	if blb {
		out = append(out, tuio.ProfileBlob)
	}
	return out
}

// packet encodes f as one datagram holding a frame bundle per profile.
func (s scenario) packet(f frame, fseq int32) ([]byte, error) {
	outer := &osc.Bundle{Time: osc.Immediately}
	for _, p := range s.profiles() {
		var alive []int32
		var sets []tuio.Command
		switch p {
		case tuio.ProfileCursor:
			for _, c := range f.cursors {
				alive = append(alive, c.SessionID)
				sets = append(sets, c)
			}
		case tuio.ProfileObject:
			for _, o := range f.objects {
				alive = append(alive, o.SessionID)
				sets = append(sets, o)
			}
		case tuio.ProfileBlob:
			for _, b := range f.blobs {
				alive = append(alive, b.SessionID)
				sets = append(sets, b)
			}
		}
		outer.Elements = append(outer.Elements, tuio.EncodeFrame(p, alive, sets, fseq))
	}
	return osc.Marshal(outer)
}

// demoScenario orbits n cursors around the surface centre.
func demoScenario(n, steps int) scenario {
	sc := defaultScenario()
	sc.loops = 1
	for step := 0; step < steps; step++ {
		var f frame
		for i := 0; i < n; i++ {
			phase := 2*math.Pi*float64(step)/float64(steps) + 2*math.Pi*float64(i)/float64(n)
			f.cursors = append(f.cursors, tuio.CursorSet{
				SessionID: int32(i + 1),
				X:         float32(0.5 + 0.3*math.Cos(phase)),
				Y:         float32(0.5 + 0.3*math.Sin(phase)),
			})
		}
		sc.frames = append(sc.frames, f)
	}
	// Trailing empty frame so the receiver sees every cursor removed.
	sc.frames = append(sc.frames, frame{})
	return sc
}
