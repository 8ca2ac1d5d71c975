package main

import (
	"time"

	"github.com/danmuck/tuioctl/internal/tuio"
	"github.com/rs/zerolog/log"
)

// eventLogger traces every notification at debug level.
type eventLogger struct{}

func (eventLogger) AddCursor(c tuio.Cursor) {
	log.Debug().Int64("session", c.SessionID).Int("cursor", c.ID).Float32("x", c.X).Float32("y", c.Y).Msg("cursor added")
}

func (eventLogger) UpdateCursor(c tuio.Cursor) {
	log.Debug().Int64("session", c.SessionID).Float32("x", c.X).Float32("y", c.Y).Str("state", c.State.String()).Msg("cursor updated")
}

func (eventLogger) RemoveCursor(c tuio.Cursor) {
	log.Debug().Int64("session", c.SessionID).Int("cursor", c.ID).Msg("cursor removed")
}

func (eventLogger) AddObject(o tuio.Object) {
	log.Debug().Int64("session", o.SessionID).Int32("symbol", o.SymbolID).Float32("angle", o.AngleDegrees()).Msg("object added")
}

func (eventLogger) UpdateObject(o tuio.Object) {
	log.Debug().Int64("session", o.SessionID).Float32("x", o.X).Float32("y", o.Y).Float32("angle", o.AngleDegrees()).Msg("object updated")
}

func (eventLogger) RemoveObject(o tuio.Object) {
	log.Debug().Int64("session", o.SessionID).Int32("symbol", o.SymbolID).Msg("object removed")
}

func (eventLogger) AddBlob(b tuio.Blob) {
	log.Debug().Int64("session", b.SessionID).Int("blob", b.ID).Float32("area", b.Area).Msg("blob added")
}

func (eventLogger) UpdateBlob(b tuio.Blob) {
	log.Debug().Int64("session", b.SessionID).Float32("x", b.X).Float32("y", b.Y).Msg("blob updated")
}

func (eventLogger) RemoveBlob(b tuio.Blob) {
	log.Debug().Int64("session", b.SessionID).Int("blob", b.ID).Msg("blob removed")
}

func (eventLogger) Refresh(time.Duration) {}
