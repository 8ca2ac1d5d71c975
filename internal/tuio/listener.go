package tuio

import "time"

// Listener receives lifecycle notifications on the receive worker goroutine.
// Arguments are copies; retaining them is safe. Callbacks must not call
// Client.Disconnect or Client.Close.
type Listener interface {
	AddCursor(c Cursor)
	UpdateCursor(c Cursor)
	RemoveCursor(c Cursor)

	AddObject(o Object)
	UpdateObject(o Object)
	RemoveObject(o Object)

	AddBlob(b Blob)
	UpdateBlob(b Blob)
	RemoveBlob(b Blob)

	// Refresh fires once after each accepted frame with the frame timestamp.
	Refresh(frameTime time.Duration)
}

// ListenerID identifies a registration for RemoveListener.
type ListenerID uint64

// ListenerFuncs adapts optional callbacks into a Listener. Nil fields are
// skipped.
type ListenerFuncs struct {
	OnAddCursor    func(Cursor)
	OnUpdateCursor func(Cursor)
	OnRemoveCursor func(Cursor)
	OnAddObject    func(Object)
	OnUpdateObject func(Object)
	OnRemoveObject func(Object)
	OnAddBlob      func(Blob)
	OnUpdateBlob   func(Blob)
	OnRemoveBlob   func(Blob)
	OnRefresh      func(time.Duration)
}

var _ Listener = ListenerFuncs{}

func (f ListenerFuncs) AddCursor(c Cursor) {
	if f.OnAddCursor != nil {
		f.OnAddCursor(c)
	}
}

func (f ListenerFuncs) UpdateCursor(c Cursor) {
	if f.OnUpdateCursor != nil {
		f.OnUpdateCursor(c)
	}
}

func (f ListenerFuncs) RemoveCursor(c Cursor) {
	if f.OnRemoveCursor != nil {
		f.OnRemoveCursor(c)
	}
}

func (f ListenerFuncs) AddObject(o Object) {
	if f.OnAddObject != nil {
		f.OnAddObject(o)
	}
}

func (f ListenerFuncs) UpdateObject(o Object) {
	if f.OnUpdateObject != nil {
		f.OnUpdateObject(o)
	}
}

func (f ListenerFuncs) RemoveObject(o Object) {
	if f.OnRemoveObject != nil {
		f.OnRemoveObject(o)
	}
}

func (f ListenerFuncs) AddBlob(b Blob) {
	if f.OnAddBlob != nil {
		f.OnAddBlob(b)
	}
}

func (f ListenerFuncs) UpdateBlob(b Blob) {
	if f.OnUpdateBlob != nil {
		f.OnUpdateBlob(b)
	}
}

func (f ListenerFuncs) RemoveBlob(b Blob) {
	if f.OnRemoveBlob != nil {
		f.OnRemoveBlob(b)
	}
}

func (f ListenerFuncs) Refresh(frameTime time.Duration) {
	if f.OnRefresh != nil {
		f.OnRefresh(frameTime)
	}
}

type listenerEntry struct {
	id       ListenerID
	listener Listener
}

// dispatchFrame notifies every listener about one accepted frame: removals,
// then additions, then updates, then a single refresh.
func dispatchFrame[E any](listeners []Listener, ev frameEvents[E], onRemove, onAdd, onUpdate func(Listener, E)) {
	for _, e := range ev.removed {
		for _, l := range listeners {
			onRemove(l, e)
		}
	}
	for _, e := range ev.added {
		for _, l := range listeners {
			onAdd(l, e)
		}
	}
	for _, e := range ev.updated {
		for _, l := range listeners {
			onUpdate(l, e)
		}
	}
	for _, l := range listeners {
		l.Refresh(ev.time)
	}
}
