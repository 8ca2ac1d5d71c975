// Package stream fans TUIO lifecycle notifications out to websocket
// subscribers as JSON events.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danmuck/tuioctl/internal/observability"
	"github.com/danmuck/tuioctl/internal/tuio"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = pongWait * 9 / 10

	DefaultBuffer = 64
)

// Event is one message on the wire. Exactly one entity field is set for
// add, update and remove events; refresh events carry only Time.
type Event struct {
	Type    string        `json:"type"`
	Profile string        `json:"profile,omitempty"`
	Time    time.Duration `json:"time"`
	Cursor  *tuio.Cursor  `json:"cursor,omitempty"`
	Object  *tuio.Object  `json:"object,omitempty"`
	Blob    *tuio.Blob    `json:"blob,omitempty"`
}

type subscriber struct {
	send    chan []byte
	dropped atomic.Uint64
}

// Hub is a tuio.Listener that broadcasts to every connected subscriber.
// Slow subscribers lose events instead of stalling the receive worker.
type Hub struct {
	mu       sync.Mutex
	clients  map[*subscriber]struct{}
	buffer   int
	upgrader websocket.Upgrader
}

var _ tuio.Listener = (*Hub)(nil)

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		clients: make(map[*subscriber]struct{}),
		buffer:  buffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Origin policy is enforced by the admin CORS middleware.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) register() *subscriber {
	sub := &subscriber{send: make(chan []byte, h.buffer)}
	h.mu.Lock()
	h.clients[sub] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	observability.SetStreamClients(n)
	return sub
}

func (h *Hub) unregister(sub *subscriber) {
	h.mu.Lock()
	if _, ok := h.clients[sub]; ok {
		delete(h.clients, sub)
		close(sub.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	observability.SetStreamClients(n)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	for sub := range h.clients {
		delete(h.clients, sub)
		close(sub.send)
	}
	h.mu.Unlock()
	observability.SetStreamClients(0)
}

func (h *Hub) publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("type", ev.Type).Msg("stream.Hub.publish marshal")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.clients {
		select {
		case sub.send <- data:
		default:
			sub.dropped.Add(1)
			observability.RecordStreamDrop()
		}
	}
}

// ServeHTTP upgrades the request and streams events until the peer leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("stream.Hub upgrade failed")
		return
	}
	sub := h.register()
	log.Info().Str("remote", r.RemoteAddr).Int("clients", h.Clients()).Msg("stream.Hub subscriber connected")

	go h.writePump(conn, sub)
	h.readPump(conn)
	h.unregister(sub)
	log.Info().
		Str("remote", r.RemoteAddr).
		Uint64("dropped", sub.dropped.Load()).
		Msg("stream.Hub subscriber disconnected")
}

// readPump discards inbound frames and returns when the peer goes away.
func (h *Hub) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(conn *websocket.Conn, sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case data, ok := <-sub.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) AddCursor(c tuio.Cursor)    { h.publish(cursorEvent("add", c)) }
func (h *Hub) UpdateCursor(c tuio.Cursor) { h.publish(cursorEvent("update", c)) }
func (h *Hub) RemoveCursor(c tuio.Cursor) { h.publish(cursorEvent("remove", c)) }
func (h *Hub) AddObject(o tuio.Object)    { h.publish(objectEvent("add", o)) }
func (h *Hub) UpdateObject(o tuio.Object) { h.publish(objectEvent("update", o)) }
func (h *Hub) RemoveObject(o tuio.Object) { h.publish(objectEvent("remove", o)) }
func (h *Hub) AddBlob(b tuio.Blob)        { h.publish(blobEvent("add", b)) }
func (h *Hub) UpdateBlob(b tuio.Blob)     { h.publish(blobEvent("update", b)) }
func (h *Hub) RemoveBlob(b tuio.Blob)     { h.publish(blobEvent("remove", b)) }

func (h *Hub) Refresh(frameTime time.Duration) {
	h.publish(Event{Type: "refresh", Time: frameTime})
}

// Paths are stripped from streamed entities to keep events small.

func cursorEvent(typ string, c tuio.Cursor) Event {
	c.Path = nil
	return Event{Type: typ, Profile: tuio.ProfileCursor.String(), Time: c.Updated, Cursor: &c}
}

func objectEvent(typ string, o tuio.Object) Event {
	o.Path = nil
	return Event{Type: typ, Profile: tuio.ProfileObject.String(), Time: o.Updated, Object: &o}
}

func blobEvent(typ string, b tuio.Blob) Event {
	b.Path = nil
	return Event{Type: typ, Profile: tuio.ProfileBlob.String(), Time: b.Updated, Blob: &b}
}
