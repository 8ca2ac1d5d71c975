package tuio

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danmuck/tuioctl/internal/observability"
	"github.com/danmuck/tuioctl/internal/osc"
	"github.com/danmuck/tuioctl/internal/transport"
	"github.com/rs/zerolog/log"
)

// Client receives TUIO frames on a UDP port and keeps the committed cursor,
// object and blob sets current.
type Client struct {
	opts    Options
	conn    *transport.Listener
	session time.Time

	cursors *reconciler[Cursor, *Cursor]
	objects *reconciler[Object, *Object]
	blobs   *reconciler[Blob, *Blob]

	// ingest serializes packet processing; staging is single producer.
	ingest sync.Mutex

	listenMu  sync.RWMutex
	listeners []listenerEntry
	nextID    atomic.Uint64

	filtering atomic.Bool
	blobSeen  atomic.Bool
	connected atomic.Bool

	lifeMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewClient binds the configured port. A bind failure is logged and leaves
// the client inert: Connect does nothing and IsConnected stays false.
func NewClient(opts Options) *Client {
	opts = opts.WithDefaults()
	addr := opts.Addr
	if addr == "" {
		addr = net.JoinHostPort("", strconv.Itoa(opts.Port))
	}
	ln, err := transport.ListenAddr(addr)
	if err != nil {
		log.Error().Err(err).Str("addr", addr).Msg("tuio.NewClient bind failed; client inert")
		ln = nil
	}
	return newClient(opts, ln)
}

// NewClientWithListener wraps an already bound listener. A nil listener
// yields an inert client.
func NewClientWithListener(opts Options, ln *transport.Listener) *Client {
	return newClient(opts.WithDefaults(), ln)
}

func newClient(opts Options, ln *transport.Listener) *Client {
	cfg := opts.frameConfig()
	c := &Client{
		opts:    opts,
		conn:    ln,
		session: opts.Clock(),
		cursors: newReconciler[Cursor, *Cursor](ProfileCursor, true, cfg),
		objects: newReconciler[Object, *Object](ProfileObject, false, cfg),
		blobs:   newReconciler[Blob, *Blob](ProfileBlob, true, cfg),
	}
	c.filtering.Store(opts.ProfileFiltering)
	return c
}

// Addr returns the bound address, or nil for an inert client.
func (c *Client) Addr() net.Addr {
	if c.conn == nil {
		return nil
	}
	return c.conn.Addr()
}

// Bound reports whether the socket was bound at construction.
func (c *Client) Bound() bool {
	return c.conn != nil
}

// Connect starts the background receive worker. It is a no-op for an inert
// or already connected client.
func (c *Client) Connect() {
	ctx, done, err := c.start(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("tuio.Client.Connect")
		return
	}
	go c.serve(ctx, done)
}

// Run receives on the calling goroutine until ctx is cancelled or
// Disconnect is called.
func (c *Client) Run(ctx context.Context) error {
	ctx, done, err := c.start(ctx)
	if err != nil {
		return err
	}
	c.serve(ctx, done)
	c.Disconnect()
	return nil
}

func (c *Client) start(parent context.Context) (context.Context, chan struct{}, error) {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()
	if c.conn == nil {
		return nil, nil, ErrNotBound
	}
	if c.connected.Load() {
		return nil, nil, ErrAlreadyConnected
	}
	c.ingest.Lock()
	c.resetSession()
	c.ingest.Unlock()
	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	c.done = make(chan struct{})
	c.connected.Store(true)
	log.Info().Str("addr", c.conn.Addr().String()).Msg("tuio.Client connected")
	return ctx, c.done, nil
}

func (c *Client) serve(ctx context.Context, done chan struct{}) {
	defer close(done)
	err := c.conn.Serve(ctx, func(buf []byte, from net.Addr) {
		if err := c.ProcessPacket(buf, from); err != nil {
			log.Warn().Err(err).Stringer("from", from).Msg("tuio.Client dropped datagram")
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("tuio.Client.serve")
	}
}

// Disconnect stops the worker, waits for it to exit and clears every
// registry. The socket stays bound so Connect may be called again.
func (c *Client) Disconnect() {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()
	if !c.connected.Load() {
		return
	}
	c.cancel()
	<-c.done

	c.ingest.Lock()
	c.resetSession()
	c.ingest.Unlock()
	c.connected.Store(false)
	log.Info().Msg("tuio.Client disconnected")
}

// Close disconnects and releases the socket.
func (c *Client) Close() error {
	c.Disconnect()
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// IsConnected reports whether the receive worker is running.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

func (c *Client) resetSession() {
	c.cursors.reset()
	c.objects.reset()
	c.blobs.reset()
	c.blobSeen.Store(false)
	c.session = c.opts.Clock()
	for _, p := range Profiles {
		observability.SetLiveEntities(p.String(), 0)
	}
}

// AddListener registers l for every subsequent notification.
func (c *Client) AddListener(l Listener) ListenerID {
	id := ListenerID(c.nextID.Add(1))
	c.listenMu.Lock()
	c.listeners = append(c.listeners, listenerEntry{id: id, listener: l})
	c.listenMu.Unlock()
	return id
}

// RemoveListener unregisters id and reports whether it was registered.
func (c *Client) RemoveListener(id ListenerID) bool {
	c.listenMu.Lock()
	defer c.listenMu.Unlock()
	for i, e := range c.listeners {
		if e.id == id {
			c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAllListeners unregisters every listener.
func (c *Client) RemoveAllListeners() {
	c.listenMu.Lock()
	c.listeners = nil
	c.listenMu.Unlock()
}

func (c *Client) listenerSnapshot() []Listener {
	c.listenMu.RLock()
	defer c.listenMu.RUnlock()
	out := make([]Listener, len(c.listeners))
	for i, e := range c.listeners {
		out[i] = e.listener
	}
	return out
}

// SetProfileFiltering toggles cursor suppression for blob-capable senders.
func (c *Client) SetProfileFiltering(enabled bool) {
	c.filtering.Store(enabled)
}

// ProfileFiltering reports whether profile filtering is enabled.
func (c *Client) ProfileFiltering() bool {
	return c.filtering.Load()
}

// CursorsFiltered reports whether cursor messages are currently dropped.
func (c *Client) CursorsFiltered() bool {
	return c.filtering.Load() && c.blobSeen.Load()
}

// Cursors returns a consistent copy of the committed cursors.
func (c *Client) Cursors() []Cursor { return c.cursors.committed.snapshot() }

// Objects returns a consistent copy of the committed objects.
func (c *Client) Objects() []Object { return c.objects.committed.snapshot() }

// Blobs returns a consistent copy of the committed blobs.
func (c *Client) Blobs() []Blob { return c.blobs.committed.snapshot() }

// Cursor returns a copy of the committed cursor with sessionID.
func (c *Client) Cursor(sessionID int64) (Cursor, bool) { return c.cursors.committed.lookup(sessionID) }

// Object returns a copy of the committed object with sessionID.
func (c *Client) Object(sessionID int64) (Object, bool) { return c.objects.committed.lookup(sessionID) }

// Blob returns a copy of the committed blob with sessionID.
func (c *Client) Blob(sessionID int64) (Blob, bool) { return c.blobs.committed.lookup(sessionID) }

// ProcessPacket decodes one datagram and applies it. Decoding finishes
// before anything is applied, so a malformed datagram changes nothing.
func (c *Client) ProcessPacket(buf []byte, from net.Addr) error {
	observability.RecordDatagram(len(buf))
	pkt, err := osc.Decode(buf)
	if err != nil {
		observability.RecordDecodeFailure("osc")
		return fmt.Errorf("tuio: decode datagram: %w", err)
	}
	cmds, err := ParsePacket(pkt)
	if err != nil {
		observability.RecordDecodeFailure("tuio")
		return err
	}

	c.ingest.Lock()
	defer c.ingest.Unlock()
	now := c.opts.Clock().Sub(c.session)
	for _, cmd := range cmds {
		c.apply(cmd, now)
	}
	return nil
}

func (c *Client) apply(cmd Command, now time.Duration) {
	switch cmd.Profile() {
	case ProfileCursor:
		if c.CursorsFiltered() {
			observability.RecordFilteredMessage()
			return
		}
		applyCommand(c, c.cursors, cmd, now, Listener.RemoveCursor, Listener.AddCursor, Listener.UpdateCursor)
	case ProfileObject:
		applyCommand(c, c.objects, cmd, now, Listener.RemoveObject, Listener.AddObject, Listener.UpdateObject)
	case ProfileBlob:
		c.blobSeen.Store(true)
		applyCommand(c, c.blobs, cmd, now, Listener.RemoveBlob, Listener.AddBlob, Listener.UpdateBlob)
	}
}

func applyCommand[E any, P entity[E]](c *Client, r *reconciler[E, P], cmd Command, now time.Duration, onRemove, onAdd, onUpdate func(Listener, E)) {
	switch v := cmd.(type) {
	case interface{ sample() E }:
		r.stage(v.sample())
	case Alive:
		r.setAlive(v.SessionIDs)
	case Fseq:
		ev, accepted := r.commit(v.Frame, now)
		kind := r.kind.String()
		observability.RecordFrame(kind, accepted)
		if !accepted {
			log.Debug().Str("profile", kind).Int32("fseq", v.Frame).Msg("tuio.Client stale frame discarded")
			return
		}
		observability.RecordEntityEvents(kind, len(ev.removed), len(ev.added), len(ev.updated))
		observability.SetLiveEntities(kind, r.committed.size())
		dispatchFrame(c.listenerSnapshot(), ev, onRemove, onAdd, onUpdate)
	}
}
