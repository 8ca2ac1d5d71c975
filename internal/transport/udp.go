// Package transport owns the UDP socket TUIO datagrams arrive on.
package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// MaxDatagram is the receive buffer size. Larger datagrams are truncated by
// the kernel and then fail to decode.
const MaxDatagram = 64 * 1024

var ErrServing = errors.New("transport: listener already serving")

// Handler receives one datagram. buf is reused after the handler returns.
type Handler func(buf []byte, from net.Addr)

// Listener is a bound UDP socket that can be served repeatedly, one Serve at
// a time, until Close.
type Listener struct {
	conn *net.UDPConn

	mu      sync.Mutex
	serving bool
}

// Listen binds UDP port on all interfaces.
func Listen(port int) (*Listener, error) {
	return ListenAddr(net.JoinHostPort("", strconv.Itoa(port)))
}

// ListenAddr binds a UDP host:port address.
func ListenAddr(addr string) (*Listener, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: resolve %q: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("transport: bind %q: %w", addr, err)
	}
	return &Listener{conn: conn}, nil
}

// Addr returns the bound local address.
func (l *Listener) Addr() net.Addr {
	return l.conn.LocalAddr()
}

// Port returns the bound local port.
func (l *Listener) Port() int {
	if udp, ok := l.conn.LocalAddr().(*net.UDPAddr); ok {
		return udp.Port
	}
	return 0
}

// Serve reads datagrams into handle until ctx is cancelled or the socket is
// closed. Cancellation unblocks the pending read with an expired deadline so
// the socket stays usable for a later Serve.
func (l *Listener) Serve(ctx context.Context, handle Handler) error {
	l.mu.Lock()
	if l.serving {
		l.mu.Unlock()
		return ErrServing
	}
	l.serving = true
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.serving = false
		l.mu.Unlock()
	}()

	if err := l.conn.SetReadDeadline(time.Time{}); err != nil {
		if errors.Is(err, net.ErrClosed) {
			return nil
		}
		return err
	}
	stop := context.AfterFunc(ctx, func() {
		_ = l.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	buf := make([]byte, MaxDatagram)
	for {
		n, from, err := l.conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				_ = l.conn.SetReadDeadline(time.Time{})
				continue
			}
			log.Warn().Err(err).Str("addr", l.Addr().String()).Msg("transport.Listener.Serve read")
			continue
		}
		if n == 0 {
			continue
		}
		handle(buf[:n], from)
	}
}

// Close releases the socket. Serve returns once the pending read fails.
func (l *Listener) Close() error {
	return l.conn.Close()
}

// Send writes one datagram to addr from a throwaway socket.
func Send(ctx context.Context, addr string, payload []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", addr)
	if err != nil {
		return fmt.Errorf("transport: dial %q: %w", addr, err)
	}
	defer conn.Close()
	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("transport: send %q: %w", addr, err)
	}
	return nil
}
