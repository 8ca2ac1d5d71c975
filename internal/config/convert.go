package config

import (
	"net"
	"strconv"
	"time"

	"github.com/danmuck/tuioctl/internal/transport"
	"github.com/danmuck/tuioctl/internal/tuio"
)

// ClientOptions maps the service config onto tuio client options.
func (c Config) ClientOptions() tuio.Options {
	return tuio.Options{
		Port:               c.Port,
		ProfileFiltering:   c.ProfileFiltering,
		LateFrameTolerance: c.LateFrameTolerance,
		UnsequencedRefresh: c.UnsequencedRefresh(),
		PathHistory:        c.PathHistory,
	}.WithDefaults()
}

// ListenAddr is the UDP address the client binds.
func (c Config) ListenAddr() string {
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

// BindRetry maps the bind retry keys onto transport backoff.
func (c Config) BindRetry() transport.RetryConfig {
	cfg := transport.DefaultRetryConfig()
	cfg.Attempts = c.BindAttempts
	cfg.InitialDelay = time.Duration(c.BindRetryMS) * time.Millisecond
	cfg.Jitter = c.BindAttempts > 1
	return cfg
}
