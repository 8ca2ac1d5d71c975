package tuio

import "time"

// DefaultPort is the registered TUIO UDP port.
const DefaultPort = 3333

// DefaultPathHistory caps the path points kept per entity.
const DefaultPathHistory = 128

// Options configures a Client.
type Options struct {
	// Port is bound on all interfaces unless Addr is set.
	Port int
	// Addr overrides Port with an explicit host:port.
	Addr string
	// ProfileFiltering drops cursor messages once any blob message has
	// been seen in the session.
	ProfileFiltering   bool
	LateFrameTolerance int32
	UnsequencedRefresh time.Duration
	// PathHistory caps stored path points. Zero selects DefaultPathHistory;
	// a negative value keeps every point.
	PathHistory int
	// Clock is injectable for tests.
	Clock func() time.Time
}

// DefaultOptions returns the conventional TUIO client defaults.
func DefaultOptions() Options {
	return Options{
		Port:               DefaultPort,
		LateFrameTolerance: DefaultLateFrameTolerance,
		UnsequencedRefresh: DefaultUnsequencedRefresh,
		PathHistory:        DefaultPathHistory,
		Clock:              time.Now,
	}
}

// WithDefaults fills zero fields.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Port <= 0 {
		o.Port = d.Port
	}
	if o.LateFrameTolerance <= 0 {
		o.LateFrameTolerance = d.LateFrameTolerance
	}
	if o.UnsequencedRefresh <= 0 {
		o.UnsequencedRefresh = d.UnsequencedRefresh
	}
	if o.PathHistory == 0 {
		o.PathHistory = d.PathHistory
	}
	if o.Clock == nil {
		o.Clock = d.Clock
	}
	return o
}

func (o Options) frameConfig() frameConfig {
	return frameConfig{
		tolerance: o.LateFrameTolerance,
		refresh:   o.UnsequencedRefresh,
		pathLimit: o.PathHistory,
	}
}
