package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tuioctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tuioctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	datagrams = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tuioctl",
			Subsystem: "transport",
			Name:      "datagrams_total",
			Help:      "UDP datagrams handed to the decoder.",
		},
	)
	datagramBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tuioctl",
			Subsystem: "transport",
			Name:      "datagram_bytes_total",
			Help:      "Bytes received across all datagrams.",
		},
	)
	decodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tuioctl",
			Subsystem: "decoder",
			Name:      "failures_total",
			Help:      "Datagrams discarded because they failed to decode.",
		},
		[]string{"stage"},
	)
	frames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tuioctl",
			Subsystem: "tuio",
			Name:      "frames_total",
			Help:      "Frame terminators processed by outcome.",
		},
		[]string{"profile", "outcome"},
	)
	entityEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tuioctl",
			Subsystem: "tuio",
			Name:      "entity_events_total",
			Help:      "Add, update and remove notifications dispatched.",
		},
		[]string{"profile", "event"},
	)
	liveEntities = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "tuioctl",
			Subsystem: "tuio",
			Name:      "live_entities",
			Help:      "Entities in the committed registry.",
		},
		[]string{"profile"},
	)
	filteredMessages = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tuioctl",
			Subsystem: "tuio",
			Name:      "filtered_cursor_messages_total",
			Help:      "Cursor profile messages dropped by profile filtering.",
		},
	)
	streamClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tuioctl",
			Subsystem: "stream",
			Name:      "clients",
			Help:      "Connected websocket stream subscribers.",
		},
	)
	streamDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tuioctl",
			Subsystem: "stream",
			Name:      "dropped_events_total",
			Help:      "Events dropped for slow websocket subscribers.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,
			datagrams,
			datagramBytes,
			decodeFailures,
			frames,
			entityEvents,
			liveEntities,
			filteredMessages,
			streamClients,
			streamDropped,
		)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordDatagram(size int) {
	RegisterMetrics()
	datagrams.Inc()
	datagramBytes.Add(float64(size))
}

func RecordDecodeFailure(stage string) {
	RegisterMetrics()
	decodeFailures.WithLabelValues(stage).Inc()
}

func RecordFrame(profile string, accepted bool) {
	RegisterMetrics()
	outcome := "accepted"
	if !accepted {
		outcome = "stale"
	}
	frames.WithLabelValues(profile, outcome).Inc()
}

func RecordEntityEvents(profile string, removed, added, updated int) {
	RegisterMetrics()
	if removed > 0 {
		entityEvents.WithLabelValues(profile, "remove").Add(float64(removed))
	}
	if added > 0 {
		entityEvents.WithLabelValues(profile, "add").Add(float64(added))
	}
	if updated > 0 {
		entityEvents.WithLabelValues(profile, "update").Add(float64(updated))
	}
}

func SetLiveEntities(profile string, n int) {
	RegisterMetrics()
	liveEntities.WithLabelValues(profile).Set(float64(n))
}

func RecordFilteredMessage() {
	RegisterMetrics()
	filteredMessages.Inc()
}

func SetStreamClients(n int) {
	RegisterMetrics()
	streamClients.Set(float64(n))
}

func RecordStreamDrop() {
	RegisterMetrics()
	streamDropped.Inc()
}
