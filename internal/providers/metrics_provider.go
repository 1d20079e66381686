package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/roju/auto-live-recorder/internal/structures"
)

type MetricsProviderInterface interface {
	IncStoreOp(op string, success bool)
	ObservePersistenceDuration(op string, duration time.Duration)
	IncDecodeSkips()
	SetStreamersTotal(count int)
}

type MetricsProvider struct {
	storeOpsTotal       *prometheus.CounterVec
	persistenceDuration *prometheus.HistogramVec
	decodeSkipsTotal    prometheus.Counter
	streamersTotal      prometheus.Gauge
}

func (m *MetricsProvider) IncStoreOp(op string, success bool) {
	m.storeOpsTotal.WithLabelValues(op, opResult(success)).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(op string, duration time.Duration) {
	m.persistenceDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncDecodeSkips() {
	m.decodeSkipsTotal.Inc()
}

func (m *MetricsProvider) SetStreamersTotal(count int) {
	m.streamersTotal.Set(float64(count))
}

func opResult(success bool) string {
	if success {
		return "ok"
	}
	return "error"
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.DebugServer.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		storeOpsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "alr_store_ops_total",
			Help: "Total number of store mutations by operation and result",
		}, []string{"op", "result"}),

		persistenceDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "alr_persistence_duration_seconds",
			Help:    "Duration of persistence load/save operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),

		decodeSkipsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "alr_decode_skips_total",
			Help: "Total number of persisted streamer records skipped on decode",
		}),

		streamersTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "alr_streamers_total",
			Help: "Current number of monitored streamers",
		}),
	}
}

// noopMetrics is a no-op implementation for when the debug server is disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncStoreOp(_ string, _ bool)                       {}
func (n *noopMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncDecodeSkips()                                   {}
func (n *noopMetrics) SetStreamersTotal(_ int)                           {}
