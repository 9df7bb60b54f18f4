package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the photo pipeline.
type Metrics struct {
	uploadsTotal    prometheus.Counter
	uploadFailures  *prometheus.CounterVec
	listingsTotal   prometheus.Counter
	uploadLatency   prometheus.Histogram
	listingLatency  prometheus.Histogram
	listCacheHits   prometheus.Counter
	listCacheMisses prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		uploadsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "photo_uploads_total",
				Help: "Total number of successfully ingested photos",
			},
		),
		uploadFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "photo_upload_failures_total",
				Help: "Total number of failed ingestions by stage",
			},
			[]string{"stage"},
		),
		listingsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "photo_listings_total",
				Help: "Total number of listing requests served",
			},
		),
		uploadLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "photo_upload_latency_ms",
				Help:    "Latency of the full ingestion pipeline in milliseconds",
				Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
			},
		),
		listingLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "photo_listing_latency_ms",
				Help:    "Latency of listing requests in milliseconds",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),
		listCacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "photo_listing_cache_hits_total",
				Help: "Total number of listing cache hits",
			},
		),
		listCacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "photo_listing_cache_misses_total",
				Help: "Total number of listing cache misses",
			},
		),
	}
}

// ObserveUpload records one successful ingestion and its latency.
func (m *Metrics) ObserveUpload(latencyMs float64) {
	if m == nil {
		return
	}
	m.uploadsTotal.Inc()
	m.uploadLatency.Observe(latencyMs)
}

// ObserveUploadFailure records a failed ingestion at the given stage.
func (m *Metrics) ObserveUploadFailure(stage string) {
	if m == nil {
		return
	}
	m.uploadFailures.WithLabelValues(stage).Inc()
}

// ObserveListing records one listing request and its latency.
func (m *Metrics) ObserveListing(latencyMs float64, cacheHit bool) {
	if m == nil {
		return
	}
	m.listingsTotal.Inc()
	m.listingLatency.Observe(latencyMs)
	if cacheHit {
		m.listCacheHits.Inc()
	} else {
		m.listCacheMisses.Inc()
	}
}
