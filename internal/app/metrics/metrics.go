package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "twi_speech"

// Upload outcomes
const (
	OutcomeSuccess       = "success"
	OutcomeValidation    = "validation_error"
	OutcomeStorageError  = "storage_error"
	OutcomeMetadataError = "metadata_error"
)

// Orphan kinds left behind by a partially failed submission
const (
	OrphanObject  = "object"
	OrphanSpeaker = "speaker"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	uploadsTotal        *prometheus.CounterVec
	uploadBytes         prometheus.Histogram
	orphansTotal        *prometheus.CounterVec
	speakersCreated     prometheus.Counter
	progressUnknown     prometheus.Counter
	purgeObjectsTotal   *prometheus.CounterVec
	purgeRowsDeleted    prometheus.Counter
	transcriptionsTotal prometheus.Counter
}

// New registers the collectors on reg
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		uploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Recording submissions by outcome",
			},
			[]string{"outcome"},
		),
		uploadBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upload_bytes",
				Help:      "Size of stored recordings in bytes",
				Buckets:   prometheus.ExponentialBuckets(16<<10, 4, 8),
			},
		),
		orphansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orphans_total",
				Help:      "Objects or speakers left without a recording row after a failed submission",
			},
			[]string{"kind"},
		),
		speakersCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "speakers_created_total",
				Help:      "Speakers registered",
			},
		),
		progressUnknown: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "progress_unknown_total",
				Help:      "Progress computations that degraded to unknown",
			},
		),
		purgeObjectsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "purge_objects_total",
				Help:      "Objects processed by bulk purge by result",
			},
			[]string{"result"},
		),
		purgeRowsDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "purge_rows_deleted_total",
				Help:      "Recording rows removed by bulk purge",
			},
		),
		transcriptionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transcriptions_total",
				Help:      "Transcriptions attached to recordings",
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one handled request and its latency
func (m *Metrics) ObserveHTTPRequest(method, path, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// Upload counts a submission by outcome. Sizes are observed for successes only.
func (m *Metrics) Upload(outcome string, size int64) {
	if m == nil {
		return
	}
	m.uploadsTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess {
		m.uploadBytes.Observe(float64(size))
	}
}

// Orphan counts state left behind by a failed submission step
func (m *Metrics) Orphan(kind string) {
	if m == nil {
		return
	}
	m.orphansTotal.WithLabelValues(kind).Inc()
}

// SpeakerCreated counts a newly registered speaker
func (m *Metrics) SpeakerCreated() {
	if m == nil {
		return
	}
	m.speakersCreated.Inc()
}

// ProgressUnknown counts progress lookups that could not be computed
func (m *Metrics) ProgressUnknown() {
	if m == nil {
		return
	}
	m.progressUnknown.Inc()
}

// PurgeObjects adds deleted and failed object counts from a purge
func (m *Metrics) PurgeObjects(deleted, failed int) {
	if m == nil {
		return
	}
	m.purgeObjectsTotal.WithLabelValues("deleted").Add(float64(deleted))
	m.purgeObjectsTotal.WithLabelValues("failed").Add(float64(failed))
}

// PurgeRows adds rows removed by a purge
func (m *Metrics) PurgeRows(n int64) {
	if m == nil {
		return
	}
	m.purgeRowsDeleted.Add(float64(n))
}

// Transcribed counts a stored transcription
func (m *Metrics) Transcribed() {
	if m == nil {
		return
	}
	m.transcriptionsTotal.Inc()
}
