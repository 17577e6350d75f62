package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments the API client. Collectors are registered on the
// supplied Registerer so library consumers control exposure.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RetriesTotal     *prometheus.CounterVec
	RequestsInFlight prometheus.Gauge
	CreditsUsedTotal prometheus.Counter
	ImagesTotal      prometheus.Counter
	DownloadsTotal   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pixeldojo_requests_total",
				Help: "Total number of API requests by outcome",
			},
			[]string{"operation", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pixeldojo_request_duration_seconds",
				Help:    "API request duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"operation"},
		),
		RetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pixeldojo_retries_total",
				Help: "Total number of retry attempts by reason",
			},
			[]string{"reason"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pixeldojo_requests_in_flight",
				Help: "Number of API requests currently in flight",
			},
		),
		CreditsUsedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pixeldojo_credits_used_total",
				Help: "Total credits consumed by successful generations",
			},
		),
		ImagesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pixeldojo_images_generated_total",
				Help: "Total number of images returned by the API",
			},
		),
		DownloadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pixeldojo_image_downloads_total",
				Help: "Total number of image downloads by outcome",
			},
			[]string{"status"},
		),
	}
}

func (m *Metrics) RecordRequest(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(operation, status).Inc()
	m.RequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Metrics) RecordRetry(reason string) {
	if m == nil {
		return
	}
	m.RetriesTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordGeneration(images int, creditsUsed float64) {
	if m == nil {
		return
	}
	m.ImagesTotal.Add(float64(images))
	m.CreditsUsedTotal.Add(creditsUsed)
}

func (m *Metrics) RecordDownload(status string) {
	if m == nil {
		return
	}
	m.DownloadsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) IncRequestsInFlight() {
	if m == nil {
		return
	}
	m.RequestsInFlight.Inc()
}

func (m *Metrics) DecRequestsInFlight() {
	if m == nil {
		return
	}
	m.RequestsInFlight.Dec()
}
