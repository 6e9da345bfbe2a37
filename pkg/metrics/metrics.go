package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry holds every collector exposed on /api/metrics
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	// Custom histogram buckets for API response times ranging from milliseconds to 30+ seconds.
	// SMTP handshakes against a hosted relay regularly take a few seconds.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Storage webhook (Google Sheets) client metrics
	StorageWebhookDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_webhook_request_duration_seconds",
			Help:    "Storage webhook request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"status"},
	)

	StorageWebhookTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_webhook_requests_total",
			Help: "Total number of storage webhook requests",
		},
		[]string{"status"},
	)

	// Mail relay metrics
	EmailSendDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "email_send_duration_seconds",
			Help:    "Email send duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"template", "status"},
	)

	EmailSendTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_send_total",
			Help: "Total number of email send attempts",
		},
		[]string{"template", "status"},
	)

	// Business Metrics
	RSVPSubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rsvp_submissions_total",
			Help: "Total number of RSVP submissions by outcome",
		},
		[]string{"status"},
	)

	RSVPStepOutcomes = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rsvp_pipeline_step_total",
			Help: "Outcomes of individual RSVP pipeline steps",
		},
		[]string{"step", "status"}, // status: success, degraded, failed
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

func init() {
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// RecordInfrastructureMetrics samples runtime gauges every 15s until ctx is done
func RecordInfrastructureMetrics(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sampleRuntime()
			}
		}
	}()
}

func sampleRuntime() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	GoRoutines.Set(float64(runtime.NumGoroutine()))
	HeapAlloc.Set(float64(m.HeapAlloc))
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
