package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request latency (seconds)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Contact form submissions by outcome
	ContactSubmissionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submission_count",
			Help: "Total number of contact form submissions",
		},
		[]string{"outcome"}, // outcome: submitted, invalid, failed
	)

	// Notification sends by channel
	NotificationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_notification_count",
			Help: "Total number of inquiry notifications sent",
		},
		[]string{"channel", "status"},
	)

	// Lightbox steps
	GalleryNavigationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_navigation_count",
			Help: "Total number of lightbox navigation steps",
		},
		[]string{"direction", "mode"}, // mode: session, stateless
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_active_sessions",
			Help: "Number of live gallery viewing sessions",
		},
	)
)

func RecordHTTPRequestDuration(method, path string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

func IncrementContactSubmission(outcome string) {
	ContactSubmissionCount.WithLabelValues(outcome).Inc()
}

func IncrementNotification(channel, status string) {
	NotificationCount.WithLabelValues(channel, status).Inc()
}

func IncrementGalleryNavigation(direction, mode string) {
	GalleryNavigationCount.WithLabelValues(direction, mode).Inc()
}

func SetActiveSessions(n int) {
	ActiveSessions.Set(float64(n))
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
