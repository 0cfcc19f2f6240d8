// Package metrics holds the Prometheus collectors served at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostelfinder_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostelfinder_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hostelfinder_http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hostelfinder_http_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		},
	)

	// Bookings and reviews
	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hostelfinder_bookings_created_total",
			Help: "Bookings created",
		},
	)

	BookingsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostelfinder_bookings_rejected_total",
			Help: "Booking attempts rejected, by reason",
		},
		[]string{"reason"}, // "validation", "not_found", "no_availability"
	)

	BookingTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostelfinder_booking_transitions_total",
			Help: "Booking status transitions",
		},
		[]string{"status"},
	)

	ReviewsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hostelfinder_reviews_created_total",
			Help: "Reviews created",
		},
	)

	// Smart search and the recommendation service
	SmartSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostelfinder_smart_search_total",
			Help: "Smart searches by outcome",
		},
		[]string{"outcome"}, // "exact", "suggested", "error"
	)

	RecommendCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostelfinder_recommend_calls_total",
			Help: "Calls to the recommendation service",
		},
		[]string{"endpoint", "result"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hostelfinder_recommend_call_duration_seconds",
			Help:    "Latency of recommendation service calls",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"endpoint"},
	)

	// Live feed
	LiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hostelfinder_live_connections",
			Help: "Open live feed WebSocket connections",
		},
	)

	LiveEventsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hostelfinder_live_events_total",
			Help: "Live feed events broadcast, by type",
		},
		[]string{"type"},
	)
)

func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func RecordRecommendCall(endpoint string, err error, duration time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	RecommendCalls.WithLabelValues(endpoint, result).Inc()
	RecommendDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
