package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicespot_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "servicespot_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	BookingsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "servicespot_bookings_created_total",
		Help: "Bookings created.",
	})

	BookingTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicespot_booking_transitions_total",
			Help: "Booking status transitions by target status.",
		},
		[]string{"status"},
	)

	RatingsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "servicespot_ratings_created_total",
		Help: "Ratings submitted.",
	})

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicespot_notifications_total",
			Help: "Notifications persisted by type.",
		},
		[]string{"type"},
	)

	NotificationPushTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicespot_notification_push_total",
			Help: "Real-time notification pushes by result (delivered, offline, failed).",
		},
		[]string{"result"},
	)

	OTPIssuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicespot_otp_issued_total",
			Help: "OTP codes issued by purpose.",
		},
		[]string{"type"},
	)

	OTPVerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicespot_otp_verifications_total",
			Help: "OTP verification attempts by result.",
		},
		[]string{"result"},
	)

	WebSocketConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "servicespot_websocket_connections",
		Help: "Open notification WebSocket connections on this instance.",
	})

	JobRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicespot_job_runs_total",
			Help: "Background job runs by job and result.",
		},
		[]string{"job", "result"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		BookingsCreatedTotal,
		BookingTransitionsTotal,
		RatingsCreatedTotal,
		NotificationsTotal,
		NotificationPushTotal,
		OTPIssuedTotal,
		OTPVerificationsTotal,
		WebSocketConnections,
		JobRunsTotal,
	)
}
