package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cxd309/hoopshot/internal/shot"
)

var (
	solvesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoopshot_solves_total",
			Help: "Total number of trajectory solves by arc and outcome.",
		},
		[]string{"arc", "outcome"},
	)

	solveDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hoopshot_solve_duration_seconds",
			Help:    "Trajectory solve duration in seconds.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoopshot_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hoopshot_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	rosbridgeMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hoopshot_rosbridge_messages_total",
			Help: "Total number of rosbridge messages by direction.",
		},
		[]string{"direction"},
	)
)

func init() {
	prometheus.MustRegister(solvesTotal)
	prometheus.MustRegister(solveDurationSeconds)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(rosbridgeMessagesTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveSolve records one solve.
func ObserveSolve(arc shot.Arc, res shot.Result, elapsed time.Duration) {
	outcome := "failure"
	if res.Success {
		outcome = "success"
	}
	solvesTotal.WithLabelValues(arc.String(), outcome).Inc()
	solveDurationSeconds.Observe(elapsed.Seconds())
}

// Direction labels for rosbridge traffic.
const (
	Inbound  = "in"
	Outbound = "out"
)

// RosbridgeMessage counts one rosbridge message in the given direction.
func RosbridgeMessage(direction string) {
	rosbridgeMessagesTotal.WithLabelValues(direction).Inc()
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.URL.Path, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(r.URL.Path, r.Method).Observe(duration)
	})
}
