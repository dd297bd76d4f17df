package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
)

var (
	summariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docsum_summaries_total",
			Help: "Summarization requests by outcome (success or error code)",
		},
		[]string{"outcome"},
	)

	summaryChunks = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docsum_summary_chunks",
			Help:    "Number of chunks per successful summary",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
		},
	)

	summaryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "docsum_summary_duration_seconds",
			Help:    "End to end duration of successful summaries",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120, 300},
		},
	)

	modelAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docsum_model_attempts_total",
			Help: "Generation attempts per model and outcome",
		},
		[]string{"model", "outcome"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docsum_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "docsum_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Recorder reports summarizer measurements to Prometheus.
type Recorder struct{}

// NewRecorder is a wire provider.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// ModelAttempt counts one generation call against a candidate model.
func (*Recorder) ModelAttempt(model, outcome string) {
	modelAttemptsTotal.WithLabelValues(model, outcome).Inc()
}

// SummaryCompleted records the chunk count and latency of a successful summary.
func (*Recorder) SummaryCompleted(chunks int, duration time.Duration) {
	summariesTotal.WithLabelValues(summarizer.OutcomeSuccess).Inc()
	summaryChunks.Observe(float64(chunks))
	summaryDuration.Observe(duration.Seconds())
}

// SummaryFailed counts a failed summary under its error code.
func (*Recorder) SummaryFailed(code string) {
	if code == "" {
		code = "internal"
	}
	summariesTotal.WithLabelValues(code).Inc()
}

var _ summarizer.Recorder = (*Recorder)(nil)

// Middleware records request counts and latency per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
