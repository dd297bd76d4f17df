package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/doc-summarizer/internal/domain/summarizer"
)

func TestRecorderCounts(t *testing.T) {
	rec := NewRecorder()

	beforeSuccess := testutil.ToFloat64(summariesTotal.WithLabelValues(summarizer.OutcomeSuccess))
	beforeFailed := testutil.ToFloat64(summariesTotal.WithLabelValues("invalid_input"))
	beforeAttempt := testutil.ToFloat64(modelAttemptsTotal.WithLabelValues("m-test", summarizer.OutcomeUnavailable))

	rec.SummaryCompleted(3, 2*time.Second)
	rec.SummaryFailed("invalid_input")
	rec.ModelAttempt("m-test", summarizer.OutcomeUnavailable)

	require.InDelta(t, beforeSuccess+1, testutil.ToFloat64(summariesTotal.WithLabelValues(summarizer.OutcomeSuccess)), 0)
	require.InDelta(t, beforeFailed+1, testutil.ToFloat64(summariesTotal.WithLabelValues("invalid_input")), 0)
	require.InDelta(t, beforeAttempt+1, testutil.ToFloat64(modelAttemptsTotal.WithLabelValues("m-test", summarizer.OutcomeUnavailable)), 0)
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/metrics", gin.WrapH(Handler()))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/ping", "200"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.InDelta(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/ping", "200")), 0)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "docsum_http_requests_total"))
}
