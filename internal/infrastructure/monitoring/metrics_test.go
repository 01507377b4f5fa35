package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GriffinCanCode/AgentOS/preview/internal/preview"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ preview.Observer     = (*Metrics)(nil)
	_ preview.LoadObserver = (*Metrics)(nil)
)

func TestPreviewCounters(t *testing.T) {
	m := NewMetrics()

	m.PreviewShown("external")
	m.PreviewShown("external")
	m.PreviewShown("video")
	m.PreviewUnmatched()
	m.PreviewsHidden()
	m.ResolutionFailed("external")
	m.NavigationFailed("external", true)
	m.NavigationFailed("external", true)
	m.NavigationFailed("external", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ShowsTotal.WithLabelValues("external")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ShowsTotal.WithLabelValues("video")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UnmatchedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HidesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolutionFailures.WithLabelValues("external")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NavigationFailures.WithLabelValues("external", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NavigationFailures.WithLabelValues("external", "false")))
}

func TestWebSocketGauge(t *testing.T) {
	m := NewMetrics()

	m.WSConnected()
	m.WSConnected()
	m.WSDisconnected()
	m.WSMessage("in")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WSConnections))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WSMessages.WithLabelValues("in")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/preview/visible", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", Handler(m))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/preview/visible", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/preview/visible", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "preview_http_requests_total")
	assert.Contains(t, w.Body.String(), "preview_uptime_seconds")
}

func TestUptimeAdvances(t *testing.T) {
	m := NewMetrics()
	m.startTime = time.Now().Add(-time.Minute)
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.Uptime), 60.0)
}
