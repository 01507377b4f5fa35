package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GriffinCanCode/AgentOS/preview/internal/config"
	"github.com/GriffinCanCode/AgentOS/preview/internal/preview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = "0"
	cfg.Logging.Level = "error"
	cfg.RateLimit.Enabled = false

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	return srv
}

func TestNewServerRegistersStrategiesInOrder(t *testing.T) {
	srv := newTestServer(t)

	names := make([]string, 0, 3)
	for _, s := range srv.Manager().Strategies() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"image", "video", "external"}, names)

	assert.Equal(t, "video", srv.Manager().Match("youtube.com", "https://youtube.com/watch?v=dQw4w9WgXcQ").Name())
	assert.Nil(t, srv.Manager().Match("youtube.com", "https://youtube.com/feed/trending"))
	assert.Equal(t, "external", srv.Manager().Match("example.com", "https://example.com/").Name())
}

func TestNewServerAttachesSurfacesToWebViewStrategies(t *testing.T) {
	srv := newTestServer(t)

	for _, s := range srv.Manager().Strategies() {
		holder, ok := s.(preview.SurfaceHolder)
		if !s.UsesWebView() {
			assert.False(t, ok && holder.Surface() != nil, s.Name())
			continue
		}
		require.True(t, ok, s.Name())
		assert.NotNil(t, holder.Surface(), s.Name())
	}
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{"GET", "/", "", http.StatusOK},
		{"GET", "/health", "", http.StatusOK},
		{"GET", "/preview/status", "", http.StatusOK},
		{"GET", "/preview/styles", "", http.StatusOK},
		{"GET", "/preview/visible", "", http.StatusOK},
		{"POST", "/preview/show", `{"url":"https://example.com/cat.png","domain":"example.com"}`, http.StatusOK},
		{"POST", "/preview/hide", "", http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestExcludedDomainsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Preview.ExcludedDomains = []string{"intranet.example.com"}

	srv, err := NewServer(cfg)
	require.NoError(t, err)

	assert.Nil(t, srv.Manager().Match("intranet.example.com", "https://intranet.example.com/"))
	assert.NotNil(t, srv.Manager().Match("example.com", "https://example.com/"))
}

func TestShutdownHidesPreviews(t *testing.T) {
	srv := newTestServer(t)

	srv.Manager().Show("https://example.com/cat.png", "example.com")
	require.NotNil(t, srv.Manager().VisiblePreview())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
	assert.Nil(t, srv.Manager().VisiblePreview())
}
