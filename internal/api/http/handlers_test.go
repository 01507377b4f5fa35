package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/GriffinCanCode/AgentOS/preview/internal/preview"
	"github.com/GriffinCanCode/AgentOS/preview/internal/preview/builtin"
	"github.com/GriffinCanCode/AgentOS/preview/internal/preview/external"
	"github.com/GriffinCanCode/AgentOS/preview/internal/resolver"
	"github.com/GriffinCanCode/AgentOS/preview/internal/surface"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySurface commits every navigation and reports it as a document.
type memorySurface struct {
	mu    sync.Mutex
	url   string
	muted bool
}

func (s *memorySurface) Stop() {}

func (s *memorySurface) SetAudioMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
}

func (s *memorySurface) Navigate(_ context.Context, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = target
	return nil
}

func (s *memorySurface) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

func (s *memorySurface) Document() surface.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return surface.Document{URL: s.url, Title: "Preview", Muted: s.muted}
}

type testAPI struct {
	router   *gin.Engine
	manager  *preview.Manager
	external *memorySurface
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	window := preview.NewWindow(1300, 800)
	video := builtin.NewVideo(builtin.VideoOptions{Host: window})
	video.AttachSurface(&memorySurface{})
	ext := external.New(external.Options{
		Host:            window,
		Resolver:        resolver.Identity,
		ExcludedDomains: builtin.VideoDomains,
	})
	extSurface := &memorySurface{}
	ext.AttachSurface(extSurface)

	manager := preview.NewManager([]preview.Strategy{builtin.NewImage(nil), video, ext})

	router := gin.New()
	NewHandlers(manager, window, nil).Register(router)
	return &testAPI{router: router, manager: manager, external: extSurface}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestShowRoutesToFirstMatch(t *testing.T) {
	api := setupTestAPI(t)

	tests := []struct {
		name     string
		req      ShowRequest
		strategy string
	}{
		{"image link", ShowRequest{URL: "https://example.com/cat.png", Domain: "example.com"}, "image"},
		{"video link", ShowRequest{URL: "https://youtu.be/dQw4w9WgXcQ", Domain: "youtu.be"}, "video"},
		{"web page", ShowRequest{URL: "https://example.com/article", Domain: "example.com"}, "external"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, "POST", "/preview/show", tt.req)
			require.Equal(t, http.StatusOK, w.Code)

			resp := decode[ShowResponse](t, w)
			assert.True(t, resp.Matched)
			assert.Equal(t, tt.strategy, resp.Strategy)

			visibleCount := 0
			for name, visible := range resp.Visibility {
				if visible {
					visibleCount++
					assert.Equal(t, tt.strategy, name)
				}
			}
			assert.Equal(t, 1, visibleCount)
			assert.Equal(t, "flex", resp.Styles[tt.strategy]["display"])
		})
	}
}

func TestShowWithoutMatchHidesEverything(t *testing.T) {
	api := setupTestAPI(t)

	api.do(t, "POST", "/preview/show", ShowRequest{URL: "https://example.com/a", Domain: "example.com"})
	w := api.do(t, "POST", "/preview/show", ShowRequest{URL: "mailto:me@example.com", Domain: "example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ShowResponse](t, w)
	assert.False(t, resp.Matched)
	assert.Empty(t, resp.Strategy)
	assert.Equal(t, map[string]bool{"image": false, "video": false, "external": false}, resp.Visibility)
}

func TestShowRejectsMalformedBody(t *testing.T) {
	api := setupTestAPI(t)

	req := httptest.NewRequest("POST", "/preview/show", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode[ErrorResponse](t, w).Error)
}

func TestHide(t *testing.T) {
	api := setupTestAPI(t)

	api.do(t, "POST", "/preview/show", ShowRequest{URL: "https://example.com/a", Domain: "example.com"})
	w := api.do(t, "POST", "/preview/hide", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[StatusResponse](t, w)
	assert.Equal(t, map[string]bool{"image": false, "video": false, "external": false}, resp.Visibility)
	assert.Nil(t, api.manager.VisiblePreview())
}

func TestReportRatio(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, "POST", "/preview/ratio", RatioRequest{Ratio: 2})
	assert.Equal(t, http.StatusConflict, w.Code)

	api.do(t, "POST", "/preview/show", ShowRequest{URL: "https://example.com/cat.png", Domain: "example.com"})
	w = api.do(t, "POST", "/preview/ratio", RatioRequest{Ratio: 2})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	api.do(t, "POST", "/preview/show", ShowRequest{URL: "https://example.com/a", Domain: "example.com"})
	w = api.do(t, "POST", "/preview/ratio", RatioRequest{Ratio: 2})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Strategy string        `json:"strategy"`
		Style    preview.Style `json:"style"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "external", resp.Strategy)
	assert.Equal(t, preview.Style{"display": "flex", "width": "650px", "height": "325px"}, resp.Style)
}

func TestStylesFollowViewport(t *testing.T) {
	api := setupTestAPI(t)

	api.do(t, "POST", "/preview/show", ShowRequest{URL: "https://youtu.be/dQw4w9WgXcQ", Domain: "youtu.be"})

	w := api.do(t, "GET", "/preview/styles?width=800&height=600", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[StylesResponse](t, w)
	assert.Equal(t, preview.Viewport{Width: 800, Height: 600}, resp.Viewport)
	assert.Equal(t, "560px", resp.Styles["video"]["width"])
	assert.Equal(t, "none", resp.Styles["external"]["display"])

	w = api.do(t, "POST", "/preview/viewport", preview.Viewport{Width: 1300, Height: 800})
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[StylesResponse](t, w)
	assert.Equal(t, "650px", resp.Styles["video"]["width"])
}

func TestVisibleAndStatus(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, "GET", "/preview/visible", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[VisibleResponse](t, w).Strategy)

	api.do(t, "POST", "/preview/show", ShowRequest{URL: "https://example.com/a", Domain: "example.com"})
	w = api.do(t, "GET", "/preview/visible", nil)
	visible := decode[VisibleResponse](t, w)
	assert.Equal(t, "external", visible.Strategy)
	assert.Equal(t, "https://example.com/a", visible.URL)

	w = api.do(t, "GET", "/preview/status", nil)
	status := decode[StatusResponse](t, w)
	assert.True(t, status.Visibility["external"])
	require.Len(t, status.Strategies, 3)
	assert.Equal(t, Capabilities{Name: "image"}, status.Strategies[0])
	assert.Equal(t, Capabilities{
		Name:                "external",
		ReactsToSizeUpdates: true,
		ShouldTrackLoading:  true,
		UsesWebView:         true,
	}, status.Strategies[2])
}

func TestSetDebug(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, "POST", "/preview/debug", DebugRequest{Debug: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"debug":true}`, w.Body.String())
	assert.True(t, api.manager.Debug())
}

func TestDocument(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, "GET", "/preview/document", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	api.do(t, "POST", "/preview/show", ShowRequest{URL: "https://example.com/cat.png", Domain: "example.com"})
	w = api.do(t, "GET", "/preview/document", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	api.do(t, "POST", "/preview/show", ShowRequest{URL: "https://example.com/a", Domain: "example.com"})
	require.Eventually(t, func() bool {
		return api.external.CurrentURL() == "https://example.com/a"
	}, time.Second, 5*time.Millisecond)

	w = api.do(t, "GET", "/preview/document", nil)
	require.Equal(t, http.StatusOK, w.Code)
	doc := decode[surface.Document](t, w)
	assert.Equal(t, "https://example.com/a", doc.URL)
	assert.True(t, doc.Muted)
}

func TestRootAndHealth(t *testing.T) {
	api := setupTestAPI(t)

	w := api.do(t, "GET", "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"service":"preview"`)

	w = api.do(t, "GET", "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, float64(3), health["strategies"])
}
