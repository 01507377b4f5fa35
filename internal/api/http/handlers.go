package http

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/AgentOS/preview/internal/preview"
	"github.com/GriffinCanCode/AgentOS/preview/internal/surface"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// Handlers exposes a preview Manager to the host UI.
type Handlers struct {
	manager *preview.Manager
	window  *preview.Window
	logger  *zap.Logger
	started time.Time
}

// NewHandlers creates the handler set. window receives viewport updates and
// must be the Host the strategies were built with.
func NewHandlers(manager *preview.Manager, window *preview.Window, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		manager: manager,
		window:  window,
		logger:  logger,
		started: time.Now(),
	}
}

// Register mounts every preview route on r.
func (h *Handlers) Register(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	r.POST("/preview/show", h.Show)
	r.POST("/preview/hide", h.Hide)
	r.POST("/preview/ratio", h.ReportRatio)
	r.POST("/preview/debug", h.SetDebug)
	r.POST("/preview/viewport", h.Resize)
	r.GET("/preview/styles", h.Styles)
	r.GET("/preview/visible", h.Visible)
	r.GET("/preview/status", h.Status)
	r.GET("/preview/document", h.Document)
}

// Root reports service identity.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "preview",
		"version": Version,
	})
}

// Health reports liveness and the visible strategy.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"uptime":     time.Since(h.started).Round(time.Second).String(),
		"strategies": len(h.manager.Strategies()),
		"visible":    nameOf(h.manager.VisiblePreview()),
	})
}

// Show routes a link to the first matching strategy.
func (h *Handlers) Show(c *gin.Context) {
	var req ShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	shown := h.manager.Show(req.URL, req.Domain)
	c.JSON(http.StatusOK, ShowResponse{
		Matched:    shown != nil,
		Strategy:   nameOf(shown),
		Visibility: h.manager.VisibilityStatus(),
		Styles:     h.manager.RenderStyles(),
	})
}

// Hide hides every preview.
func (h *Handlers) Hide(c *gin.Context) {
	h.manager.Hide()
	c.JSON(http.StatusOK, StatusResponse{
		Visibility: h.manager.VisibilityStatus(),
		Debug:      h.manager.Debug(),
	})
}

// ReportRatio forwards an aspect-ratio report to the visible preview.
func (h *Handlers) ReportRatio(c *gin.Context) {
	var req RatioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	visible := h.manager.VisiblePreview()
	if visible == nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "no visible preview"})
		return
	}
	reporter, ok := visible.(preview.RatioReporter)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: visible.Name() + " does not accept ratio reports"})
		return
	}

	reporter.SetAspectRatio(req.Ratio)
	c.JSON(http.StatusOK, gin.H{
		"strategy": visible.Name(),
		"style":    visible.RenderStyle(),
	})
}

// SetDebug switches debug logging for every strategy.
func (h *Handlers) SetDebug(c *gin.Context) {
	var req DebugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.manager.SetDebug(req.Debug)
	h.logger.Info("Preview debug logging changed", zap.Bool("debug", req.Debug))
	c.JSON(http.StatusOK, gin.H{"debug": h.manager.Debug()})
}

// Resize records the host viewport and returns the recomputed styles.
func (h *Handlers) Resize(c *gin.Context) {
	var req preview.Viewport
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.window.Resize(req.Width, req.Height)
	c.JSON(http.StatusOK, StylesResponse{
		Viewport: h.window.Viewport(),
		Styles:   h.manager.RenderStyles(),
	})
}

// Styles returns every strategy's current style. Optional width and height
// query parameters resize the viewport first.
func (h *Handlers) Styles(c *gin.Context) {
	var q preview.Viewport
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if q.Width > 0 || q.Height > 0 {
		h.window.Resize(q.Width, q.Height)
	}

	c.JSON(http.StatusOK, StylesResponse{
		Viewport: h.window.Viewport(),
		Styles:   h.manager.RenderStyles(),
	})
}

// Visible describes the visible preview, if any.
func (h *Handlers) Visible(c *gin.Context) {
	visible := h.manager.VisiblePreview()
	if visible == nil {
		c.JSON(http.StatusOK, VisibleResponse{})
		return
	}

	resp := VisibleResponse{
		Strategy: visible.Name(),
		Style:    visible.RenderStyle(),
	}
	if u, ok := visible.(interface{ CurrentURL() string }); ok {
		resp.URL = u.CurrentURL()
	}
	c.JSON(http.StatusOK, resp)
}

// Status reports visibility and capabilities of every strategy.
func (h *Handlers) Status(c *gin.Context) {
	strategies := h.manager.Strategies()
	caps := make([]Capabilities, 0, len(strategies))
	for _, s := range strategies {
		caps = append(caps, Capabilities{
			Name:                s.Name(),
			ReactsToSizeUpdates: s.ReactsToSizeUpdates(),
			ShouldTrackLoading:  s.ShouldTrackLoading(),
			UsesWebView:         s.UsesWebView(),
		})
	}

	c.JSON(http.StatusOK, StatusResponse{
		Visibility: h.manager.VisibilityStatus(),
		Debug:      h.manager.Debug(),
		Strategies: caps,
	})
}

// Document returns what the visible preview's surface has committed.
func (h *Handlers) Document(c *gin.Context) {
	visible := h.manager.VisiblePreview()
	if visible == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no visible preview"})
		return
	}
	holder, ok := visible.(preview.SurfaceHolder)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: visible.Name() + " has no surface"})
		return
	}
	snap, ok := holder.Surface().(surface.Snapshotter)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: visible.Name() + " surface cannot report its document"})
		return
	}
	c.JSON(http.StatusOK, snap.Document())
}

func nameOf(s preview.Strategy) string {
	if s == nil {
		return ""
	}
	return s.Name()
}
