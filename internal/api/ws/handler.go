package ws

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/AgentOS/preview/internal/preview"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is sent in both directions on the style stream.
type Message struct {
	Type string `json:"type"`

	// viewport
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// ratio
	Ratio float64 `json:"ratio,omitempty"`

	// styles
	Viewport *preview.Viewport        `json:"viewport,omitempty"`
	Styles   map[string]preview.Style `json:"styles,omitempty"`
	Visible  string                   `json:"visible,omitempty"`

	// error
	Error string `json:"error,omitempty"`
}

// StreamObserver receives connection and message events.
type StreamObserver interface {
	WSConnected()
	WSDisconnected()
	WSMessage(direction string)
}

// Handler streams render styles to the host UI. The UI pushes viewport
// resizes and ratio reports. Resizes recompute only the strategies that
// react to size updates; other messages recompute every style.
type Handler struct {
	manager  *preview.Manager
	window   *preview.Window
	logger   *zap.Logger
	observer StreamObserver
}

// NewHandler creates a stream handler. observer may be nil.
func NewHandler(manager *preview.Manager, window *preview.Window, logger *zap.Logger, observer StreamObserver) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		manager:  manager,
		window:   window,
		logger:   logger,
		observer: observer,
	}
}

// HandleConnection upgrades the request and serves the stream until the
// client goes away.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.observer != nil {
		h.observer.WSConnected()
		defer h.observer.WSDisconnected()
	}

	if err := h.sendStyles(conn); err != nil {
		return
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
		h.count("in")

		var sendErr error
		switch msg.Type {
		case "viewport":
			h.window.Resize(msg.Width, msg.Height)
			sendErr = h.sendResized(conn)
		case "ratio":
			sendErr = h.reportRatio(conn, msg.Ratio)
		case "styles":
			sendErr = h.sendStyles(conn)
		case "ping":
			sendErr = h.send(conn, Message{Type: "pong"})
		default:
			sendErr = h.sendError(conn, "unknown message type")
		}
		if sendErr != nil {
			h.logger.Debug("WebSocket write failed", zap.Error(sendErr))
			return
		}
	}
}

func (h *Handler) reportRatio(conn *websocket.Conn, ratio float64) error {
	visible := h.manager.VisiblePreview()
	if visible == nil {
		return h.sendError(conn, "no visible preview")
	}
	reporter, ok := visible.(preview.RatioReporter)
	if !ok {
		return h.sendError(conn, visible.Name()+" does not accept ratio reports")
	}
	reporter.SetAspectRatio(ratio)
	return h.sendStyles(conn)
}

func (h *Handler) sendStyles(conn *websocket.Conn) error {
	return h.sendStyleMap(conn, h.manager.RenderStyles())
}

// sendResized answers a viewport resize. Only strategies that react to size
// updates are recomputed.
func (h *Handler) sendResized(conn *websocket.Conn) error {
	return h.sendStyleMap(conn, h.manager.ResizeStyles())
}

func (h *Handler) sendStyleMap(conn *websocket.Conn, styles map[string]preview.Style) error {
	vp := h.window.Viewport()
	msg := Message{
		Type:     "styles",
		Viewport: &vp,
		Styles:   styles,
	}
	if visible := h.manager.VisiblePreview(); visible != nil {
		msg.Visible = visible.Name()
	}
	return h.send(conn, msg)
}

func (h *Handler) send(conn *websocket.Conn, msg Message) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	h.count("out")
	return conn.WriteJSON(msg)
}

func (h *Handler) sendError(conn *websocket.Conn, text string) error {
	return h.send(conn, Message{Type: "error", Error: text})
}

func (h *Handler) count(direction string) {
	if h.observer != nil {
		h.observer.WSMessage(direction)
	}
}
