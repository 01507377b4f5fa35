package preview

import "sync"

// Viewport is the size of the host's preview area in CSS pixels.
type Viewport struct {
	Width  int `json:"width" form:"width"`
	Height int `json:"height" form:"height"`
}

// Host supplies the current viewport each time a style is computed.
type Host interface {
	Viewport() Viewport
}

// Window is a Host whose viewport is pushed by the UI on resize.
type Window struct {
	mu sync.RWMutex
	vp Viewport
}

// NewWindow creates a Window with an initial size.
func NewWindow(width, height int) *Window {
	return &Window{vp: Viewport{Width: width, Height: height}}
}

// Resize records a new viewport. Non-positive dimensions are ignored.
func (w *Window) Resize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if width > 0 {
		w.vp.Width = width
	}
	if height > 0 {
		w.vp.Height = height
	}
}

func (w *Window) Viewport() Viewport {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.vp
}
