package http

import "github.com/GriffinCanCode/AgentOS/preview/internal/preview"

// ShowRequest asks for a link to be previewed.
type ShowRequest struct {
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

// ShowResponse reports which strategy took the link.
type ShowResponse struct {
	Matched    bool                     `json:"matched"`
	Strategy   string                   `json:"strategy,omitempty"`
	Visibility map[string]bool          `json:"visibility"`
	Styles     map[string]preview.Style `json:"styles"`
}

// RatioRequest reports the aspect ratio of the content on screen.
type RatioRequest struct {
	Ratio float64 `json:"ratio"`
}

// DebugRequest switches debug logging.
type DebugRequest struct {
	Debug bool `json:"debug"`
}

// StylesResponse carries every strategy's style for a viewport.
type StylesResponse struct {
	Viewport preview.Viewport         `json:"viewport"`
	Styles   map[string]preview.Style `json:"styles"`
}

// VisibleResponse describes the visible preview. Strategy is empty when
// nothing is visible.
type VisibleResponse struct {
	Strategy string        `json:"strategy,omitempty"`
	URL      string        `json:"url,omitempty"`
	Style    preview.Style `json:"style,omitempty"`
}

// Capabilities are the host-facing flags of one strategy.
type Capabilities struct {
	Name                string `json:"name"`
	ReactsToSizeUpdates bool   `json:"reacts_to_size_updates"`
	ShouldTrackLoading  bool   `json:"should_track_loading"`
	UsesWebView         bool   `json:"uses_webview"`
}

// StatusResponse summarizes the manager.
type StatusResponse struct {
	Visibility map[string]bool `json:"visibility"`
	Debug      bool            `json:"debug"`
	Strategies []Capabilities  `json:"strategies,omitempty"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
