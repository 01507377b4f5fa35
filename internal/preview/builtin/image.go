package builtin

import (
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/GriffinCanCode/AgentOS/preview/internal/preview"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// ImageName is the name the image strategy registers under.
const ImageName = "image"

var imageTypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"image/bmp",
	"image/svg+xml",
	"image/avif",
	"image/x-icon",
}

// imageExtensions lists the path extensions previewed as images.
var imageExtensions = func() map[string]struct{} {
	exts := map[string]struct{}{".jpeg": {}}
	for _, t := range imageTypes {
		if m := mimetype.Lookup(t); m != nil && m.Extension() != "" {
			exts[m.Extension()] = struct{}{}
		}
	}
	return exts
}()

// Image previews direct links to image files. The host draws the picture
// from the style itself, so no surface is involved.
type Image struct {
	trace *preview.Tracer

	mu         sync.Mutex
	currentURL string
	visible    bool
}

// NewImage creates a hidden image strategy.
func NewImage(logger *zap.Logger) *Image {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Image{trace: preview.NewTracer(logger.With(zap.String("strategy", ImageName)))}
}

func (i *Image) Name() string { return ImageName }

// Match accepts HTTP(S) links whose path ends in a known image extension.
func (i *Image) Match(domain, rawURL string) bool {
	if domain == "" || rawURL == "" || !preview.IsHTTPURL(rawURL) {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	_, ok := imageExtensions[strings.ToLower(path.Ext(u.Path))]
	return ok
}

func (i *Image) Show(rawURL string) {
	if rawURL == "" {
		panic(&preview.ConfigError{Strategy: ImageName, Reason: "empty URL"})
	}
	i.mu.Lock()
	i.currentURL = rawURL
	i.visible = true
	i.mu.Unlock()

	i.trace.Trace("Showing preview", zap.String("url", rawURL))
}

func (i *Image) Hide() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.visible = false
}

func (i *Image) IsVisible() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.visible
}

// CurrentURL is the image most recently shown.
func (i *Image) CurrentURL() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.currentURL
}

func (i *Image) RenderStyle() preview.Style {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.visible {
		return preview.HiddenStyle()
	}
	style := preview.VisibleStyle()
	style["background-image"] = `url("` + strings.ReplaceAll(i.currentURL, `"`, `%22`) + `")`
	style["background-size"] = "contain"
	style["background-repeat"] = "no-repeat"
	style["background-position"] = "center"
	return style
}

func (i *Image) ReactsToSizeUpdates() bool { return false }
func (i *Image) ShouldTrackLoading() bool  { return false }
func (i *Image) UsesWebView() bool         { return false }

func (i *Image) SetDebug(debug bool) { i.trace.SetEnabled(debug) }

var _ preview.Strategy = (*Image)(nil)
