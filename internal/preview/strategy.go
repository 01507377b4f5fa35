package preview

import (
	"github.com/GriffinCanCode/AgentOS/preview/internal/surface"
)

// Style is a render style handed to the host UI, keyed by CSS property.
type Style map[string]string

// Strategy is a pluggable preview implementation bound to a matching rule.
type Strategy interface {
	// Name is stable and unique across the strategies of one Manager.
	Name() string
	// Match is pure and returns false when either argument is empty.
	Match(domain, url string) bool
	// Show begins presenting url. Visibility and current URL change before
	// Show returns; the rendered content may arrive later.
	Show(url string)
	// Hide stops presenting. It is idempotent, and work still in flight from
	// an earlier Show never makes the strategy visible again.
	Hide()
	IsVisible() bool
	RenderStyle() Style

	// ReactsToSizeUpdates tells the host to forward viewport resizes.
	ReactsToSizeUpdates() bool
	// ShouldTrackLoading tells the host to show loading progress.
	ShouldTrackLoading() bool
	// UsesWebView tells the host to attach a surface before the first Show.
	UsesWebView() bool

	SetDebug(debug bool)
}

// SurfaceHolder is implemented by strategies that render into a surface.
type SurfaceHolder interface {
	AttachSurface(s surface.Surface)
	Surface() surface.Surface
}

// RatioReporter accepts explicit aspect-ratio reports for the content on screen.
type RatioReporter interface {
	SetAspectRatio(ratio float64)
}

// Observer receives manager-level events, typically for metrics.
type Observer interface {
	PreviewShown(strategy string)
	PreviewUnmatched()
	PreviewsHidden()
}

// LoadObserver receives load pipeline failures from strategies.
type LoadObserver interface {
	ResolutionFailed(strategy string)
	NavigationFailed(strategy string, aborted bool)
}

// HiddenStyle is the style of a strategy that is not visible.
func HiddenStyle() Style {
	return Style{"display": "none"}
}

// VisibleStyle is the style of a visible strategy with no size override.
func VisibleStyle() Style {
	return Style{"display": "flex"}
}
