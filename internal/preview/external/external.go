package external

import (
	"context"
	"sync"

	"github.com/GriffinCanCode/AgentOS/preview/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/AgentOS/preview/internal/preview"
	"github.com/GriffinCanCode/AgentOS/preview/internal/resolver"
	"github.com/GriffinCanCode/AgentOS/preview/internal/surface"
	"go.uber.org/zap"
)

// DefaultName is the name the strategy registers under unless overridden.
const DefaultName = "external"

// Options configures a Strategy.
type Options struct {
	Name string
	// Host supplies the viewport for layout. Required.
	Host preview.Host
	// Resolver turns a link into its navigation target. Required.
	Resolver resolver.Resolver
	// ExcludedDomains are handled by other strategies and never matched.
	ExcludedDomains []string
	Logger          *zap.Logger
	Observer        preview.LoadObserver
	// Tracer records one span per load. Optional.
	Tracer *tracing.Tracer
}

// Strategy previews arbitrary web pages in an attached surface. Every Show
// resolves the link and navigates asynchronously; a newer Show or a Hide
// interrupts the surface so older loads fail as aborted and stay silent.
type Strategy struct {
	name     string
	host     preview.Host
	resolver resolver.Resolver
	excluded preview.DomainSet
	logger   *zap.Logger
	trace    *preview.Tracer
	observer preview.LoadObserver
	tracer   *tracing.Tracer

	mu               sync.Mutex
	surface          surface.Surface
	currentURL       string
	lastRequestedURL string
	visible          bool
	aspectRatio      float64
}

// New creates a hidden strategy. It panics with *preview.ConfigError when
// Host or Resolver is missing.
func New(opts Options) *Strategy {
	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	if opts.Host == nil {
		panic(&preview.ConfigError{Strategy: name, Reason: "missing host reference"})
	}
	if opts.Resolver == nil {
		panic(&preview.ConfigError{Strategy: name, Reason: "missing resolver"})
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("strategy", name))

	return &Strategy{
		name:     name,
		host:     opts.Host,
		resolver: opts.Resolver,
		excluded: preview.NewDomainSet(opts.ExcludedDomains),
		logger:   logger,
		trace:    preview.NewTracer(logger),
		observer: opts.Observer,
		tracer:   opts.Tracer,
	}
}

func (s *Strategy) Name() string { return s.name }

// Match accepts any HTTP(S) link whose domain is not excluded.
func (s *Strategy) Match(domain, url string) bool {
	if domain == "" || url == "" {
		return false
	}
	return preview.IsHTTPURL(url) && !s.excluded.Contains(domain)
}

// AttachSurface binds the rendering surface. It panics on nil.
func (s *Strategy) AttachSurface(surf surface.Surface) {
	if surf == nil {
		panic(&preview.ConfigError{Strategy: s.name, Reason: "nil surface attached"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = surf
}

func (s *Strategy) Surface() surface.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface
}

// Show makes the strategy visible for url, interrupts whatever the surface
// was loading and starts a fresh resolve-then-navigate cycle.
func (s *Strategy) Show(url string) {
	if url == "" {
		panic(&preview.ConfigError{Strategy: s.name, Reason: "empty URL"})
	}

	s.mu.Lock()
	surf := s.surface
	if surf == nil {
		s.mu.Unlock()
		panic(&preview.ConfigError{Strategy: s.name, Reason: "no rendering surface attached"})
	}
	s.currentURL = url
	s.lastRequestedURL = url
	s.visible = true
	s.aspectRatio = 0
	surf.Stop()
	surf.SetAudioMuted(true)
	s.mu.Unlock()

	s.trace.Trace("Showing preview", zap.String("url", url))
	go s.load(surf, url)
}

func (s *Strategy) load(surf surface.Surface, url string) {
	span, ctx := s.tracer.StartSpan(context.Background(), "preview.load")
	span.SetTag("strategy", s.name)
	span.SetTag("url", url)
	defer func() {
		span.Finish()
		s.tracer.Submit(span)
	}()

	target, err := s.resolver.Resolve(ctx, url)
	if err != nil {
		span.SetError(err)
		s.logger.Warn("Failed to resolve preview URL",
			zap.String("url", url),
			zap.Error(err))
		if s.observer != nil {
			s.observer.ResolutionFailed(s.name)
		}
		return
	}
	span.SetTag("target", target)

	surf.Stop()
	if err := surf.Navigate(ctx, target); err != nil {
		aborted := surface.IsAborted(err)
		if aborted {
			span.SetTag("aborted", "true")
		} else {
			span.SetError(err)
			s.logger.Warn("Preview navigation failed",
				zap.String("url", url),
				zap.String("target", target),
				zap.Error(err))
		}
		if s.observer != nil {
			s.observer.NavigationFailed(s.name, aborted)
		}
		return
	}

	s.trace.Trace("Preview navigation committed",
		zap.String("url", url),
		zap.String("target", target))
}

// Hide stops and blanks the surface. Calling it while hidden does nothing.
func (s *Strategy) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.visible {
		return
	}
	surf := s.surface
	surf.Stop()
	surf.SetAudioMuted(true)
	if err := surf.Navigate(context.Background(), surface.BlankURL); err != nil && !surface.IsAborted(err) {
		s.logger.Warn("Failed to blank preview surface", zap.Error(err))
	}
	s.visible = false
	s.trace.Trace("Preview hidden", zap.String("url", s.currentURL))
}

func (s *Strategy) IsVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// CurrentURL is the link most recently passed to Show.
func (s *Strategy) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentURL
}

// LastRequestedURL is the link most recently requested for display.
func (s *Strategy) LastRequestedURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRequestedURL
}

// SetAspectRatio records the ratio of the content on screen. Reports while
// hidden are dropped and a ratio that cannot drive layout clears it.
func (s *Strategy) SetAspectRatio(ratio float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.visible {
		return
	}
	if !preview.ValidRatio(ratio) {
		ratio = 0
	}
	s.aspectRatio = ratio
}

// AspectRatio returns the reported ratio, or 0 when none is known.
func (s *Strategy) AspectRatio() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aspectRatio
}

func (s *Strategy) RenderStyle() preview.Style {
	s.mu.Lock()
	visible, ratio := s.visible, s.aspectRatio
	s.mu.Unlock()

	switch {
	case !visible:
		return preview.HiddenStyle()
	case ratio == 0:
		return preview.VisibleStyle()
	default:
		return preview.SizedStyle(ratio, s.host.Viewport())
	}
}

func (s *Strategy) ReactsToSizeUpdates() bool { return true }
func (s *Strategy) ShouldTrackLoading() bool  { return true }
func (s *Strategy) UsesWebView() bool         { return true }

func (s *Strategy) SetDebug(debug bool) { s.trace.SetEnabled(debug) }

var (
	_ preview.Strategy      = (*Strategy)(nil)
	_ preview.SurfaceHolder = (*Strategy)(nil)
	_ preview.RatioReporter = (*Strategy)(nil)
)
