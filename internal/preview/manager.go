package preview

import (
	"sync"

	"go.uber.org/zap"
)

type registration struct {
	strategy Strategy
	style    Style
}

// Manager owns an ordered list of strategies and keeps at most one of them
// visible. Registration order is match priority.
type Manager struct {
	mu            sync.Mutex
	registrations []*registration
	debug         bool
	logger        *zap.Logger
	observer      Observer
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(logger *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithObserver reports manager events to o.
func WithObserver(o Observer) ManagerOption {
	return func(m *Manager) { m.observer = o }
}

// NewManager registers strategies in priority order. It panics with a
// *ConfigError on a nil strategy or a duplicate name.
func NewManager(strategies []Strategy, opts ...ManagerOption) *Manager {
	m := &Manager{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}

	seen := make(map[string]struct{}, len(strategies))
	for _, s := range strategies {
		if s == nil {
			panic(&ConfigError{Reason: "nil strategy registered"})
		}
		if _, dup := seen[s.Name()]; dup {
			panic(&ConfigError{Strategy: s.Name(), Reason: "duplicate strategy name"})
		}
		seen[s.Name()] = struct{}{}
		m.registrations = append(m.registrations, &registration{
			strategy: s,
			style:    HiddenStyle(),
		})
	}
	return m
}

// Strategies returns the registered strategies in priority order.
func (m *Manager) Strategies() []Strategy {
	out := make([]Strategy, len(m.registrations))
	for i, reg := range m.registrations {
		out[i] = reg.strategy
	}
	return out
}

// Lookup returns the strategy registered under name.
func (m *Manager) Lookup(name string) (Strategy, bool) {
	for _, reg := range m.registrations {
		if reg.strategy.Name() == name {
			return reg.strategy, true
		}
	}
	return nil, false
}

// MatchIndex returns the index of the first strategy matching domain and
// url, or -1.
func (m *Manager) MatchIndex(domain, url string) int {
	for i, reg := range m.registrations {
		if reg.strategy.Match(domain, url) {
			return i
		}
	}
	return -1
}

// Match returns the first strategy matching domain and url, or nil.
func (m *Manager) Match(domain, url string) Strategy {
	if i := m.MatchIndex(domain, url); i >= 0 {
		return m.registrations[i].strategy
	}
	return nil
}

// Show hides every strategy other than the match and then shows url with
// the match. With no match all strategies end up hidden and nil is
// returned.
func (m *Manager) Show(url, domain string) Strategy {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.MatchIndex(domain, url)
	for i, reg := range m.registrations {
		if i != idx {
			reg.strategy.Hide()
		}
	}

	if idx < 0 {
		m.logger.Debug("No preview strategy matched",
			zap.String("url", url),
			zap.String("domain", domain))
		if m.observer != nil {
			m.observer.PreviewUnmatched()
		}
		return nil
	}

	match := m.registrations[idx].strategy
	if m.debug {
		m.logger.Debug("Showing preview",
			zap.String("strategy", match.Name()),
			zap.String("url", url))
	}
	match.Show(url)
	if m.observer != nil {
		m.observer.PreviewShown(match.Name())
	}
	return match
}

// Hide hides every strategy.
func (m *Manager) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, reg := range m.registrations {
		reg.strategy.Hide()
	}
	if m.observer != nil {
		m.observer.PreviewsHidden()
	}
}

// RenderStyles recomputes and caches every strategy's style, keyed by name.
func (m *Manager) RenderStyles() map[string]Style {
	m.mu.Lock()
	defer m.mu.Unlock()

	styles := make(map[string]Style, len(m.registrations))
	for _, reg := range m.registrations {
		reg.style = reg.strategy.RenderStyle()
		styles[reg.strategy.Name()] = reg.style
	}
	return styles
}

// ResizeStyles recomputes the styles of strategies that react to viewport
// size updates. Every other strategy keeps its cached style.
func (m *Manager) ResizeStyles() map[string]Style {
	m.mu.Lock()
	defer m.mu.Unlock()

	styles := make(map[string]Style, len(m.registrations))
	for _, reg := range m.registrations {
		if reg.strategy.ReactsToSizeUpdates() {
			reg.style = reg.strategy.RenderStyle()
		}
		styles[reg.strategy.Name()] = reg.style
	}
	return styles
}

// CachedStyle returns the style computed by the last RenderStyles call.
func (m *Manager) CachedStyle(name string) (Style, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, reg := range m.registrations {
		if reg.strategy.Name() == name {
			out := make(Style, len(reg.style))
			for k, v := range reg.style {
				out[k] = v
			}
			return out, true
		}
	}
	return nil, false
}

// VisiblePreview returns the visible strategy, or nil.
func (m *Manager) VisiblePreview() Strategy {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, reg := range m.registrations {
		if reg.strategy.IsVisible() {
			return reg.strategy
		}
	}
	return nil
}

// VisibilityStatus maps strategy names to their visibility.
func (m *Manager) VisibilityStatus() map[string]bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := make(map[string]bool, len(m.registrations))
	for _, reg := range m.registrations {
		status[reg.strategy.Name()] = reg.strategy.IsVisible()
	}
	return status
}

// SetDebug switches debug logging for the manager and every strategy.
func (m *Manager) SetDebug(debug bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.debug = debug
	for _, reg := range m.registrations {
		reg.strategy.SetDebug(debug)
	}
}

// Debug reports whether debug logging is on.
func (m *Manager) Debug() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.debug
}
