package preview

import (
	"strings"
	"sync"
)

// callLog records calls across several fake strategies in order.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeStrategy struct {
	name    string
	prefix  string
	log     *callLog
	visible bool
	url     string
	debug   bool
	sized   bool
}

func newFake(name, prefix string, log *callLog) *fakeStrategy {
	return &fakeStrategy{name: name, prefix: prefix, log: log}
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Match(domain, url string) bool {
	return domain != "" && url != "" && strings.HasPrefix(url, f.prefix)
}

func (f *fakeStrategy) Show(url string) {
	f.log.add(f.name + ".show")
	f.visible = true
	f.url = url
}

func (f *fakeStrategy) Hide() {
	f.log.add(f.name + ".hide")
	f.visible = false
}

func (f *fakeStrategy) IsVisible() bool { return f.visible }

func (f *fakeStrategy) RenderStyle() Style {
	if !f.visible {
		return HiddenStyle()
	}
	return VisibleStyle()
}

func (f *fakeStrategy) ReactsToSizeUpdates() bool { return f.sized }
func (f *fakeStrategy) ShouldTrackLoading() bool  { return false }
func (f *fakeStrategy) UsesWebView() bool         { return false }
func (f *fakeStrategy) SetDebug(debug bool)       { f.debug = debug }

type countingObserver struct {
	shown     map[string]int
	unmatched int
	hidden    int
}

func (o *countingObserver) PreviewShown(strategy string) {
	if o.shown == nil {
		o.shown = make(map[string]int)
	}
	o.shown[strategy]++
}

func (o *countingObserver) PreviewUnmatched() { o.unmatched++ }
func (o *countingObserver) PreviewsHidden()   { o.hidden++ }
