package surface

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/AgentOS/preview/internal/client"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// DefaultMaxBytes caps the size of a loaded document.
const DefaultMaxBytes int64 = 10 << 20

var ErrTooLarge = errors.New("document exceeds size limit")

// Proxy is a Surface that fetches pages server-side and keeps a sanitized
// snapshot. Scripts, frames, plugins, inline handlers and tracking pixels
// never reach the snapshot, so nothing injected by the page can execute.
type Proxy struct {
	id       string
	client   *client.Client
	policy   *bluemonday.Policy
	maxBytes int64
	logger   *zap.Logger

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current string
	muted   bool
	doc     Document
}

// ProxyOption customizes a Proxy.
type ProxyOption func(*Proxy)

// WithMaxBytes limits how much of a response body is read.
func WithMaxBytes(n int64) ProxyOption {
	return func(p *Proxy) {
		if n > 0 {
			p.maxBytes = n
		}
	}
}

// WithLogger sets the logger used for load tracing.
func WithLogger(logger *zap.Logger) ProxyOption {
	return func(p *Proxy) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProxy creates a proxy surface fetching through c.
func NewProxy(c *client.Client, opts ...ProxyOption) *Proxy {
	p := &Proxy{
		id:       uuid.NewString(),
		client:   c,
		policy:   newPolicy(),
		maxBytes: DefaultMaxBytes,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(zap.String("surface_id", p.id))
	return p
}

// ID returns the surface's unique identifier.
func (p *Proxy) ID() string {
	return p.id
}

// Stop interrupts the in-flight navigation.
func (p *Proxy) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.interruptLocked()
}

// SetAudioMuted mutes or unmutes every media element of the document.
func (p *Proxy) SetAudioMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted == muted {
		return
	}
	p.muted = muted
	if p.doc.HTML != "" {
		p.doc.HTML = applyMuted(p.doc.HTML, muted)
	}
	p.doc.Muted = muted
}

// CurrentURL returns the URL of the committed document.
func (p *Proxy) CurrentURL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Document returns a copy of the committed document.
func (p *Proxy) Document() Document {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc
}

// Navigate loads target, superseding any in-flight navigation.
func (p *Proxy) Navigate(ctx context.Context, target string) error {
	p.mu.Lock()
	p.interruptLocked()
	p.seq++
	seq := p.seq
	loadCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()
	defer cancel()

	var (
		doc Document
		err error
	)
	if target == BlankURL {
		doc = Document{URL: BlankURL}
	} else {
		doc, err = p.load(loadCtx, target)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.seq || loadCtx.Err() != nil {
		return fmt.Errorf("%s: %w", target, ErrAborted)
	}
	p.cancel = nil
	if err != nil {
		return fmt.Errorf("navigate %s: %w", target, err)
	}

	doc.LoadedAt = time.Now()
	doc.Muted = p.muted
	if p.muted && doc.HTML != "" {
		doc.HTML = applyMuted(doc.HTML, true)
	}
	p.doc = doc
	p.current = doc.URL
	p.logger.Debug("navigation committed", zap.String("url", doc.URL))
	return nil
}

// interruptLocked cancels the running load and invalidates its commit.
func (p *Proxy) interruptLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
	p.seq++
}

func (p *Proxy) load(ctx context.Context, target string) (Document, error) {
	req, err := p.client.Request(ctx)
	if err != nil {
		return Document{}, err
	}
	req.SetDoNotParseResponse(true).
		SetHeader("Accept", "text/html,application/xhtml+xml,image/*,video/*;q=0.9,*/*;q=0.8").
		SetHeader("DNT", "1")

	resp, err := p.client.Execute(func() (*resty.Response, error) {
		return req.Get(target)
	})
	if err != nil {
		closeBody(resp)
		return Document{}, err
	}
	body := resp.RawBody()
	defer body.Close()

	if code := resp.StatusCode(); code < http.StatusOK || code >= http.StatusBadRequest {
		return Document{}, fmt.Errorf("HTTP %d", code)
	}

	data, err := io.ReadAll(io.LimitReader(body, p.maxBytes+1))
	if err != nil {
		return Document{}, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > p.maxBytes {
		return Document{}, ErrTooLarge
	}

	final := target
	if resp.RawResponse != nil && resp.RawResponse.Request != nil {
		final = resp.RawResponse.Request.URL.String()
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = mimetype.Detect(data).String()
	}

	return p.render(data, contentType, final)
}

// closeBody releases an unparsed response body left behind by a failed request.
func closeBody(resp *resty.Response) {
	if resp != nil && resp.RawBody() != nil {
		resp.RawBody().Close()
	}
}
