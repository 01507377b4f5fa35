package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/AgentOS/preview/internal/infrastructure/resilience"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures a Client.
type Options struct {
	Name              string
	UserAgent         string
	Timeout           time.Duration
	Retries           int
	MaxRedirects      int
	RequestsPerSecond float64
	Logger            *zap.Logger
}

// DefaultOptions returns the settings used for preview fetches.
func DefaultOptions() Options {
	return Options{
		Name:         "preview-fetch",
		UserAgent:    "Mozilla/5.0 (AgentOS Preview/1.0) AppleWebKit/537.36 (KHTML, like Gecko)",
		Timeout:      30 * time.Second,
		Retries:      2,
		MaxRedirects: 10,
	}
}

// Client wraps resty with rate limiting and a circuit breaker. Both the
// resolver and the rendering surface fetch through it.
type Client struct {
	Resty   *resty.Client
	Limiter *rate.Limiter
	Breaker *resilience.Breaker
	mu      sync.RWMutex
}

// New creates a Client from options.
func New(opts Options) *Client {
	if opts.Name == "" {
		opts.Name = "preview-fetch"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	logger := opts.Logger

	// retryablehttp owns retries and backoff. Redirects are left to resty's
	// policy, so the inner client hands every 3xx back unfollowed.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.Retries
	retryClient.RetryWaitMin = 250 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	restyClient := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent)
	restyClient.SetTransport(&retryablehttp.RoundTripper{Client: retryClient})
	if opts.MaxRedirects > 0 {
		restyClient.SetRedirectPolicy(resty.FlexibleRedirectPolicy(opts.MaxRedirects))
	} else {
		restyClient.SetRedirectPolicy(resty.NoRedirectPolicy())
	}

	breaker := resilience.New(opts.Name, resilience.Settings{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 10 ||
				(counts.Requests >= 20 && float64(counts.TotalFailures)/float64(counts.Requests) > 0.7)
		},
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("fetch circuit changed state",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})

	c := &Client{
		Resty:   restyClient,
		Breaker: breaker,
	}
	c.SetRateLimit(opts.RequestsPerSecond)
	return c
}

// SetTimeout configures request timeout
func (c *Client) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Resty.SetTimeout(d)
}

// SetRateLimit configures outbound requests per second; zero or less is unlimited.
func (c *Client) SetRateLimit(rps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rps <= 0 {
		c.Limiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	c.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// Request creates a request bound to ctx, after the breaker and limiter agree.
func (c *Client) Request(ctx context.Context) (*resty.Request, error) {
	if c.Breaker.State() == resilience.StateOpen {
		return nil, resilience.ErrCircuitOpen
	}

	c.mu.RLock()
	limiter := c.Limiter
	c.mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Resty.R().SetContext(ctx), nil
}

// Execute runs fn with circuit breaker protection.
func (c *Client) Execute(fn func() (*resty.Response, error)) (*resty.Response, error) {
	resp, err := resilience.Do(c.Breaker, fn)
	if err == resilience.ErrCircuitOpen {
		return nil, fmt.Errorf("remote host unavailable: %w", err)
	}
	return resp, err
}

// BreakerState returns the current circuit breaker state
func (c *Client) BreakerState() resilience.State {
	return c.Breaker.State()
}
