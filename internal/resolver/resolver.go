package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/GriffinCanCode/AgentOS/preview/internal/client"
	"github.com/GriffinCanCode/AgentOS/preview/internal/infrastructure/resilience"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var ErrUnsupportedScheme = errors.New("only http and https URLs can be resolved")

// Resolver turns a candidate URL into the URL a surface should navigate to.
type Resolver interface {
	Resolve(ctx context.Context, rawURL string) (string, error)
}

// Func adapts a function to Resolver.
type Func func(ctx context.Context, rawURL string) (string, error)

// Resolve calls f.
func (f Func) Resolve(ctx context.Context, rawURL string) (string, error) {
	return f(ctx, rawURL)
}

// Identity resolves every URL to itself.
var Identity = Func(func(_ context.Context, rawURL string) (string, error) {
	return rawURL, nil
})

// HTTP resolves URLs by following redirects to their final location.
type HTTP struct {
	client *client.Client
	logger *zap.Logger
}

// NewHTTP creates a redirect-following resolver. The client's redirect
// policy bounds how many hops are followed.
func NewHTTP(c *client.Client, logger *zap.Logger) *HTTP {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTP{client: c, logger: logger}
}

// Resolve issues HEAD, falling back to GET when HEAD fails or is refused,
// and returns the URL of the last hop.
func (r *HTTP) Resolve(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("resolve %q: %w", rawURL, ErrUnsupportedScheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("resolve %q: missing host", rawURL)
	}

	resp, err := r.do(ctx, http.MethodHead, u.String())
	switch {
	case err != nil && (ctx.Err() != nil || errors.Is(err, resilience.ErrCircuitOpen)):
		return "", fmt.Errorf("resolve %s: %w", u, err)
	case err != nil:
		r.logger.Debug("HEAD failed, retrying with GET",
			zap.String("url", u.String()),
			zap.Error(err))
	case resp.StatusCode() >= http.StatusBadRequest:
		r.logger.Debug("HEAD refused, retrying with GET",
			zap.String("url", u.String()),
			zap.Int("status", resp.StatusCode()))
	default:
		return finalURL(resp, u.String()), nil
	}

	resp, err = r.do(ctx, http.MethodGet, u.String())
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", u, err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return "", fmt.Errorf("resolve %s: HTTP %d", u, resp.StatusCode())
	}
	return finalURL(resp, u.String()), nil
}

func (r *HTTP) do(ctx context.Context, method, target string) (*resty.Response, error) {
	req, err := r.client.Request(ctx)
	if err != nil {
		return nil, err
	}
	if method == http.MethodGet {
		// Only the final location matters; the body is never read.
		req.SetDoNotParseResponse(true)
	}

	resp, err := r.client.Execute(func() (*resty.Response, error) {
		return req.Execute(method, target)
	})
	if resp != nil && method == http.MethodGet && resp.RawBody() != nil {
		resp.RawBody().Close()
	}
	return resp, err
}

func finalURL(resp *resty.Response, fallback string) string {
	if resp.RawResponse != nil && resp.RawResponse.Request != nil && resp.RawResponse.Request.URL != nil {
		return resp.RawResponse.Request.URL.String()
	}
	return fallback
}
