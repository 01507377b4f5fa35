// Package client provides the outbound HTTP client shared by URL resolution
// and the rendering surface.
//
// Built on go-resty/resty over a go-retryablehttp round tripper:
//   - bounded redirect following (resty's redirect policy)
//   - retries with backoff on transport errors, 429 and 5xx (retryablehttp)
//   - optional token-bucket rate limit
//   - a resilience.Breaker so a failing host fails fast
//
// Example Usage:
//
//	c := client.New(client.DefaultOptions())
//	req, err := c.Request(ctx)
//	resp, err := c.Execute(func() (*resty.Response, error) { return req.Get(url) })
package client
