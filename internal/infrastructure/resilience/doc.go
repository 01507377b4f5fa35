/*
Package resilience provides the circuit breaker that guards outbound fetches
made on behalf of previews.

Resolution and surface loads share one breaker per client, so a host that keeps
failing stops being hammered by every repeated Show. Loads aborted by a newer
Show or Hide surface as context cancellation and are not counted as failures.

# States

  - Closed: requests pass through

  - Open: requests fail immediately with ErrCircuitOpen

  - Half-Open: a limited number of probes decide whether to close again

    Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
    |
    [failure]
    v
    Open

# Usage

	breaker := resilience.New("preview-fetch", resilience.Settings{
		ReadyToTrip: func(c resilience.Counts) bool { return c.ConsecutiveFailures >= 5 },
	})
	resp, err := resilience.Do(breaker, func() (*resty.Response, error) {
		return req.Get(url)
	})
*/
package resilience
