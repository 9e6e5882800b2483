package networks

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jalexspringer/netimpact/src/logger"
	"golang.org/x/time/rate"
)

const maxRetries = 5

// Client wraps an *http.Client with a per-network rate limiter and a
// retry loop for the throttling responses the network APIs return
// (429, and Cloudflare's 520 on the Impact side).
type Client struct {
	http       *http.Client
	limiter    *rate.Limiter
	retryAfter time.Duration
}

func NewClient(httpClient *http.Client, limiter *rate.Limiter, retryAfter time.Duration) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(time.Second), 2)
	}
	return &Client{http: httpClient, limiter: limiter, retryAfter: retryAfter}
}

// Do performs the request, waiting on the rate limiter first and retrying
// on 429/520 responses. The caller owns the response body.
func (c *Client) Do(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		req, err := build()
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != 520 {
			return resp, nil
		}
		resp.Body.Close()
		if attempt >= maxRetries {
			return nil, fmt.Errorf("request to %s still throttled (%d) after %d retries", req.URL.Host, resp.StatusCode, maxRetries)
		}
		logger.L.Warn("Request throttled, backing off",
			"host", req.URL.Host,
			"status", resp.StatusCode,
			"attempt", attempt+1,
			"wait", c.retryAfter)
		select {
		case <-time.After(c.retryAfter):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
