package bootstrap

import "time"

// Defaults for the bootstrap client.
const (
	DefaultURL        = "https://fantasy.premierleague.com/api/bootstrap-static/"
	DefaultTimeout    = 30 * time.Second
	DefaultRetryWait  = 500 * time.Millisecond
	DefaultRetryMax   = 5 * time.Second
	DefaultUserAgent  = "fplpulse/1.0"
	maxErrorBodyBytes = 256
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithURL sets the bootstrap-static endpoint.
func WithURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.url = url
		}
	}
}

// WithTimeout bounds a single request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetries sets how many times transport errors and 5xx responses are retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithRetryWait sets the initial and maximum backoff between retries.
func WithRetryWait(wait, maxWait time.Duration) Option {
	return func(c *Client) {
		if wait > 0 && maxWait >= wait {
			c.retryWait = wait
			c.retryMax = maxWait
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithClock sets the source of the snapshot timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}
