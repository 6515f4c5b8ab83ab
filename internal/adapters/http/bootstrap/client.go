// Package bootstrap fetches the bootstrap-static snapshot over HTTP.
package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/okian/fplpulse/internal/domain/model"
	"github.com/okian/fplpulse/pkg/metrics"
)

// Client fetches one snapshot per call. The response is decoded and
// validated as a whole; any failure yields no snapshot.
type Client struct {
	url       string
	timeout   time.Duration
	retries   int
	retryWait time.Duration
	retryMax  time.Duration
	userAgent string
	now       func() time.Time

	http     *resty.Client
	validate *validator.Validate
}

// New creates a bootstrap client with configuration options.
func New(opts ...Option) *Client {
	c := &Client{
		url:       DefaultURL,
		timeout:   DefaultTimeout,
		retryWait: DefaultRetryWait,
		retryMax:  DefaultRetryMax,
		userAgent: DefaultUserAgent,
		now:       time.Now,
		validate:  validator.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = resty.New().
		SetTimeout(c.timeout).
		SetRetryCount(c.retries).
		SetRetryWaitTime(c.retryWait).
		SetRetryMaxWaitTime(c.retryMax).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", c.userAgent).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || (r != nil && r.StatusCode() >= http.StatusInternalServerError)
		})
	return c
}

// URL returns the endpoint the client fetches.
func (c *Client) URL() string { return c.url }

// Fetch performs the GET and returns the snapshot. Transport errors and
// non-2xx responses wrap model.ErrFetchFailure; undecodable or incomplete
// payloads wrap model.ErrMalformedData.
func (c *Client) Fetch(ctx context.Context) (model.Snapshot, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		metrics.RecordFetchStatus("error")
		return model.Snapshot{}, fmt.Errorf("get %s: %w: %w", c.url, err, model.ErrFetchFailure)
	}
	metrics.RecordFetchStatus(strconv.Itoa(resp.StatusCode()))
	if !resp.IsSuccess() {
		return model.Snapshot{}, fmt.Errorf("get %s: %w %d: %s: %w",
			c.url, ErrStatus, resp.StatusCode(), snippet(resp.Body()), model.ErrFetchFailure)
	}

	return c.decode(resp.Body(), c.now())
}

func (c *Client) decode(body []byte, at time.Time) (model.Snapshot, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %w: %w", ErrDecode, err, model.ErrMalformedData)
	}
	if err := c.validate.Struct(p); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %w: %w", ErrInvalidPayload, err, model.ErrMalformedData)
	}

	snap := model.Snapshot{
		Players:   make([]model.RawPlayer, 0, len(p.Elements)),
		Teams:     make([]model.RawTeam, 0, len(p.Teams)),
		FetchedAt: at,
	}
	for _, e := range p.Elements {
		snap.Players = append(snap.Players, e.toModel())
	}
	for _, t := range p.Teams {
		snap.Teams = append(snap.Teams, t.toModel())
	}
	return snap, nil
}

func snippet(body []byte) string {
	if len(body) > maxErrorBodyBytes {
		body = body[:maxErrorBodyBytes]
	}
	return strconv.Quote(string(body))
}
