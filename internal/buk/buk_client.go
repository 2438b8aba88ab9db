// Package buk talks to the BUK HR API: the process-periods endpoint
// and the paginated employees endpoint. It owns the transport concerns
// the rest of the exporter must never deal with: auth header, timeout,
// request pacing and bounded retry on transient statuses.
package buk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-buk-export/internal/shared/apperror"
)

const (
	defaultPageSize   = 1000
	defaultTimeout    = 20 * time.Second
	defaultMaxRetries = 5
	defaultRate       = 10 // requests per second
)

type Client struct {
	baseURL    string
	token      string
	pageSize   int
	maxRetries uint64
	client     *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.client = c }
}

func WithPageSize(n int) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.pageSize = n
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.client.Timeout = d }
}

func WithMaxRetries(n int) Option {
	return func(cl *Client) {
		if n >= 0 {
			cl.maxRetries = uint64(n)
		}
	}
}

func WithRateLimit(perSecond float64) Option {
	return func(cl *Client) {
		if perSecond > 0 {
			cl.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		token:      token,
		pageSize:   defaultPageSize,
		maxRetries: defaultMaxRetries,
		client:     &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultRate), 1),
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = c.logger.Named("buk.client")
	return c
}

// PageSize reports the page size the client requests from the API.
func (c *Client) PageSize() int { return c.pageSize }

// transient statuses worth retrying; everything else fails the call
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// get fetches a URL with pacing and capped exponential retry on
// transient statuses. Non-success responses and exhausted retries come
// back as *apperror.AppError carrying the last HTTP status.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	attempt := 0
	op := func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("auth_token", c.token)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Connection", "keep-alive")

		resp, err := c.client.Do(req)
		if err != nil {
			// network errors are transient until retries run out
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			appErr := apperror.New(
				apperror.CodeFetchFailed,
				fmt.Sprintf("GET %s returned %d", url, resp.StatusCode),
				resp.StatusCode,
			)
			if resp.StatusCode == http.StatusUnauthorized {
				return backoff.Permanent(apperror.ErrUnauthorized)
			}
			if retryable(resp.StatusCode) {
				c.logger.Warn("transient upstream status, will retry",
					zap.Int("status", resp.StatusCode),
					zap.Int("attempt", attempt),
					zap.String("url", url),
				)
				return appErr
			}
			return backoff.Permanent(appErr)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries),
		ctx,
	)
	if err := backoff.Retry(op, policy); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.Wrap(err, apperror.CodeFetchFailed, fmt.Sprintf("GET %s failed", url), 0)
	}
	return body, nil
}
