// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"runtime"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/wneessen/weather-aggregator/internal/logger"
)

const (
	// DefaultTimeout is the default timeout value for the HTTPClient
	DefaultTimeout = time.Second * 10
)

var (
	// version is the version of the application (will be set at build time)
	version = "dev"
	// UserAgent is the User-Agent that the HTTP client sends with API requests
	UserAgent = fmt.Sprintf("Mozilla/5.0 (%s; %s) weather-aggregator/%s (+https://github.com/wneessen/weather-aggregator/)",
		runtime.GOOS,
		runtime.GOARCH,
		version,
	)

	ErrNonPointerTarget = errors.New("target must be a non-nil pointer")
	ErrUnexpectedStatus = errors.New("upstream returned a server error")
	ErrCircuitOpen      = errors.New("circuit breaker is open")
)

// Client is a type wrapper for the Go stdlib http.Client with optional outbound rate limiting and
// a circuit breaker guarding the upstream API.
type Client struct {
	*http.Client
	logger  *logger.Logger
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit limits the outbound request rate to rps requests per second with the given burst.
// A non-positive rps disables the limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCircuitBreaker guards the client with a circuit breaker that opens after the given number of
// consecutive upstream failures and allows a probe request after cooldown. A zero failure count
// disables the breaker.
func WithCircuitBreaker(name string, failures uint32, cooldown time.Duration) Option {
	return func(c *Client) {
		if failures == 0 {
			return
		}
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     cooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				if c.logger == nil {
					return
				}
				c.logger.Warn("upstream circuit breaker changed state", slog.String("upstream", name),
					slog.String("from", from.String()), slog.String("to", to.String()))
			},
		})
	}
}

// New returns a new HTTP client
func New(logger *logger.Logger, opts ...Option) *Client {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	httpTransport := &http.Transport{TLSClientConfig: tlsConfig}
	httpClient := &http.Client{
		Timeout:   DefaultTimeout,
		Transport: httpTransport,
	}
	client := &Client{Client: httpClient, logger: logger}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Get performs a HTTP GET request for the given URL and json-unmarshals the response
// into target
func (h *Client) Get(ctx context.Context, endpoint string, target any, query url.Values, headers map[string]string) (int, error) {
	return h.GetWithTimeout(ctx, endpoint, target, query, headers, DefaultTimeout)
}

// GetWithTimeout performs a HTTP GET request for the given URL and timeout and JSON-unmarshals
// the response into target. Responses with a 5xx status code are not decoded and count as upstream
// failures for the circuit breaker. Requests are never retried.
func (h *Client) GetWithTimeout(ctx context.Context, endpoint string, target any, query url.Values, headers map[string]string, timeout time.Duration) (int, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return 0, ErrNonPointerTarget
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("outbound rate limit exceeded: %w", err)
		}
	}
	if h.breaker == nil {
		return h.get(ctx, endpoint, target, query, headers)
	}

	type result struct {
		code int
		err  error
	}
	res, err := h.breaker.Execute(func() (interface{}, error) {
		code, err := h.get(ctx, endpoint, target, query, headers)
		if err != nil && !errors.Is(err, context.Canceled) && (code == 0 || code >= http.StatusInternalServerError) {
			return result{code: code}, err
		}
		// Client side problems and decode errors do not trip the breaker.
		return result{code: code, err: err}, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return 0, fmt.Errorf("%w: %s", ErrCircuitOpen, h.breaker.Name())
	}
	r, _ := res.(result)
	if err != nil {
		return r.code, err
	}
	return r.code, r.err
}

func (h *Client) get(ctx context.Context, endpoint string, target any, query url.Values, headers map[string]string) (int, error) {
	// Prepare URL and query parameters
	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return 0, fmt.Errorf("failed to parse URL: %w", err)
	}
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	// Prepare HTTP request
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed create new HTTP request with context: %w", err)
	}
	request.Header.Set("User-Agent", UserAgent)
	request.Header.Set("Accept", "application/json")
	for k, v := range headers {
		request.Header.Set(k, v)
	}
	// Execute HTTP request
	response, err := h.Do(request)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to perform HTTP request: %w", err)
	}
	if response == nil {
		return 0, errors.New("nil response received")
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			h.logger.Error("failed to close HTTP request body", logger.Err(err))
		}
	}(response.Body)

	if response.StatusCode >= http.StatusInternalServerError {
		return response.StatusCode, fmt.Errorf("%w: %d", ErrUnexpectedStatus, response.StatusCode)
	}

	// Unmarshal the JSON API response into target
	if err = json.NewDecoder(response.Body).Decode(target); err != nil {
		return response.StatusCode, fmt.Errorf("failed to decode JSON: %w", err)
	}

	return response.StatusCode, nil
}
