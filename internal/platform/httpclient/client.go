// Package httpclient is the single network primitive of the pipeline: a GET
// client with an identifying header, bounded retry with exponential backoff,
// and a courtesy rate limit shared by all upstream calls.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/einor12/nhl-pp1-targets/internal/platform/logging"
	"github.com/einor12/nhl-pp1-targets/internal/platform/resilience"
)

const (
	defaultUserAgent   = "NHL-PP1-Targets/1.0 (+https://example.com)"
	defaultTimeout     = 20 * time.Second
	defaultMaxAttempts = 3
	backoffBase        = 1 * time.Second
	backoffCap         = 5 * time.Second
	maxBodyBytes       = 6 << 20
)

var errTransient = crerr.New("upstream transient failure")

// IsTransient reports whether err came from a retryable transport or status
// failure, as opposed to a decode or caller error.
func IsTransient(err error) bool {
	return crerr.Is(err, errTransient)
}

type Config struct {
	HTTPClient        *http.Client
	UserAgent         string
	Timeout           time.Duration
	MaxAttempts       int
	RequestsPerMinute int
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	userAgent      string
	maxAttempts    int
	limiter        *rate.Limiter
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	backoff        func(attempt int) time.Duration
}

func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = defaultMaxAttempts
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		userAgent:      userAgent,
		maxAttempts:    maxAttempts,
		limiter:        limiter,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		backoff:        backoffDelay,
	}
}

// Get fetches rawURL with the optional query params merged in. Concurrent
// identical requests are collapsed into one upstream call. An empty 2xx body
// is a valid result, never a retry trigger.
func (c *Client) Get(ctx context.Context, rawURL string, params map[string]string) ([]byte, error) {
	fullURL, err := buildURL(rawURL, params)
	if err != nil {
		return nil, err
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "circuit breaker rejected request", "url", fullURL, "state", c.breaker.State())
			return nil, fmt.Errorf("%w: upstream temporarily unavailable", errTransient)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && IsTransient(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

// GetJSON fetches and decodes a JSON payload into target.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params map[string]string, target any) ([]byte, error) {
	raw, err := c.Get(ctx, rawURL, params)
	if err != nil {
		return nil, err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode upstream payload: %w", err)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json, text/html, */*")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				lastErr = fmt.Errorf("%w: upstream status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxAttempts {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: request failed", errTransient)
	}
	c.logger.WarnContext(ctx, "request failed after retries", "url", fullURL, "attempts", c.maxAttempts, "error", lastErr)
	return nil, lastErr
}

// backoffDelay doubles per attempt from the base, capped. Attempt is 1-based,
// so the first retry waits backoffBase.
func backoffDelay(attempt int) time.Duration {
	delay := backoffBase
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= backoffCap {
			return backoffCap
		}
	}
	if delay > backoffCap {
		return backoffCap
	}
	return delay
}

func buildURL(rawURL string, params map[string]string) (string, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", fmt.Errorf("url is required")
	}
	if len(params) == 0 {
		return rawURL, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	values := parsed.Query()
	for key, value := range params {
		values.Set(key, value)
	}
	parsed.RawQuery = values.Encode()
	return parsed.String(), nil
}

func abbreviateBody(raw []byte) string {
	const max = 200
	body := strings.TrimSpace(string(raw))
	if len(body) <= max {
		return body
	}
	return body[:max] + "..."
}
