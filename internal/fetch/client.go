package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"dunkest-picker/internal/store"
)

// ErrStatus is wrapped by every non-2xx response error.
var ErrStatus = errors.New("unexpected status")

// StatusError reports a non-2xx response.
type StatusError struct {
	Path string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s failed: %d body=%s", e.Path, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrStatus }

const maxErrorBody = 512

type Client struct {
	HTTP         *http.Client
	Store        *store.JSONStore
	BaseURL      string
	UserAgent    string
	Limiter      *rate.Limiter
	Breaker      *gobreaker.CircuitBreaker
	MaxAttempts  int
	Backoff      time.Duration
	PrettyWrite  bool
	UseCache     bool
	DisableWrite bool
}

func NewClient(st *store.JSONStore) *Client {
	return &Client{
		HTTP:        &http.Client{Timeout: 60 * time.Second},
		Store:       st,
		BaseURL:     "https://www.dunkest.com/api",
		UserAgent:   "Mozilla/5.0",
		Limiter:     rate.NewLimiter(rate.Limit(1), 1),
		Breaker:     NewBreaker("dunkest"),
		MaxAttempts: 3,
		Backoff:     500 * time.Millisecond,
		PrettyWrite: true,
	}
}

// NewBreaker trips after three consecutive failed attempts and stays open for
// the rest of a typical run.
func NewBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// 4xx is the caller's fault, not the upstream's.
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < 500 && se.Code != http.StatusTooManyRequests
			}
			return err == nil
		},
	})
}

// FetchRaw downloads urlPath (like "/stats/table?...") and writes it to relPath.
// Returns raw bytes (from cache or network).
func (c *Client) FetchRaw(ctx context.Context, urlPath string, relPath string, force bool) ([]byte, error) {
	if !force && c.UseCache && c.Store != nil && c.Store.Exists(relPath) {
		log.Debug().Str("path", c.Store.Path(relPath)).Msg("using cached payload")
		return c.Store.ReadRaw(relPath)
	}

	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var (
		body []byte
		err  error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		body, err = c.attempt(ctx, urlPath)
		if err == nil {
			break
		}
		if !retryable(ctx, err) || attempt == attempts {
			return nil, err
		}

		log.Warn().Err(err).Int("attempt", attempt).Str("path", urlPath).Msg("request failed, retrying")
		if err := sleepCtx(ctx, c.Backoff*time.Duration(attempt)); err != nil {
			return nil, err
		}
	}

	if !c.DisableWrite && c.Store != nil {
		if err := c.Store.WriteRaw(relPath, body, c.PrettyWrite); err != nil {
			return nil, err
		}
	}
	return body, nil
}

func (c *Client) attempt(ctx context.Context, urlPath string) ([]byte, error) {
	if c.Breaker == nil {
		return c.get(ctx, urlPath)
	}
	out, err := c.Breaker.Execute(func() (any, error) {
		return c.get(ctx, urlPath)
	})
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

func (c *Client) get(ctx context.Context, urlPath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+urlPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", urlPath, err)
	}
	log.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("stats api response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &StatusError{Path: urlPath, Code: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests
	}
	return true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
