package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"bookmap/internal/domain/entity"
	"bookmap/internal/observability/metrics"
	"bookmap/internal/resilience/circuitbreaker"
	"bookmap/internal/resilience/retry"
)

// Client fetches bookstore pages from the public directory.
//
// FetchPage never returns an error: transient failures are retried with
// backoff, and every remaining failure mode (HTTP error, non-JSON response,
// non-success result code, malformed items, open circuit) degrades to an
// empty slice with a diagnostic log. Store mutations elsewhere in the application must surface failures;
// this source deliberately must not.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates a directory client with the given configuration.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		breaker:    circuitbreaker.New(circuitbreaker.DirectoryAPIConfig()),
		logger:     logger,
	}
}

// FetchPage retrieves one page of directory records and adapts each into a
// domain entity. A failed fetch yields an empty, non-nil slice.
func (c *Client) FetchPage(ctx context.Context, pageNo, numOfRows int) []*entity.Bookstore {
	var result interface{}
	err := retry.WithBackoff(ctx, c.cfg.Retry, func() error {
		var execErr error
		result, execErr = c.breaker.Execute(func() (interface{}, error) {
			return c.fetchRecords(ctx, pageNo, numOfRows)
		})
		return execErr
	})
	if err != nil {
		c.logger.Warn("directory fetch failed, degrading to empty result",
			slog.Int("page", pageNo),
			slog.Int("rows", numOfRows),
			slog.Any("error", err))
		metrics.RecordDirectoryFetch(0, false)
		return []*entity.Bookstore{}
	}

	records := result.([]Record)
	stores := make([]*entity.Bookstore, 0, len(records))
	for _, rec := range records {
		stores = append(stores, Adapt(rec))
	}
	metrics.RecordDirectoryFetch(len(stores), true)
	return stores
}

func (c *Client) fetchRecords(ctx context.Context, pageNo, numOfRows int) ([]Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("serviceKey", c.cfg.ServiceKey)
	params.Set("numOfRows", strconv.Itoa(numOfRows))
	params.Set("pageNo", strconv.Itoa(pageNo))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: "directory page fetch"}
	}

	// The directory answers HTML error pages with a 200 status when the
	// service key is rejected, so the content type is part of the contract.
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return nil, fmt.Errorf("unexpected content type %q", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	if code := env.Response.Header.ResultCode; code != resultCodeOK {
		return nil, fmt.Errorf("result code %q: %s", code, env.Response.Header.ResultMsg)
	}

	return env.Response.Body.Items.Item, nil
}
