package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"adpulse/internal/domain"
	"adpulse/pkg/logger"
	"adpulse/pkg/metrics"

	"golang.org/x/time/rate"
)

// implements domain.RecordSource against the ads platform reporting API
type PlatformClient struct {
	client      *http.Client
	baseURL     string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

// creates a new ads platform client
func NewPlatformClient(baseURL string, timeout time.Duration, rps int, logger *logger.Logger, metrics *metrics.Metrics) *PlatformClient {
	return &PlatformClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:     baseURL,
		logger:      logger,
		metrics:     metrics,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), 10),
	}
}

type recordsResponse struct {
	Data []domain.PerformanceRecord `json:"data"`
}

// FetchRecords fetches performance records for one entity level and date
// range, optionally broken down by a dimension. Dates are YYYY-MM-DD.
func (c *PlatformClient) FetchRecords(ctx context.Context, level domain.Level, from, to string, dimension string) ([]domain.PerformanceRecord, error) {
	start := time.Now()

	// Apply rate limiting
	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordPlatformAPIFailure("rate_limit")
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	endpoint, err := c.buildURL(level, from, to, dimension)
	if err != nil {
		c.metrics.RecordPlatformAPIFailure("bad_url")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.metrics.RecordPlatformAPIFailure("request_creation")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordPlatformAPIFailure("network_error")
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordPlatformAPICall(fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return nil, fmt.Errorf("ads platform API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordPlatformAPIFailure("read_body")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var payload recordsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		c.metrics.RecordPlatformAPIFailure("decode")
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}

	c.metrics.RecordPlatformAPICall("success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"level":    level,
		"from":     from,
		"to":       to,
		"records":  len(payload.Data),
		"duration": duration,
	}).Debug("Fetched performance records")

	return payload.Data, nil
}

func (c *PlatformClient) buildURL(level domain.Level, from, to, dimension string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid platform API URL: %w", err)
	}
	q := u.Query()
	q.Set("level", string(level))
	q.Set("from", from)
	q.Set("to", to)
	if dimension != "" {
		q.Set("breakdown", dimension)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
