package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/CreativeZee/local-hub-replicator/internal/cache"
	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/logger"
	"github.com/CreativeZee/local-hub-replicator/internal/metrics"
)

// Client proxies headline requests to an upstream news provider,
// caching responses in Redis so bursts of feed loads do not burn the
// upstream quota.
type Client struct {
	baseURL    string
	apiKey     string
	cacheTTL   time.Duration
	httpClient *http.Client
}

// NewClient builds a news client.
func NewClient(baseURL, apiKey string, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		cacheTTL: cacheTTL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// TopHeadlines fetches headlines for a country and optional category.
// The raw upstream JSON is passed through untouched so clients see
// the provider's own response shape.
func (c *Client) TopHeadlines(ctx context.Context, country, category string) (json.RawMessage, error) {
	m := metrics.Get()

	if country == "" {
		country = "us"
	}
	cacheKey := fmt.Sprintf("news:%s:%s", country, category)

	if cached, ok := cache.Get(ctx, cacheKey); ok {
		m.NewsCacheHitsTotal.WithLabelValues("hit").Inc()
		return json.RawMessage(cached), nil
	}
	m.NewsCacheHitsTotal.WithLabelValues("miss").Inc()

	params := url.Values{}
	params.Set("country", country)
	if category != "" {
		params.Set("category", category)
	}
	params.Set("apiKey", c.apiKey)
	endpoint := fmt.Sprintf("%s/v2/top-headlines?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apierrors.InternalError("failed to build news request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		m.UpstreamRequestsTotal.WithLabelValues("news", "error").Inc()
		logger.Warn("news upstream unreachable", zap.Error(err))
		return nil, apierrors.UpstreamFailure("news service")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		m.UpstreamRequestsTotal.WithLabelValues("news", "error").Inc()
		return nil, apierrors.UpstreamFailure("news service")
	}
	if resp.StatusCode != http.StatusOK {
		m.UpstreamRequestsTotal.WithLabelValues("news", "error").Inc()
		logger.Warn("news upstream returned non-200",
			zap.Int("status", resp.StatusCode))
		return nil, apierrors.UpstreamFailure("news service")
	}
	m.UpstreamRequestsTotal.WithLabelValues("news", "ok").Inc()

	cache.SetEx(ctx, cacheKey, string(body), c.cacheTTL)
	return json.RawMessage(body), nil
}
