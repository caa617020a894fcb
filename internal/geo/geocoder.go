package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/CreativeZee/local-hub-replicator/internal/logger"
)

// Geocoder resolves free-text addresses to coordinates through a
// Nominatim-compatible endpoint. Resolution is best effort: callers
// treat failures as "no coordinates" and keep going.
type Geocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewGeocoder builds a geocoder against the given base URL.
func NewGeocoder(baseURL string) *Geocoder {
	return &Geocoder{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves an address to (lat, lon). ok is false when the
// address is empty, the upstream fails, or no result comes back.
func (g *Geocoder) Geocode(ctx context.Context, address string) (lat, lon float64, ok bool) {
	if address == "" {
		return 0, 0, false
	}

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s",
		g.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, false
	}
	req.Header.Set("User-Agent", "local-hub/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		logger.Warn("geocoder request failed",
			zap.String("address", address),
			zap.Error(err))
		return 0, 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("geocoder returned non-200",
			zap.String("address", address),
			zap.Int("status", resp.StatusCode))
		return 0, 0, false
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil || len(results) == 0 {
		return 0, 0, false
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
