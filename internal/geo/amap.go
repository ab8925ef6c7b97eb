package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"pawpal/internal/logging"
)

// AMapClient implements Provider against the AMap (Gaode) REST API.
type AMapClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

// AMapConfig configures the AMap client.
type AMapConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultAMapConfig returns sensible defaults.
func DefaultAMapConfig(apiKey string) AMapConfig {
	return AMapConfig{
		APIKey:  apiKey,
		BaseURL: "https://restapi.amap.com/v3",
		Timeout: 15 * time.Second,
	}
}

// NewAMapClient creates a new AMap client.
func NewAMapClient(apiKey string) (*AMapClient, error) {
	return NewAMapClientWithConfig(DefaultAMapConfig(apiKey))
}

// NewAMapClientWithConfig creates a new AMap client with custom config.
func NewAMapClientWithConfig(config AMapConfig) (*AMapClient, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, fmt.Errorf("AMap API key is required")
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "https://restapi.amap.com/v3"
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &AMapClient{
		apiKey:      config.APIKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		minInterval: 200 * time.Millisecond,
	}, nil
}

// throttle enforces the minimum spacing between requests. The free AMap tier
// rejects bursts.
func (c *AMapClient) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elapsed := time.Since(c.lastRequest); elapsed < c.minInterval {
		time.Sleep(c.minInterval - elapsed)
	}
	c.lastRequest = time.Now()
}

func (c *AMapClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	c.throttle()

	params.Set("key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("AMap request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("AMap returned HTTP %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type amapIPResponse struct {
	Status    string `json:"status"`
	Info      string `json:"info"`
	Rectangle string `json:"rectangle"` // "lng1,lat1;lng2,lat2"
}

// Locate implements Provider via AMap's IP location endpoint. The result is a
// city-level fix: the center of the reported bounding rectangle.
func (c *AMapClient) Locate(ctx context.Context) (Fix, error) {
	var resp amapIPResponse
	if err := c.get(ctx, "/ip", url.Values{}, &resp); err != nil {
		return Fix{}, err
	}
	if resp.Status != "1" {
		return Fix{}, fmt.Errorf("AMap ip lookup rejected: %s", resp.Info)
	}

	halves := strings.Split(resp.Rectangle, ";")
	if len(halves) != 2 {
		return Fix{}, fmt.Errorf("malformed rectangle %q", resp.Rectangle)
	}
	sw, err := parseLocation(halves[0])
	if err != nil {
		return Fix{}, err
	}
	ne, err := parseLocation(halves[1])
	if err != nil {
		return Fix{}, err
	}
	fix := Fix{
		Latitude:  (sw.Latitude + ne.Latitude) / 2,
		Longitude: (sw.Longitude + ne.Longitude) / 2,
	}
	logging.Geo("ip fix %.4f,%.4f", fix.Latitude, fix.Longitude)
	return fix, nil
}

type amapRegeoResponse struct {
	Status    string `json:"status"`
	Info      string `json:"info"`
	Regeocode struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"regeocode"`
}

// ReverseGeocode implements Provider.
func (c *AMapClient) ReverseGeocode(ctx context.Context, fix Fix) (string, error) {
	params := url.Values{}
	params.Set("location", formatLocation(fix))

	var resp amapRegeoResponse
	if err := c.get(ctx, "/geocode/regeo", params, &resp); err != nil {
		return "", err
	}
	if resp.Status != "1" {
		return "", fmt.Errorf("AMap regeo rejected: %s", resp.Info)
	}
	if resp.Regeocode.FormattedAddress == "" {
		return "", fmt.Errorf("no address for %s", formatLocation(fix))
	}
	return resp.Regeocode.FormattedAddress, nil
}

type amapAroundResponse struct {
	Status string `json:"status"`
	Info   string `json:"info"`
	POIs   []struct {
		Name     string `json:"name"`
		Address  string `json:"address"`
		Distance string `json:"distance"`
		Location string `json:"location"`
	} `json:"pois"`
}

// SearchNearby implements Provider via the around search endpoint.
func (c *AMapClient) SearchNearby(ctx context.Context, fix Fix, keyword string) ([]Place, error) {
	params := url.Values{}
	params.Set("location", formatLocation(fix))
	params.Set("keywords", keyword)
	params.Set("radius", "5000")
	params.Set("sortrule", "distance")

	var resp amapAroundResponse
	if err := c.get(ctx, "/place/around", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "1" {
		return nil, fmt.Errorf("AMap around search rejected: %s", resp.Info)
	}

	places := make([]Place, 0, len(resp.POIs))
	for _, poi := range resp.POIs {
		p := Place{Name: poi.Name, Address: poi.Address, Distance: poi.Distance}
		if fix, err := parseLocation(poi.Location); err == nil {
			p.Fix = fix
		}
		places = append(places, p)
	}
	logging.Geo("around %q: %d places", keyword, len(places))
	return places, nil
}

// parseLocation parses AMap's "lng,lat" form.
func parseLocation(s string) (Fix, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Fix{}, fmt.Errorf("malformed location %q", s)
	}
	lng, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Fix{}, fmt.Errorf("malformed longitude %q", parts[0])
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Fix{}, fmt.Errorf("malformed latitude %q", parts[1])
	}
	return Fix{Latitude: lat, Longitude: lng}, nil
}

func formatLocation(fix Fix) string {
	return fmt.Sprintf("%.6f,%.6f", fix.Longitude, fix.Latitude)
}
