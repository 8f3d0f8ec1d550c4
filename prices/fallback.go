package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"go.uber.org/zap"
)

// DefaultFallbackURL is the Scryfall API root.
const DefaultFallbackURL = "https://api.scryfall.com"

const usdPath = "$.prices.usd"

// FallbackClient looks up a single card's current price by exact name.
// Results are never cached: every call goes to the network.
type FallbackClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *zap.Logger
}

// NewFallbackClient creates a lookup client. An empty baseURL selects DefaultFallbackURL.
func NewFallbackClient(baseURL string, timeout time.Duration, log *zap.Logger) *FallbackClient {
	if baseURL == "" {
		baseURL = DefaultFallbackURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FallbackClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "mtgtrades/1.0",
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// FetchPrice returns the card's USD price, or 0 on any failure. Failures
// are logged and never returned.
func (c *FallbackClient) FetchPrice(ctx context.Context, name string) float64 {
	if strings.TrimSpace(name) == "" {
		return 0
	}
	price, err := c.Lookup(ctx, name)
	if err != nil {
		c.log.Warn("fallback price lookup failed", zap.String("card", name), zap.Error(err))
		return 0
	}
	c.log.Debug("fallback price", zap.String("card", name), zap.Float64("usd", price))
	return price
}

// Lookup is FetchPrice with the error kept.
func (c *FallbackClient) Lookup(ctx context.Context, name string) (float64, error) {
	params := url.Values{}
	params.Set("exact", name)
	apiURL := fmt.Sprintf("%s/cards/named?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var doc any
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	return usdPrice(doc)
}

// usdPrice pulls prices.usd out of a card document. Scryfall sends it as a
// string, or null when the card has no USD market.
func usdPrice(doc any) (float64, error) {
	v, err := jsonpath.Get(usdPath, doc)
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", usdPath, err)
	}
	if list, ok := v.([]any); ok && len(list) > 0 {
		v = list[0]
	}

	var f float64
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		f = x
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("parse %s %q: %w", usdPath, x, err)
		}
	default:
		return 0, fmt.Errorf("%s: unexpected %T", usdPath, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, fmt.Errorf("%s: out of range %v", usdPath, f)
	}
	return f, nil
}
