package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultBulkURL is the MTGJSON catalog of every printing's prices.
const DefaultBulkURL = "https://mtgjson.com/api/v5/AllPrices.json"

// BulkClient downloads the full price catalog once.
type BulkClient struct {
	url        string
	httpClient *http.Client
	log        *zap.Logger
}

// NewBulkClient creates a catalog client. An empty url selects DefaultBulkURL.
func NewBulkClient(url string, timeout time.Duration, log *zap.Logger) *BulkClient {
	if url == "" {
		url = DefaultBulkURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BulkClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Fetch downloads and decodes the catalog.
func (c *BulkClient) Fetch(ctx context.Context) (Cache, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("price feed error (status %d): %s", resp.StatusCode, string(body))
	}

	cache, err := decodeBulk(resp.Body, c.log)
	if err != nil {
		return nil, fmt.Errorf("decode price feed: %w", err)
	}

	c.log.Info("price feed loaded",
		zap.Int("cards", cache.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return cache, nil
}

// bulkEntry is the only part of a catalog entry that is read.
type bulkEntry struct {
	Paper struct {
		Cardmarket struct {
			Prices struct {
				TrendPrice trendPrice `json:"trendPrice"`
			} `json:"prices"`
		} `json:"cardmarket"`
	} `json:"paper"`
}

// trendPrice accepts a number or a numeric string; anything else is 0.
type trendPrice float64

func (p *trendPrice) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*p = 0
		return nil
	}
	*p = trendPrice(f)
	return nil
}

// DecodeBulk streams the catalog object and keeps, for every card, the
// trend price of the first printing that has one. The catalog key is
// lowercased and cut at the first " (" so "Opt (XLN)" files under "opt".
func DecodeBulk(r io.Reader) (Cache, error) {
	return decodeBulk(r, zap.NewNop())
}

// decodeBulk is DecodeBulk with entries of an unexpected shape logged as
// they are skipped. Only a malformed stream is an error.
func decodeBulk(r io.Reader, log *zap.Logger) (Cache, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	cache := Cache{}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if key != "data" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("skip %q: %w", key, err)
			}
			continue
		}
		if err := decodeData(dec, cache, log); err != nil {
			return nil, err
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return cache, nil
}

func decodeData(dec *json.Decoder, cache Cache, log *zap.Logger) error {
	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return err
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("entry %q: %w", key, err)
		}
		var e bulkEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			log.Debug("skipping catalog entry", zap.String("key", key), zap.Error(err))
			continue
		}
		cache.Add(catalogName(key), float64(e.Paper.Cardmarket.Prices.TrendPrice))
	}
	return expectDelim(dec, '}')
}

func catalogName(key string) string {
	name, _, _ := strings.Cut(strings.ToLower(key), " (")
	return strings.TrimSpace(name)
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
