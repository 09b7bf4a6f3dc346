package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dnldd/bazaar/shared"
	"github.com/tidwall/gjson"
)

const (
	// BaseURL is the public bazaar endpoint.
	BaseURL = "https://api.hypixel.net/skyblock/bazaar"
	// defaultTimeout is the default http request timeout.
	defaultTimeout = time.Second * 5
)

// BazaarConfig represents the configuration for the bazaar client.
type BazaarConfig struct {
	// BaseURL is the bazaar endpoint.
	BaseURL string
	// Timeout is the http request timeout.
	Timeout time.Duration
}

// Validate asserts the config sane inputs.
func (cfg *BazaarConfig) Validate() error {
	var errs error

	if cfg.BaseURL == "" {
		errs = errors.Join(errs, fmt.Errorf("bazaar base url cannot be an empty string"))
	}
	if cfg.Timeout < 0 {
		errs = errors.Join(errs, fmt.Errorf("bazaar request timeout cannot be negative"))
	}

	return errs
}

// BazaarClient represents the bazaar API client.
type BazaarClient struct {
	cfg   *BazaarConfig
	httpc http.Client
}

// Ensure the BazaarClient implements the BazaarFetcher interface.
var _ shared.BazaarFetcher = (*BazaarClient)(nil)

// NewBazaarClient instantiates a new bazaar client.
func NewBazaarClient(cfg *BazaarConfig) (*BazaarClient, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating bazaar config: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &BazaarClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: timeout},
	}, nil
}

// FetchProduct fetches the full bazaar catalog and returns the summary of the provided
// product id.
func (c *BazaarClient) FetchProduct(ctx context.Context, productID string) (*shared.ProductSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating bazaar request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching bazaar data: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected bazaar response status %d: %s", resp.StatusCode, string(body))
	}

	return ParseProduct(body, productID)
}

// ParseProduct parses the summary of the provided product id from bazaar json data.
func ParseProduct(data []byte, productID string) (*shared.ProductSummary, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("malformed bazaar response")
	}

	res := gjson.ParseBytes(data)

	success := res.Get("success")
	if success.Exists() && !success.Bool() {
		return nil, fmt.Errorf("bazaar request unsuccessful: %s", res.Get("cause").String())
	}

	products := res.Get("products")
	if !products.IsObject() {
		return nil, errors.New("no products listed in bazaar response")
	}

	var product gjson.Result
	products.ForEach(func(key, value gjson.Result) bool {
		if key.String() == productID {
			product = value
			return false
		}

		return true
	})

	if !product.Exists() {
		return nil, fmt.Errorf("%s: %w", productID, shared.ErrProductNotFound)
	}

	summary := &shared.ProductSummary{
		ProductID:   productID,
		SellSummary: parsePriceEntries(product.Get("sell_summary").Array()),
		BuySummary:  parsePriceEntries(product.Get("buy_summary").Array()),
	}

	return summary, nil
}

// parsePriceEntries parses order book summary entries from the provided json data.
func parsePriceEntries(data []gjson.Result) []shared.PriceEntry {
	entries := make([]shared.PriceEntry, len(data))
	for idx := range data {
		entries[idx] = shared.PriceEntry{
			Amount:       data[idx].Get("amount").Int(),
			PricePerUnit: data[idx].Get("pricePerUnit").Float(),
			Orders:       data[idx].Get("orders").Int(),
		}
	}

	return entries
}
