package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dnldd/bazaar/shared"
	"github.com/peterldowns/testy/assert"
)

const bazaarData = `{
	"success": true,
	"lastUpdated": 1700000000000,
	"products": {
		"ENCHANTED_BOOK": {
			"product_id": "ENCHANTED_BOOK",
			"sell_summary": [
				{"amount": 3, "pricePerUnit": 10, "orders": 1},
				{"amount": 1, "pricePerUnit": 5, "orders": 2}
			],
			"buy_summary": [
				{"amount": 2, "pricePerUnit": 20, "orders": 2},
				{"amount": 4, "pricePerUnit": 8, "orders": 1}
			]
		},
		"INK_SACK:3": {
			"product_id": "INK_SACK:3",
			"sell_summary": [],
			"buy_summary": []
		}
	}
}`

func setupServer(t *testing.T, status int, body string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func TestBazaarConfigValidate(t *testing.T) {
	// Ensure a bazaar client cannot be created without a base url.
	_, err := NewBazaarClient(&BazaarConfig{})
	assert.Error(t, err)

	// Ensure a bazaar client cannot be created with a negative timeout.
	_, err = NewBazaarClient(&BazaarConfig{BaseURL: BaseURL, Timeout: -time.Second})
	assert.Error(t, err)

	// Ensure a bazaar client can be created with the default timeout.
	client, err := NewBazaarClient(&BazaarConfig{BaseURL: BaseURL})
	assert.NoError(t, err)
	assert.Equal(t, client.httpc.Timeout, defaultTimeout)
}

func TestFetchProduct(t *testing.T) {
	server := setupServer(t, http.StatusOK, bazaarData)
	client, err := NewBazaarClient(&BazaarConfig{BaseURL: server.URL, Timeout: time.Second})
	assert.NoError(t, err)

	ctx := context.Background()

	// Ensure a listed product can be fetched.
	summary, err := client.FetchProduct(ctx, "ENCHANTED_BOOK")
	assert.NoError(t, err)
	assert.Equal(t, summary.ProductID, "ENCHANTED_BOOK")
	assert.Equal(t, len(summary.SellSummary), 2)
	assert.Equal(t, len(summary.BuySummary), 2)
	assert.Equal(t, summary.SellSummary[0], shared.PriceEntry{Amount: 3, PricePerUnit: 10, Orders: 1})
	assert.Equal(t, summary.BuySummary[1], shared.PriceEntry{Amount: 4, PricePerUnit: 8, Orders: 1})

	// Ensure ids with path characters are matched exactly.
	summary, err = client.FetchProduct(ctx, "INK_SACK:3")
	assert.NoError(t, err)
	assert.Equal(t, len(summary.SellSummary), 0)
	assert.Equal(t, len(summary.BuySummary), 0)

	// Ensure an unlisted product is reported as not found.
	_, err = client.FetchProduct(ctx, "ENCHANTED_BOOK_ITEM")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrProductNotFound))
}

func TestFetchProductFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unexpected status", status: http.StatusServiceUnavailable, body: `{"success":false}`},
		{name: "malformed json", status: http.StatusOK, body: `{"products": {`},
		{name: "unsuccessful request", status: http.StatusOK, body: `{"success":false,"cause":"rate limited"}`},
		{name: "missing products", status: http.StatusOK, body: `{"success":true}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := setupServer(t, test.status, test.body)
			client, err := NewBazaarClient(&BazaarConfig{BaseURL: server.URL, Timeout: time.Second})
			assert.NoError(t, err)

			// Ensure transport and parse failures are not mistaken for a missing product.
			_, err = client.FetchProduct(context.Background(), "ENCHANTED_BOOK")
			assert.Error(t, err)
			assert.False(t, errors.Is(err, shared.ErrProductNotFound))
		})
	}

	// Ensure an unreachable endpoint errors.
	client, err := NewBazaarClient(&BazaarConfig{BaseURL: "http://127.0.0.1:0", Timeout: time.Second})
	assert.NoError(t, err)
	_, err = client.FetchProduct(context.Background(), "ENCHANTED_BOOK")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, shared.ErrProductNotFound))
}

func TestParseProduct(t *testing.T) {
	// Ensure products can be parsed from raw bazaar data.
	summary, err := ParseProduct([]byte(bazaarData), "ENCHANTED_BOOK")
	assert.NoError(t, err)

	prices := shared.ExtractPrices(summary)
	assert.Equal(t, prices, shared.Prices{MinBuy: 8, MaxBuy: 20, MinSell: 5, MaxSell: 10})
}
