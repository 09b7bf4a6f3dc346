package shared

import (
	"errors"
)

var (
	// ErrProductNotFound is returned when a bazaar snapshot does not list the requested product.
	ErrProductNotFound = errors.New("product not found")
)

// PriceEntry represents an aggregated order book entry for a product.
type PriceEntry struct {
	Amount       int64
	PricePerUnit float64
	Orders       int64
}

// ProductSummary represents the order book summary of a single bazaar product.
type ProductSummary struct {
	ProductID   string
	SellSummary []PriceEntry
	BuySummary  []PriceEntry
}
