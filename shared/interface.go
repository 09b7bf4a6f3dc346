package shared

import (
	"context"
	"time"
)

// BazaarFetcher defines the requirements for fetching bazaar product data.
type BazaarFetcher interface {
	// FetchProduct fetches the order book summary of the provided product id. It returns
	// ErrProductNotFound if the bazaar does not list the product.
	FetchProduct(ctx context.Context, productID string) (*ProductSummary, error)
}

// Renderer defines the requirements for drawing the dashboard.
type Renderer interface {
	// Render draws the current prices of a product and the window's price history.
	Render(productID string, prices *Prices, window *SampleWindow) error
}

// Terminal defines the requirements for managing the terminal screen.
type Terminal interface {
	// Enter switches the terminal to the alternate screen.
	Enter() error
	// Restore switches the terminal back to the main screen.
	Restore() error
}

// Ticker defines the requirements for an interval tick source.
type Ticker interface {
	// C returns the channel ticks are delivered on.
	C() <-chan time.Time
	// Stop halts tick delivery.
	Stop()
}
