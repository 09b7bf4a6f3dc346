package shared

const (
	// PriceSentinel is the starting value for running price minimums. It is left in place
	// when a summary has no entries.
	PriceSentinel = 99999999999.0
)

// Prices represents the price extrema of a product's order book summary.
type Prices struct {
	MinBuy  float64
	MaxBuy  float64
	MinSell float64
	MaxSell float64
}

// ExtractPrices computes the price extrema of the provided product summary.
func ExtractPrices(summary *ProductSummary) Prices {
	prices := Prices{
		MinBuy:  PriceSentinel,
		MinSell: PriceSentinel,
	}

	for idx := range summary.SellSummary {
		price := summary.SellSummary[idx].PricePerUnit
		if prices.MinSell > price {
			prices.MinSell = price
		}
		if prices.MaxSell < price {
			prices.MaxSell = price
		}
	}

	for idx := range summary.BuySummary {
		price := summary.BuySummary[idx].PricePerUnit
		if prices.MinBuy > price {
			prices.MinBuy = price
		}
		if prices.MaxBuy < price {
			prices.MaxBuy = price
		}
	}

	return prices
}

// InstantBuy returns the instant buy price.
func (p *Prices) InstantBuy() float64 {
	return p.MinBuy
}

// InstantSell returns the instant sell price.
func (p *Prices) InstantSell() float64 {
	return p.MaxSell
}

// BuyOrder returns the buy order price. It mirrors the instant sell price.
func (p *Prices) BuyOrder() float64 {
	return p.MaxSell
}

// SellOrder returns the sell order price. It mirrors the instant buy price.
func (p *Prices) SellOrder() float64 {
	return p.MinBuy
}

// Sampled returns the (buy, sell) pair a sample window is advanced with.
func (p *Prices) Sampled() (float64, float64) {
	return p.MinBuy, p.MaxSell
}
