package shared

// Sample represents a single sampled pair of bazaar prices.
type Sample struct {
	// Timestamp is the ordinal of the sample, assigned by the window it was added to.
	Timestamp int64
	// Buy is the sampled buy price.
	Buy float64
	// Sell is the sampled sell price.
	Sell float64
}
