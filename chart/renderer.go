package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dnldd/bazaar/shared"
	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
)

const (
	// DefaultWidth is the default chart width in columns.
	DefaultWidth = 220
	// DefaultHeight is the default chart height in rows.
	DefaultHeight = 50
)

// RendererConfig represents the chart renderer configuration.
type RendererConfig struct {
	// Out is the destination of rendered frames.
	Out io.Writer
	// Width is the chart width in columns.
	Width int
	// Height is the chart height in rows.
	Height int
	// ClearScreen clears the terminal before every frame when set.
	ClearScreen bool
}

// Validate asserts the config sane inputs.
func (cfg *RendererConfig) Validate() error {
	var errs error

	if cfg.Out == nil {
		errs = errors.Join(errs, fmt.Errorf("renderer output cannot be nil"))
	}
	if cfg.Width <= 0 {
		errs = errors.Join(errs, fmt.Errorf("chart width must be positive"))
	}
	if cfg.Height <= 0 {
		errs = errors.Join(errs, fmt.Errorf("chart height must be positive"))
	}

	return errs
}

// Renderer draws current prices and price history charts.
type Renderer struct {
	cfg *RendererConfig
	buf *bytes.Buffer
}

// Ensure the Renderer implements the Renderer interface.
var _ shared.Renderer = (*Renderer)(nil)

// NewRenderer initializes a new chart renderer.
func NewRenderer(cfg *RendererConfig) (*Renderer, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating renderer config: %w", err)
	}

	return &Renderer{
		cfg: cfg,
		buf: bytes.NewBuffer(make([]byte, 0, 4096)),
	}, nil
}

// formatPrice formats a price with the fewest digits that represent it exactly.
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// plot draws the provided series over the [start, end) time range.
func (r *Renderer) plot(series []float64, start int64, end int64) string {
	if len(series) == 0 {
		return "no samples yet"
	}

	opts := []asciigraph.Option{
		asciigraph.Height(r.cfg.Height),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("t %d - %d", start, end)),
	}
	if len(series) > 1 {
		opts = append(opts, asciigraph.Width(r.cfg.Width))
	}

	return asciigraph.Plot(series, opts...)
}

// Render draws a frame with the current prices of a product and the window's price history.
func (r *Renderer) Render(productID string, prices *shared.Prices, window *shared.SampleWindow) error {
	defer r.buf.Reset()

	if r.cfg.ClearScreen {
		r.buf.WriteString(clearScreen)
	}

	fmt.Fprintln(r.buf, color.YellowString("Product ID: %s", productID))
	fmt.Fprintf(r.buf, "Current Instant Buy Price: %s\n", color.GreenString(" %s", formatPrice(prices.InstantBuy())))
	fmt.Fprintf(r.buf, "Current Instant Sell Price: %s\n", color.RedString("%s", formatPrice(prices.InstantSell())))
	fmt.Fprintf(r.buf, "Current Buy Order Price: %s\n", color.HiGreenString("%s", formatPrice(prices.BuyOrder())))
	fmt.Fprintf(r.buf, "Current Sell Order Price: %s\n", color.HiRedString("%s", formatPrice(prices.SellOrder())))

	start, end := window.Bounds()

	fmt.Fprintln(r.buf, "\nHistorical Buy Prices:")
	fmt.Fprintln(r.buf, r.plot(window.BuyPrices(), start, end))

	fmt.Fprintln(r.buf, "\nHistorical Sell Prices:")
	fmt.Fprintln(r.buf, r.plot(window.SellPrices(), start, end))

	_, err := r.cfg.Out.Write(r.buf.Bytes())
	if err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}

	return nil
}
