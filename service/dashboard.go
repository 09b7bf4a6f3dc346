package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/bazaar/product"
	"github.com/dnldd/bazaar/shared"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

const (
	// emptyInputMessage is shown when the entered product id is blank.
	emptyInputMessage = "Please enter a product id."
	// rejectedMessage is shown when a candidate for the entered product id is not listed.
	rejectedMessage = "No product with id %s found. Trying with modifications."
	// exhaustedMessage is shown when every candidate for an input was rejected.
	exhaustedMessage = "No product found with these modifications. Please try again with a new product id. " +
		"If this item has a level (ex. enchanted book) make sure to include it"
	// goodbyeMessage is shown once the dashboard is interrupted.
	goodbyeMessage = "Ctrl-C received... goodbye"
)

// State represents the lifecycle state of the dashboard.
type State int32

const (
	Resolving State = iota
	Active
	Terminated
)

// String stringifies the provided state.
func (s State) String() string {
	switch s {
	case Resolving:
		return "resolving"
	case Active:
		return "active"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// DashboardConfig represents the configuration for the dashboard service.
type DashboardConfig struct {
	// Fetcher fetches bazaar product data.
	Fetcher shared.BazaarFetcher
	// Renderer draws the dashboard.
	Renderer shared.Renderer
	// Terminal manages the terminal screen.
	Terminal shared.Terminal
	// Prompt reads product ids from the user and shows them notices.
	Prompt Console
	// Window is the sample window backing the price history charts.
	Window *shared.SampleWindow
	// NewTicker creates the tick source for active polling.
	NewTicker func() (shared.Ticker, error)
	// RetryDelay is the wait before retrying a candidate whose fetch failed.
	RetryDelay time.Duration
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *DashboardConfig) Validate() error {
	var errs error

	if cfg.Fetcher == nil {
		errs = errors.Join(errs, fmt.Errorf("bazaar fetcher cannot be nil"))
	}
	if cfg.Renderer == nil {
		errs = errors.Join(errs, fmt.Errorf("renderer cannot be nil"))
	}
	if cfg.Terminal == nil {
		errs = errors.Join(errs, fmt.Errorf("terminal cannot be nil"))
	}
	if cfg.Prompt == nil {
		errs = errors.Join(errs, fmt.Errorf("prompt cannot be nil"))
	}
	if cfg.Window == nil {
		errs = errors.Join(errs, fmt.Errorf("sample window cannot be nil"))
	}
	if cfg.NewTicker == nil {
		errs = errors.Join(errs, fmt.Errorf("ticker constructor cannot be nil"))
	}
	if cfg.RetryDelay <= 0 {
		errs = errors.Join(errs, fmt.Errorf("retry delay must be positive"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// Dashboard represents the bazaar price dashboard service.
type Dashboard struct {
	cfg       *DashboardConfig
	state     atomic.Int32
	productID atomic.String
}

// NewDashboard initializes a new dashboard service.
func NewDashboard(cfg *DashboardConfig) (*Dashboard, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating dashboard config: %w", err)
	}

	return &Dashboard{cfg: cfg}, nil
}

// State returns the current lifecycle state of the dashboard.
func (d *Dashboard) State() State {
	return State(d.state.Load())
}

// ProductID returns the resolved product id, empty while resolving.
func (d *Dashboard) ProductID() string {
	return d.productID.Load()
}

// update fetches the provided product, samples its prices into the window and renders
// the result. The window is left untouched if the fetch fails.
func (d *Dashboard) update(ctx context.Context, productID string) error {
	summary, err := d.cfg.Fetcher.FetchProduct(ctx, productID)
	if err != nil {
		return err
	}

	// Discard the result if the interrupt won while the fetch was in flight.
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if len(summary.SellSummary) == 0 && len(summary.BuySummary) == 0 {
		d.cfg.Logger.Debug().Msgf("no orders listed for %s: %s", productID, spew.Sdump(summary))
	}

	prices := shared.ExtractPrices(summary)
	d.cfg.Window.Add(prices.Sampled())

	last := d.cfg.Window.Last()
	d.cfg.Logger.Debug().Msgf("sampled %s at t=%d: buy %v, sell %v", productID,
		last.Timestamp, last.Buy, last.Sell)

	err = d.cfg.Renderer.Render(productID, &prices, d.cfg.Window)
	if err != nil {
		d.cfg.Logger.Error().Msgf("rendering %s: %v", productID, err)
	}

	return nil
}

// attempt tries the provided candidate against the bazaar. A failed fetch retries the
// same candidate after the retry delay, only a missing product rejects it.
func (d *Dashboard) attempt(ctx context.Context, logger *zerolog.Logger, candidate product.Candidate) (bool, error) {
	for {
		// Each attempt starts on a fresh window so samples of different candidates never mix.
		d.cfg.Window.Reset()

		err := d.update(ctx, candidate.ID)
		switch {
		case err == nil:
			return true, nil
		case ctx.Err() != nil:
			return false, ctx.Err()
		case errors.Is(err, shared.ErrProductNotFound):
			return false, nil
		}

		logger.Error().Msgf("fetching candidate %s (%s): %v", candidate.ID, candidate.Description, err)

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(d.cfg.RetryDelay):
		}
	}
}

// search resolves the provided raw input to a bazaar product id.
func (d *Dashboard) search(ctx context.Context, raw string) (string, error) {
	it, err := product.Iterate(raw)
	if err != nil {
		return "", err
	}

	input := strings.TrimRight(raw, "\r\n")
	logger := d.cfg.Logger.With().
		Str("session", uuid.New().String()).
		Str("input", input).
		Str("normalized", it.Normalized()).
		Logger()

	for {
		candidate, ok := it.Next()
		if !ok {
			return "", product.ErrCandidatesExhausted
		}

		logger.Debug().Msgf("trying candidate %s (stage %d, %s)", candidate.ID, candidate.Stage, candidate.Description)

		found, err := d.attempt(ctx, &logger, candidate)
		if err != nil {
			return "", err
		}
		if found {
			logger.Info().Msgf("resolved product id %s", candidate.ID)
			return candidate.ID, nil
		}

		logger.Debug().Msgf("rejected candidate %s", candidate.ID)
		d.notify(fmt.Sprintf(rejectedMessage, input))
	}
}

// resolve prompts for product ids until one resolves.
func (d *Dashboard) resolve(ctx context.Context) (string, error) {
	for {
		raw, err := d.cfg.Prompt.ReadLine(ctx)
		if err != nil {
			return "", err
		}

		productID, err := d.search(ctx, raw)
		switch {
		case err == nil:
			return productID, nil
		case errors.Is(err, product.ErrEmptyProductID):
			d.notify(emptyInputMessage)
		case errors.Is(err, product.ErrCandidatesExhausted):
			d.notify(exhaustedMessage)
		default:
			return "", err
		}
	}
}

// poll samples the resolved product on every tick until the context is cancelled.
func (d *Dashboard) poll(ctx context.Context, productID string) error {
	d.cfg.Window.Reset()

	ticker, err := d.cfg.NewTicker()
	if err != nil {
		return fmt.Errorf("creating ticker: %w", err)
	}
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C():
			// The interrupt takes precedence over a tick that became ready alongside it.
			if ctx.Err() != nil {
				return nil
			}

			err := d.update(ctx, productID)
			if err != nil && ctx.Err() == nil {
				d.cfg.Logger.Error().Msgf("updating %s: %v", productID, err)
			}
		}
	}
}

// Run handles the lifecycle processes of the dashboard. It returns nil once the context
// is cancelled.
func (d *Dashboard) Run(ctx context.Context) error {
	d.state.Store(int32(Resolving))

	err := d.cfg.Terminal.Enter()
	if err != nil {
		return fmt.Errorf("preparing terminal: %w", err)
	}

	defer func() {
		err := d.cfg.Terminal.Restore()
		if err != nil {
			d.cfg.Logger.Error().Msgf("restoring terminal: %v", err)
		}

		// The goodbye is shown on the restored screen.
		if d.State() == Terminated {
			d.notify(goodbyeMessage)
		}
	}()

	productID, err := d.resolve(ctx)
	if err != nil {
		if ctx.Err() != nil {
			d.terminate()
			return nil
		}

		return fmt.Errorf("resolving product id: %w", err)
	}

	d.productID.Store(productID)
	d.state.Store(int32(Active))

	err = d.poll(ctx, productID)
	if err != nil {
		return err
	}

	d.terminate()
	return nil
}

// terminate marks the dashboard terminated.
func (d *Dashboard) terminate() {
	d.state.Store(int32(Terminated))
	d.cfg.Logger.Debug().Msg("dashboard terminated")
}

// notify shows the provided message to the user.
func (d *Dashboard) notify(msg string) {
	err := d.cfg.Prompt.Notify(msg)
	if err != nil {
		d.cfg.Logger.Error().Msgf("notifying user: %v", err)
	}
}
