package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/dnldd/bazaar/chart"
	"github.com/dnldd/bazaar/fetch"
	"github.com/dnldd/bazaar/service"
	"github.com/dnldd/bazaar/shared"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: colorable.NewColorableStderr()})

	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Error().Msgf("loading config: %v", err)
		os.Exit(1)
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	logger := log.With().Str("service", "bazaar").Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fd := os.Stdout.Fd()
	interactive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	stdout := colorable.NewColorableStdout()

	client, err := fetch.NewBazaarClient(&fetch.BazaarConfig{
		BaseURL: cfg.BazaarURL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		logger.Error().Msgf("creating bazaar client: %v", err)
		os.Exit(1)
	}

	renderer, err := chart.NewRenderer(&chart.RendererConfig{
		Out:         stdout,
		Width:       cfg.ChartWidth,
		Height:      cfg.ChartHeight,
		ClearScreen: interactive,
	})
	if err != nil {
		logger.Error().Msgf("creating renderer: %v", err)
		os.Exit(1)
	}

	window, err := shared.NewSampleWindow(cfg.Capacity)
	if err != nil {
		logger.Error().Msgf("creating sample window: %v", err)
		os.Exit(1)
	}

	dashboardLogger := logger.With().Str("component", "dashboard").Logger()
	dashboard, err := service.NewDashboard(&service.DashboardConfig{
		Fetcher:  client,
		Renderer: renderer,
		Terminal: chart.NewScreen(stdout, interactive),
		Prompt:   service.NewPrompt(os.Stdin, stdout),
		Window:   window,
		NewTicker: func() (shared.Ticker, error) {
			ticker, err := fetch.NewIntervalTicker(cfg.Interval)
			if err != nil {
				return nil, err
			}
			return ticker, nil
		},
		RetryDelay: cfg.RetryDelay,
		Logger:     &dashboardLogger,
	})
	if err != nil {
		logger.Error().Msgf("creating dashboard: %v", err)
		os.Exit(1)
	}

	go handleTermination(ctx, cancel)

	err = dashboard.Run(ctx)
	if err != nil {
		logger.Error().Msgf("running dashboard: %v", err)
		cancel()
		os.Exit(1)
	}
}
