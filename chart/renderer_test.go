package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dnldd/bazaar/shared"
	"github.com/fatih/color"
	"github.com/peterldowns/testy/assert"
)

func TestRendererConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RendererConfig
		wantErr []string
	}{
		{
			name:    "valid config",
			cfg:     RendererConfig{Out: &bytes.Buffer{}, Width: DefaultWidth, Height: DefaultHeight},
			wantErr: nil,
		},
		{
			name:    "missing output",
			cfg:     RendererConfig{Width: DefaultWidth, Height: DefaultHeight},
			wantErr: []string{"renderer output cannot be nil"},
		},
		{
			name: "non-positive dimensions",
			cfg:  RendererConfig{Out: &bytes.Buffer{}},
			wantErr: []string{
				"chart width must be positive",
				"chart height must be positive",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}

			assert.Error(t, err)
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected error to contain %q, got %v", want, err)
				}
			}
		})
	}
}

func TestRender(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer
	renderer, err := NewRenderer(&RendererConfig{
		Out:         &out,
		Width:       40,
		Height:      5,
		ClearScreen: true,
	})
	assert.NoError(t, err)

	window, err := shared.NewSampleWindow(shared.DefaultWindowCapacity)
	assert.NoError(t, err)

	prices := shared.Prices{MinBuy: 8, MaxBuy: 20, MinSell: 5, MaxSell: 10}

	// Ensure a frame can be rendered before any samples are recorded.
	err = renderer.Render("ENCHANTED_BOOK", &prices, window)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out.String(), "no samples yet"))
	out.Reset()

	window.Add(prices.Sampled())
	window.Add(9.5, 11)

	// Ensure a frame clears the screen and lists the product's prices.
	err = renderer.Render("ENCHANTED_BOOK", &prices, window)
	assert.NoError(t, err)

	frame := out.String()
	assert.True(t, strings.HasPrefix(frame, clearScreen))

	expected := []string{
		"Product ID: ENCHANTED_BOOK",
		"Current Instant Buy Price:  8\n",
		"Current Instant Sell Price: 10\n",
		"Current Buy Order Price: 10\n",
		"Current Sell Order Price: 8\n",
		"Historical Buy Prices:",
		"Historical Sell Prices:",
		"t 0 - 2",
	}
	for _, want := range expected {
		if !strings.Contains(frame, want) {
			t.Errorf("expected frame to contain %q, got %s", want, frame)
		}
	}

	// Ensure the buy history is drawn before the sell history.
	assert.True(t, strings.Index(frame, "Historical Buy Prices:") < strings.Index(frame, "Historical Sell Prices:"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, formatPrice(8), "8")
	assert.Equal(t, formatPrice(10.5), "10.5")
	assert.Equal(t, formatPrice(shared.PriceSentinel), "99999999999")
}
