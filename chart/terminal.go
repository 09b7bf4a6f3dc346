package chart

import (
	"fmt"
	"io"

	"github.com/dnldd/bazaar/shared"
	"go.uber.org/atomic"
)

const (
	// Terminal control sequences.
	enterAlternateScreen = "\x1b[?1049h"
	leaveAlternateScreen = "\x1b[?1049l"
	clearScreen          = "\x1b[2J\x1b[H"
)

// Screen manages the alternate screen of a terminal.
type Screen struct {
	out         io.Writer
	interactive bool
	entered     atomic.Bool
}

// Ensure the Screen implements the Terminal interface.
var _ shared.Terminal = (*Screen)(nil)

// NewScreen initializes a new screen. Non-interactive screens never switch to the
// alternate screen.
func NewScreen(out io.Writer, interactive bool) *Screen {
	return &Screen{
		out:         out,
		interactive: interactive,
	}
}

// Enter switches the terminal to the alternate screen.
func (s *Screen) Enter() error {
	if !s.interactive {
		return nil
	}

	if !s.entered.CompareAndSwap(false, true) {
		return nil
	}

	_, err := io.WriteString(s.out, enterAlternateScreen)
	if err != nil {
		return fmt.Errorf("entering alternate screen: %w", err)
	}

	return nil
}

// Restore switches the terminal back to the main screen. Only the first call after
// Enter has an effect.
func (s *Screen) Restore() error {
	if !s.entered.CompareAndSwap(true, false) {
		return nil
	}

	_, err := io.WriteString(s.out, leaveAlternateScreen)
	if err != nil {
		return fmt.Errorf("leaving alternate screen: %w", err)
	}

	return nil
}
