package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

const (
	// promptText is the product id prompt shown to users.
	promptText = "Enter the product id: "
)

var (
	// ErrInputClosed is returned when the prompt input is closed.
	ErrInputClosed = errors.New("prompt input closed")
)

// Console defines the requirements for interacting with the user.
type Console interface {
	// ReadLine prompts for and returns a line of user input.
	ReadLine(ctx context.Context) (string, error)
	// Notify writes a message for the user on its own line.
	Notify(msg string) error
}

// line represents a line read from the prompt input.
type line struct {
	text string
	err  error
}

// Prompt reads product ids interactively.
type Prompt struct {
	in        *bufio.Reader
	out       io.Writer
	lines     chan line
	err       error
	startOnce sync.Once
}

// Ensure the Prompt implements the Console interface.
var _ Console = (*Prompt)(nil)

// NewPrompt initializes a new prompt.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan line),
	}
}

// read streams lines from the prompt input until it is closed.
func (p *Prompt) read() {
	for {
		text, err := p.in.ReadString('\n')
		if err != nil {
			if text != "" {
				p.lines <- line{text: text}
			}
			if errors.Is(err, io.EOF) {
				err = ErrInputClosed
			}
			p.lines <- line{err: err}
			return
		}

		p.lines <- line{text: text}
	}
}

// ReadLine prompts for and returns a line of user input. The blocking read does not
// hold up context cancellation.
func (p *Prompt) ReadLine(ctx context.Context) (string, error) {
	if p.err != nil {
		return "", p.err
	}

	p.startOnce.Do(func() { go p.read() })

	_, err := io.WriteString(p.out, promptText)
	if err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-p.lines:
		if l.err != nil {
			p.err = l.err
			return "", l.err
		}

		return l.text, nil
	}
}

// Notify writes a message for the user on its own line.
func (p *Prompt) Notify(msg string) error {
	_, err := fmt.Fprintln(p.out, msg)
	if err != nil {
		return fmt.Errorf("writing notice: %w", err)
	}

	return nil
}
