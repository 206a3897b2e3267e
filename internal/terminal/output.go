// Package terminal renders submissions on a terminal and turns stdin lines
// into form submissions.
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/ppiankov/reviewlens/internal/submit"
)

// Output prints each Display as one line in its color.
// It is safe for concurrent use.
type Output struct {
	mu      sync.Mutex
	w       io.Writer
	noColor bool
	last    submit.Display
}

// NewOutput creates an output writing to w. Color is dropped when noColor is set.
func NewOutput(w io.Writer, noColor bool) *Output {
	return &Output{w: w, noColor: noColor}
}

// Show implements submit.Output
func (o *Output) Show(d submit.Display) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.last = d

	c, err := colorFor(d.Color)
	if err != nil || o.noColor {
		_, _ = fmt.Fprintln(o.w, d.Text)
		return
	}
	c.EnableColor()
	_, _ = c.Fprintln(o.w, d.Text)
}

// Last returns the most recently shown display
func (o *Output) Last() submit.Display {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.last
}

func colorFor(hex string) (*color.Color, error) {
	r, g, b, err := ParseHex(hex)
	if err != nil {
		return nil, err
	}
	return color.RGB(r, g, b), nil
}

// ParseHex parses a "#rrggbb" or "#rgb" CSS color
func ParseHex(s string) (r, g, b int, err error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), nil
}
