package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ppiankov/reviewlens/internal/submit"
)

// Text is a fixed-value input, used for one-shot submissions
type Text string

// Value implements submit.Input
func (t Text) Value() string { return string(t) }

// Event is a terminal submit event. A terminal has no default action to
// suppress, so it only records that suppression was requested.
type Event struct {
	mu        sync.Mutex
	prevented bool
}

// PreventDefault implements submit.Event
func (e *Event) PreventDefault() {
	e.mu.Lock()
	e.prevented = true
	e.mu.Unlock()
}

// Prevented reports whether PreventDefault was called
func (e *Event) Prevented() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prevented
}

// LineForm is both the form and its input: every line read is one submission.
// Blank lines are skipped.
type LineForm struct {
	r io.Reader

	mu      sync.Mutex
	current string
	submit  func(submit.Event)
}

// NewLineForm creates a form reading submissions from r
func NewLineForm(r io.Reader) *LineForm {
	return &LineForm{r: r}
}

// OnSubmit implements submit.Form
func (f *LineForm) OnSubmit(fn func(submit.Event)) {
	f.mu.Lock()
	f.submit = fn
	f.mu.Unlock()
}

// Value implements submit.Input; it returns the line being submitted
func (f *LineForm) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Run reads lines until EOF or ctx is done and returns the number of submissions
func (f *LineForm) Run(ctx context.Context) (int, error) {
	scanner := bufio.NewScanner(f.r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	n := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		f.mu.Lock()
		f.current = line
		fn := f.submit
		f.mu.Unlock()

		if fn == nil {
			return n, fmt.Errorf("no submit handler registered")
		}
		// The handler reads Value before returning, so current stays valid.
		fn(&Event{})
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("read input: %w", err)
	}
	return n, nil
}
