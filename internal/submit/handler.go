// Package submit implements the review form's submission handler: read the
// review text, send it to the prediction endpoint, and show the outcome in
// the output element.
package submit

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ppiankov/reviewlens/internal/model"
)

// Event is the submit event delivered by a form
type Event interface {
	// PreventDefault suppresses the form's default navigation
	PreventDefault()
}

// Input is the single text field of the form
type Input interface {
	Value() string
}

// Output is the element that displays the result
type Output interface {
	Show(d Display)
}

// Form delivers submit events to a registered callback
type Form interface {
	OnSubmit(fn func(Event))
}

// Predictor sends review text to the prediction endpoint
type Predictor interface {
	Predict(ctx context.Context, review string) (*model.PredictResponse, error)
}

// Handler runs one request/response cycle per submission.
// Submissions are independent: nothing is de-duplicated or cancelled, and
// the last completion to reach the output wins.
type Handler struct {
	ctx       context.Context
	input     Input
	output    Output
	predictor Predictor
	logger    *zap.Logger
	inflight  sync.WaitGroup
}

// NewHandler creates a handler bound to the given input and output
func NewHandler(input Input, output Output, predictor Predictor, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		ctx:       context.Background(),
		input:     input,
		output:    output,
		predictor: predictor,
		logger:    logger,
	}
}

// Attach creates a handler and registers it on the form's submit event.
// It is meant to be called once at startup. ctx scopes every request the
// handler issues.
func Attach(ctx context.Context, form Form, input Input, output Output, predictor Predictor, logger *zap.Logger) *Handler {
	h := NewHandler(input, output, predictor, logger)
	h.ctx = ctx
	form.OnSubmit(h.handleEvent)
	return h
}

// handleEvent is the registered submit callback. The default action is
// suppressed and the field read before returning, the round trip finishes
// on its own goroutine so the event source is never blocked.
func (h *Handler) handleEvent(ev Event) {
	ev.PreventDefault()
	review := h.input.Value()

	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		h.complete(h.ctx, review)
	}()
}

// Submit runs a full submission synchronously and returns what was shown
func (h *Handler) Submit(ctx context.Context, ev Event) Display {
	ev.PreventDefault()
	return h.complete(ctx, h.input.Value())
}

// Wait blocks until every submission started through the form has been shown
func (h *Handler) Wait() {
	h.inflight.Wait()
}

func (h *Handler) complete(ctx context.Context, review string) Display {
	resp, err := h.predictor.Predict(ctx, review)
	if err != nil {
		h.logger.Error("prediction request failed",
			zap.Error(err),
			zap.Int("review_length", len(review)),
		)
	} else if resp != nil {
		h.logger.Debug("prediction response",
			zap.String("prediction", resp.Prediction),
			zap.String("error", resp.Error),
		)
	}

	d := Render(resp, err)
	h.output.Show(d)
	return d
}
