package submit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ppiankov/reviewlens/internal/model"
	"github.com/ppiankov/reviewlens/internal/predict"
)

type fakeEvent struct {
	prevented atomic.Int32
}

func (e *fakeEvent) PreventDefault() { e.prevented.Add(1) }

type fakeInput struct {
	mu    sync.Mutex
	value string
}

func (i *fakeInput) Value() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.value
}

func (i *fakeInput) set(v string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.value = v
}

type fakeOutput struct {
	mu    sync.Mutex
	shown []Display
}

func (o *fakeOutput) Show(d Display) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.shown = append(o.shown, d)
}

func (o *fakeOutput) all() []Display {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Display(nil), o.shown...)
}

type fakeForm struct {
	fn func(Event)
}

func (f *fakeForm) OnSubmit(fn func(Event)) { f.fn = fn }

func (f *fakeForm) submit() *fakeEvent {
	ev := &fakeEvent{}
	f.fn(ev)
	return ev
}

type predictorFunc func(ctx context.Context, review string) (*model.PredictResponse, error)

func (f predictorFunc) Predict(ctx context.Context, review string) (*model.PredictResponse, error) {
	return f(ctx, review)
}

func endpoint(t *testing.T, status int, body string) *predict.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return predict.NewClient(server.URL, predict.WithTimeout(5*time.Second))
}

func TestHandler_Submit_Endpoint(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantText  string
		wantColor string
	}{
		{"not fake", http.StatusOK, `{"prediction": "Not Fake"}`, "Prediction: Not Fake", ColorReal},
		{"fake", http.StatusOK, `{"prediction": "Fake"}`, "Prediction: Fake", ColorFake},
		{"error field", http.StatusOK, `{"error": "model unavailable"}`, "Error: model unavailable", ColorFake},
		{"empty object", http.StatusOK, `{}`, "Error: Unexpected response format.", ColorFake},
		{"null prediction", http.StatusOK, `{"prediction": null}`, "Error: Unexpected response format.", ColorFake},
		{"server error status", http.StatusInternalServerError, `{"error": "boom"}`, GenericFailure, ColorFake},
		{"bad request status", http.StatusBadRequest, `{"error": "No review text provided"}`, GenericFailure, ColorFake},
		{"malformed json", http.StatusOK, `{"prediction": `, GenericFailure, ColorFake},
		{"trailing text", http.StatusOK, `{"prediction":"Fake"} not json`, GenericFailure, ColorFake},
		{"two objects", http.StatusOK, `{"prediction":"Fake"}{"x":1}`, GenericFailure, ColorFake},
		{"null body", http.StatusOK, `null`, GenericFailure, ColorFake},
		{"list body", http.StatusOK, `[]`, "Error: Unexpected response format.", ColorFake},
		{"string body", http.StatusOK, `"ok"`, "Error: Unexpected response format.", ColorFake},
		{"number body", http.StatusOK, `42`, "Error: Unexpected response format.", ColorFake},
		{"numeric prediction", http.StatusOK, `{"prediction": 1}`, "Prediction: 1", ColorReal},
		{"list prediction", http.StatusOK, `{"prediction": ["Fake"]}`, "Prediction: Fake", ColorReal},
		{"zero prediction", http.StatusOK, `{"prediction": 0, "error": "no model"}`, "Error: no model", ColorFake},
		{"numeric error", http.StatusOK, `{"error": 500}`, "Error: 500", ColorFake},
		{"empty list prediction", http.StatusOK, `{"prediction": []}`, "Prediction: ", ColorReal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &fakeOutput{}
			h := NewHandler(&fakeInput{value: "great product"}, out, endpoint(t, tt.status, tt.body), nil)

			ev := &fakeEvent{}
			got := h.Submit(context.Background(), ev)

			if ev.prevented.Load() != 1 {
				t.Errorf("expected default to be prevented once, got %d", ev.prevented.Load())
			}
			if got.Text != tt.wantText || got.Color != tt.wantColor {
				t.Errorf("got %+v, want {%q %q}", got, tt.wantText, tt.wantColor)
			}
			shown := out.all()
			if len(shown) != 1 || shown[0] != got {
				t.Errorf("expected exactly one output write of %+v, got %v", got, shown)
			}
		})
	}
}

func TestHandler_Submit_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	out := &fakeOutput{}
	h := NewHandler(&fakeInput{value: "text"}, out, predict.NewClient(url), zap.New(core))

	got := h.Submit(context.Background(), &fakeEvent{})
	if got.Text != GenericFailure || got.Color != ColorFake {
		t.Errorf("unexpected display: %+v", got)
	}

	entries := logs.FilterMessage("prediction request failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one diagnostic log entry, got %d", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Errorf("expected error level, got %s", entries[0].Level)
	}
	if _, ok := entries[0].ContextMap()["error"]; !ok {
		t.Error("expected error field in diagnostic log")
	}
}

func TestHandler_Submit_SendsFieldValueAtSubmitTime(t *testing.T) {
	var seen []string
	p := predictorFunc(func(ctx context.Context, review string) (*model.PredictResponse, error) {
		seen = append(seen, review)
		return &model.PredictResponse{Prediction: "Real"}, nil
	})

	input := &fakeInput{value: ""}
	h := NewHandler(input, &fakeOutput{}, p, nil)

	h.Submit(context.Background(), &fakeEvent{})
	input.set("second")
	h.Submit(context.Background(), &fakeEvent{})

	if len(seen) != 2 || seen[0] != "" || seen[1] != "second" {
		t.Errorf("unexpected submitted values: %q", seen)
	}
}

func TestHandler_RemainsUsableAfterFailure(t *testing.T) {
	var calls atomic.Int32
	p := predictorFunc(func(ctx context.Context, review string) (*model.PredictResponse, error) {
		if calls.Add(1) == 1 {
			return nil, fmt.Errorf("send request: connection reset")
		}
		return &model.PredictResponse{Prediction: "Fake"}, nil
	})

	out := &fakeOutput{}
	h := NewHandler(&fakeInput{value: "x"}, out, p, nil)

	first := h.Submit(context.Background(), &fakeEvent{})
	second := h.Submit(context.Background(), &fakeEvent{})

	if first.Text != GenericFailure {
		t.Errorf("first: got %q", first.Text)
	}
	if second.Text != "Prediction: Fake" {
		t.Errorf("second: got %q", second.Text)
	}
}

func TestAttach_PreventsDefaultBeforeReturning(t *testing.T) {
	release := make(chan struct{})
	p := predictorFunc(func(ctx context.Context, review string) (*model.PredictResponse, error) {
		<-release
		return &model.PredictResponse{Prediction: "Real"}, nil
	})

	form := &fakeForm{}
	out := &fakeOutput{}
	h := Attach(context.Background(), form, &fakeInput{value: "fine"}, out, p, nil)

	ev := form.submit()
	if ev.prevented.Load() != 1 {
		t.Fatalf("expected default prevented synchronously, got %d", ev.prevented.Load())
	}
	if len(out.all()) != 0 {
		t.Fatal("output written before the response arrived")
	}

	close(release)
	h.Wait()

	shown := out.all()
	if len(shown) != 1 || shown[0].Text != "Prediction: Real" || shown[0].Color != ColorReal {
		t.Errorf("unexpected output: %v", shown)
	}
}

func TestAttach_OverlappingSubmissionsLastWriteWins(t *testing.T) {
	gates := map[string]chan struct{}{
		"first":  make(chan struct{}),
		"second": make(chan struct{}),
	}
	p := predictorFunc(func(ctx context.Context, review string) (*model.PredictResponse, error) {
		<-gates[review]
		if review == "first" {
			return &model.PredictResponse{Prediction: "Fake"}, nil
		}
		return &model.PredictResponse{Prediction: "Real"}, nil
	})

	form := &fakeForm{}
	input := &fakeInput{value: "first"}
	out := &fakeOutput{}
	h := Attach(context.Background(), form, input, out, p, nil)

	form.submit()
	input.set("second")
	form.submit()

	// Resolve out of submission order: the second request finishes first.
	close(gates["second"])
	waitFor(t, func() bool { return len(out.all()) == 1 })
	close(gates["first"])
	h.Wait()

	shown := out.all()
	if len(shown) != 2 {
		t.Fatalf("expected both submissions to write, got %v", shown)
	}
	if shown[0].Text != "Prediction: Real" || shown[1].Text != "Prediction: Fake" {
		t.Errorf("expected resolution order, got %v", shown)
	}
}

func TestAttach_UsesAttachContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := predictorFunc(func(ctx context.Context, review string) (*model.PredictResponse, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &model.PredictResponse{Prediction: "Real"}, nil
	})

	form := &fakeForm{}
	out := &fakeOutput{}
	h := Attach(ctx, form, &fakeInput{value: "x"}, out, p, nil)
	form.submit()
	h.Wait()

	shown := out.all()
	if len(shown) != 1 || shown[0].Text != GenericFailure {
		t.Errorf("expected generic failure for cancelled context, got %v", shown)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
