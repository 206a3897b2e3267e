package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/ppiankov/reviewlens/internal/model"
)

func TestHeuristicClassifier_Hype(t *testing.T) {
	c := NewHeuristicClassifier(DefaultConfig())

	result, err := c.Classify(context.Background(), "BEST PRODUCT EVER!!! AMAZING!!! PERFECT!!! BUY NOW!!!")
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if result.Label != model.LabelFake {
		t.Errorf("Expected Fake, got %s (score %.2f)", result.Label, result.Score)
	}
	if result.Score < 0.7 {
		t.Errorf("Expected high score, got %.2f", result.Score)
	}
	if result.Provider != "heuristic" {
		t.Errorf("Expected provider heuristic, got %s", result.Provider)
	}
	if len(result.Signals) != 6 {
		t.Errorf("Expected 6 signals, got %d", len(result.Signals))
	}
}

func TestHeuristicClassifier_FirstHandAccount(t *testing.T) {
	c := NewHeuristicClassifier(DefaultConfig())

	review := "I bought this kettle in March. It boils quickly, but the lid feels flimsy and my partner already cracked the hinge. Decent value for the price."
	result, err := c.Classify(context.Background(), review)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if result.Label != model.LabelReal {
		t.Errorf("Expected Real, got %s (score %.2f)", result.Label, result.Score)
	}
	if result.Score != 0 {
		t.Errorf("Expected zero score, got %.2f", result.Score)
	}
}

func TestHeuristicClassifier_Threshold(t *testing.T) {
	review := "Great blender, works well and cleans up fast."

	lenient := NewHeuristicClassifier(Config{Threshold: 0.9})
	strict := NewHeuristicClassifier(Config{Threshold: 0.05})

	r1, err := lenient.Classify(context.Background(), review)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	r2, err := strict.Classify(context.Background(), review)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if r1.Label != model.LabelReal {
		t.Errorf("Expected Real under lenient threshold, got %s", r1.Label)
	}
	if r2.Label != model.LabelFake {
		t.Errorf("Expected Fake under strict threshold (score %.2f), got %s", r2.Score, r2.Label)
	}
}

func TestHeuristicClassifier_InvalidThresholdFallsBack(t *testing.T) {
	for _, th := range []float64{0, -1, 2} {
		c := NewHeuristicClassifier(Config{Threshold: th})
		if c.threshold != 0.5 {
			t.Errorf("threshold %v: expected fallback 0.5, got %v", th, c.threshold)
		}
	}
}

func TestHeuristicClassifier_EmptyReview(t *testing.T) {
	c := NewHeuristicClassifier(DefaultConfig())

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := c.Classify(context.Background(), text)
		if !errors.Is(err, ErrEmptyReview) {
			t.Errorf("Classify(%q): expected ErrEmptyReview, got %v", text, err)
		}
	}
}

func TestHeuristicClassifier_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHeuristicClassifier(DefaultConfig()).Classify(ctx, "fine product")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestScore_Signals(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		signal     model.SignalType
		wantWeight bool
	}{
		{"exclamations", "Good stuff!!!!! Really!!!!!", model.SignalExclamation, true},
		{"no exclamations", "I use it every day and it works.", model.SignalExclamation, false},
		{"shouting", "I LOVE THIS THING SO MUCH", model.SignalShouting, true},
		{"short capitals ignored", "I am OK with it, it is fine for me", model.SignalShouting, false},
		{"superlatives", "I think the best and most amazing and perfect gadget", model.SignalSuperlative, true},
		{"repetition", "I like quality quality quality and more quality here", model.SignalRepetition, true},
		{"brevity", "Nice.", model.SignalBrevity, true},
		{"long enough", "I have used this for two weeks now.", model.SignalBrevity, false},
		{"no first hand", "This product is good and works as described.", model.SignalNoFirstHand, true},
		{"first hand", "My dog loves it.", model.SignalNoFirstHand, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, signals := Score(tt.text)
			var found *model.Signal
			for i := range signals {
				if signals[i].Type == tt.signal {
					found = &signals[i]
				}
			}
			if found == nil {
				t.Fatalf("signal %s not reported", tt.signal)
			}
			if got := found.Weight > 0; got != tt.wantWeight {
				t.Errorf("signal %s weight %.3f, want positive=%v", tt.signal, found.Weight, tt.wantWeight)
			}
		})
	}
}

func TestScore_Bounded(t *testing.T) {
	score, _ := Score("WOW!!!!!!!!!!!! BEST BEST BEST BEST BEST BEST BEST BEST!!!!!!!!")
	if score < 0 || score > 1 {
		t.Errorf("score out of range: %v", score)
	}

	if score, signals := Score("!!!"); score != 0 || signals != nil {
		t.Errorf("expected no score for text without words, got %v %v", score, signals)
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("It's a must-buy -- really, 10/10!")
	want := []string{"It's", "a", "must-buy", "really", "10", "10"}
	if len(got) != len(want) {
		t.Fatalf("tokenize = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}
