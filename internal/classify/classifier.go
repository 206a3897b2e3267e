package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ppiankov/reviewlens/internal/model"
)

var (
	// ErrEmptyReview is returned when there is no text to classify
	ErrEmptyReview = errors.New("empty review")

	// ErrUnparseableLabel is returned when a model answer is neither Fake nor Real
	ErrUnparseableLabel = errors.New("unparseable label")
)

// Classifier decides whether a review is fake
type Classifier interface {
	// Name returns the provider name
	Name() string

	// Classify labels a single review
	Classify(ctx context.Context, text string) (*model.Classification, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds classifier provider configuration
type Config struct {
	// Provider name: "heuristic", "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Threshold is the heuristic score at or above which a review is Fake
	Threshold float64

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "heuristic",
		Timeout:   30,
		MaxTokens: 5,
		Threshold: 0.5,
	}
}

// ConfigFromModel converts model.ClassifierConfig to classify.Config
func ConfigFromModel(c model.ClassifierConfig) Config {
	return Config{
		Provider:   c.Provider,
		Model:      c.Model,
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		Timeout:    c.Timeout,
		MaxTokens:  c.MaxTokens,
		Threshold:  c.Threshold,
		HTTPProxy:  c.HTTPProxy,
		HTTPSProxy: c.HTTPSProxy,
		NoProxy:    c.NoProxy,
	}
}

const systemPrompt = "You are a moderation assistant that detects fabricated product reviews. " +
	"Answer with exactly one word: Fake or Real."

// BuildPrompt constructs the user prompt sent to model-backed providers
func BuildPrompt(review string) string {
	return fmt.Sprintf(`Classify the following customer review.

Answer "Fake" if it reads as fabricated, incentivised, or written by someone who did not use the product.
Answer "Real" if it reads as a genuine first-hand account.

Review:
"""
%s
"""

Answer with one word.`, review)
}

// ParseLabel turns a model's one-word answer into a Label
func ParseLabel(answer string) (model.Label, error) {
	word := strings.TrimFunc(strings.ToLower(strings.TrimSpace(answer)), func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r)
	})
	if fields := strings.Fields(word); len(fields) > 0 {
		word = strings.TrimFunc(fields[0], unicode.IsPunct)
	}

	switch word {
	case "fake", "fabricated", "fraudulent", "spam":
		return model.LabelFake, nil
	case "real", "genuine", "authentic", "legitimate":
		return model.LabelReal, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnparseableLabel, answer)
}

func checkReview(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyReview
	}
	return nil
}
