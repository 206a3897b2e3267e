package classify

import (
	"fmt"
	"strings"
)

// New creates a classifier based on configuration
func New(config Config) (Classifier, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "heuristic", "":
		return NewHeuristicClassifier(config), nil

	case "openai":
		return NewOpenAIClassifier(config)

	case "anthropic", "claude":
		return NewAnthropicClassifier(config)

	case "ollama":
		return NewOllamaClassifier(config)

	default:
		return nil, fmt.Errorf("unknown classifier provider: %s (supported: heuristic, openai, anthropic, ollama)", config.Provider)
	}
}
