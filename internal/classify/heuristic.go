package classify

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/ppiankov/reviewlens/internal/model"
)

// Signal weights. They sum to 1 so the score stays in [0,1].
const (
	weightExclamation = 0.25
	weightShouting    = 0.20
	weightSuperlative = 0.25
	weightRepetition  = 0.10
	weightBrevity     = 0.10
	weightNoFirstHand = 0.10
)

var superlatives = map[string]bool{
	"best": true, "amazing": true, "perfect": true, "incredible": true,
	"awesome": true, "greatest": true, "fantastic": true, "outstanding": true,
	"excellent": true, "flawless": true, "unbelievable": true, "life-changing": true,
	"must-buy": true, "ever": true, "wonderful": true, "superb": true,
}

var firstPerson = map[string]bool{
	"i": true, "i'm": true, "i've": true, "me": true, "my": true, "mine": true,
	"we": true, "our": true, "us": true,
}

// HeuristicClassifier scores stylistic signals common in fabricated reviews.
// It needs no network access and is the default provider.
type HeuristicClassifier struct {
	threshold float64
}

// NewHeuristicClassifier creates a heuristic classifier
func NewHeuristicClassifier(config Config) *HeuristicClassifier {
	threshold := config.Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = 0.5
	}
	return &HeuristicClassifier{threshold: threshold}
}

// Name returns the provider name
func (c *HeuristicClassifier) Name() string {
	return "heuristic"
}

// IsAvailable always reports true
func (c *HeuristicClassifier) IsAvailable(ctx context.Context) bool {
	return true
}

// Classify scores the review and labels it Fake at or above the threshold
func (c *HeuristicClassifier) Classify(ctx context.Context, text string) (*model.Classification, error) {
	if err := checkReview(text); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	score, signals := Score(text)

	label := model.LabelReal
	if score >= c.threshold {
		label = model.LabelFake
	}

	return &model.Classification{
		Label:    label,
		Provider: c.Name(),
		Score:    score,
		Signals:  signals,
	}, nil
}

// Score computes the heuristic score in [0,1] and the signals behind it
func Score(text string) (float64, []model.Signal) {
	words := tokenize(text)
	if len(words) == 0 {
		return 0, nil
	}

	signals := []model.Signal{
		exclamationSignal(text, len(words)),
		shoutingSignal(words),
		superlativeSignal(words),
		repetitionSignal(words),
		brevitySignal(len(words)),
		firstHandSignal(words),
	}

	total := 0.0
	for _, s := range signals {
		total += s.Weight
	}

	return math.Min(total, 1), signals
}

// exclamationSignal measures "!" per ten words
func exclamationSignal(text string, wordCount int) model.Signal {
	count := strings.Count(text, "!")
	density := float64(count) * 10 / float64(wordCount)
	weight := math.Min(density/5, 1) * weightExclamation

	return model.Signal{
		Type:        model.SignalExclamation,
		Weight:      weight,
		Description: fmt.Sprintf("%d exclamation marks (%.1f per 10 words)", count, density),
		Data: map[string]interface{}{
			"count":   count,
			"words":   wordCount,
			"density": density,
			"formula": "min(count*10/words / 5, 1) * 0.25",
		},
	}
}

// shoutingSignal measures the share of ALL-CAPS words of three letters or more
func shoutingSignal(words []string) model.Signal {
	caps := 0
	for _, w := range words {
		if isShouted(w) {
			caps++
		}
	}
	ratio := float64(caps) / float64(len(words))
	weight := math.Min(ratio*5, 1) * weightShouting

	return model.Signal{
		Type:        model.SignalShouting,
		Weight:      weight,
		Description: fmt.Sprintf("%d of %d words in capitals", caps, len(words)),
		Data: map[string]interface{}{
			"caps":    caps,
			"words":   len(words),
			"ratio":   ratio,
			"formula": "min(caps/words * 5, 1) * 0.20",
		},
	}
}

// superlativeSignal measures the density of hype vocabulary
func superlativeSignal(words []string) model.Signal {
	count := 0
	for _, w := range words {
		if superlatives[strings.ToLower(w)] {
			count++
		}
	}
	density := float64(count) / float64(len(words))
	weight := math.Min(density*10, 1) * weightSuperlative

	return model.Signal{
		Type:        model.SignalSuperlative,
		Weight:      weight,
		Description: fmt.Sprintf("%d superlatives in %d words", count, len(words)),
		Data: map[string]interface{}{
			"count":   count,
			"words":   len(words),
			"density": density,
			"formula": "min(count/words * 10, 1) * 0.25",
		},
	}
}

// repetitionSignal flags one long word dominating a longer review
func repetitionSignal(words []string) model.Signal {
	counts := make(map[string]int)
	top, topWord := 0, ""
	for _, w := range words {
		if len(w) < 4 {
			continue
		}
		lw := strings.ToLower(w)
		counts[lw]++
		if counts[lw] > top {
			top, topWord = counts[lw], lw
		}
	}

	share := float64(top) / float64(len(words))
	weight := 0.0
	if len(words) >= 8 && top >= 3 {
		weight = math.Min(share*3, 1) * weightRepetition
	}

	return model.Signal{
		Type:        model.SignalRepetition,
		Weight:      weight,
		Description: fmt.Sprintf("Most repeated word %q appears %d times", topWord, top),
		Data: map[string]interface{}{
			"word":    topWord,
			"count":   top,
			"share":   share,
			"formula": "words >= 8 && count >= 3 ? min(share*3, 1) * 0.10 : 0",
		},
	}
}

// brevitySignal flags reviews too short to describe any experience
func brevitySignal(wordCount int) model.Signal {
	weight := 0.0
	if wordCount < 5 {
		weight = weightBrevity
	}

	return model.Signal{
		Type:        model.SignalBrevity,
		Weight:      weight,
		Description: fmt.Sprintf("%d words", wordCount),
		Data:        map[string]interface{}{"words": wordCount, "minimum": 5},
	}
}

// firstHandSignal flags reviews with no first-person account
func firstHandSignal(words []string) model.Signal {
	for _, w := range words {
		if firstPerson[strings.ToLower(w)] {
			return model.Signal{
				Type:        model.SignalNoFirstHand,
				Weight:      0,
				Description: "First-person account present",
				Data:        map[string]interface{}{"first_person": true},
			}
		}
	}

	return model.Signal{
		Type:        model.SignalNoFirstHand,
		Weight:      weightNoFirstHand,
		Description: "No first-person account",
		Data:        map[string]interface{}{"first_person": false},
	}
}

// tokenize splits text into words, keeping inner hyphens and apostrophes
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '\''
	})

	words := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "-'")
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}

func isShouted(word string) bool {
	letters := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 3
}
