package model

// PredictRequest is the JSON body posted to the prediction endpoint
type PredictRequest struct {
	Review string `json:"review"`
}

// PredictResponse is the JSON body returned by the prediction endpoint.
// A well-formed reply carries either Prediction or Error; anything else is
// an unexpected format.
type PredictResponse struct {
	Review     string `json:"review,omitempty"`     // Echo of the submitted text (server side only)
	Prediction string `json:"prediction,omitempty"` // Class label, e.g. "Fake" or "Real"
	Error      string `json:"error,omitempty"`      // Server-provided failure description

	// PredictionCoerced is set when the endpoint sent a non-string prediction
	// (a number, list or object) that was converted to text for display.
	PredictionCoerced bool `json:"-"`
}

// Label is a review classification
type Label string

const (
	LabelFake Label = "Fake"
	LabelReal Label = "Real"
)

// String returns the label as sent over the wire
func (l Label) String() string {
	return string(l)
}

// IsFake reports whether the label marks the review as fabricated
func (l Label) IsFake() bool {
	return l == LabelFake
}

// Signal is one transparent input to a heuristic classification
type Signal struct {
	Type        SignalType             `json:"type"`
	Weight      float64                `json:"weight"`          // Contribution to the final score (0-1)
	Description string                 `json:"description"`     // Human-readable description
	Data        map[string]interface{} `json:"data,omitempty"` // Raw measurements behind the weight
}

// SignalType classifies a stylistic signal
type SignalType string

const (
	SignalExclamation SignalType = "exclamation_density" // "!" per sentence
	SignalShouting    SignalType = "shouting"            // ALL-CAPS words
	SignalSuperlative SignalType = "superlative_density" // best/amazing/perfect...
	SignalRepetition  SignalType = "repetition"          // same word over and over
	SignalBrevity     SignalType = "brevity"             // too short to describe an experience
	SignalNoFirstHand SignalType = "no_first_hand"       // no first-person account of use
)

// Classification is the outcome of classifying one review
type Classification struct {
	Label    Label    `json:"label"`
	Provider string   `json:"provider"`
	Model    string   `json:"model,omitempty"`
	Score    float64  `json:"score,omitempty"`   // Heuristic score in [0,1], 0 for model-backed providers
	Signals  []Signal `json:"signals,omitempty"` // Only populated by the heuristic provider
}
