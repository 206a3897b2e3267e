package submit

import (
	"strings"

	"github.com/ppiankov/reviewlens/internal/model"
)

// Colors used for the output element
const (
	ColorFake = "#dc3545" // red: fake prediction and every error
	ColorReal = "#28a745" // green: any other prediction
)

// User-visible messages
const (
	GenericFailure   = "An error occurred. Please try again."
	UnexpectedFormat = "Unexpected response format."
)

// Display is the text and color written to the output element
type Display struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

const predictionPrefix = "Prediction: "

// IsError reports whether the display shows a failure rather than a prediction
func (d Display) IsError() bool {
	return !strings.HasPrefix(d.Text, predictionPrefix)
}

// Render decides what the output element shows for one completed request.
// Transport, status and decode failures all collapse into GenericFailure.
// Only a prediction that arrived as the string "Fake" is shown in red.
func Render(resp *model.PredictResponse, err error) Display {
	if err != nil || resp == nil {
		return Display{Text: GenericFailure, Color: ColorFake}
	}

	if resp.Prediction != "" || resp.PredictionCoerced {
		color := ColorReal
		if resp.Prediction == string(model.LabelFake) && !resp.PredictionCoerced {
			color = ColorFake
		}
		return Display{Text: predictionPrefix + resp.Prediction, Color: color}
	}

	msg := resp.Error
	if msg == "" {
		msg = UnexpectedFormat
	}
	return Display{Text: "Error: " + msg, Color: ColorFake}
}
