package predict

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/ppiankov/reviewlens/internal/model"
)

var errNullBody = errors.New("null body")

// decodeResponse parses a complete reply body. The body must be exactly one
// JSON value; trailing data is a parse error.
//
// A JSON object yields its "prediction" and "error" members when they are
// truthy (not null, false, 0 or ""), converted to text the way the browser
// form prints them. Any other well-formed value decodes to an empty response,
// which renders as an unexpected format. A null body is an error.
func decodeResponse(data []byte) (*model.PredictResponse, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errNullBody
	}

	result := &model.PredictResponse{}
	obj, ok := v.(map[string]any)
	if !ok {
		return result, nil
	}

	if p := obj["prediction"]; truthy(p) {
		result.Prediction = jsText(p)
		_, isString := p.(string)
		result.PredictionCoerced = !isString
	}
	if e := obj["error"]; truthy(e) {
		result.Error = jsText(e)
	}
	if r, ok := obj["review"].(string); ok {
		result.Review = r
	}
	return result, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		// lists and objects, including empty ones
		return true
	}
}

// jsText converts a decoded JSON value to the text a browser shows when
// the value is concatenated into a string.
func jsText(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return jsNumber(t)
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, el := range t {
			if el != nil {
				parts[i] = jsText(el)
			}
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

func jsNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// exponent form: 1e+21, 1.5e-7
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}
