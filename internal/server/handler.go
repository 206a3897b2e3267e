package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ppiankov/reviewlens/internal/classify"
	"github.com/ppiankov/reviewlens/internal/metrics"
	"github.com/ppiankov/reviewlens/internal/model"
	"github.com/ppiankov/reviewlens/internal/page"
)

// Error messages returned by POST /predict
const (
	ErrNoReviewText     = "No review text provided"
	ErrPredictionFailed = "An error occurred during prediction"
)

// maxRequestBytes caps the /predict body
const maxRequestBytes = 1 << 20

var errReviewNotString = errors.New("review must be a string")

// Handler serves the form page and the prediction API
type Handler struct {
	classifier classify.Classifier
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewHandler creates a handler backed by classifier
func NewHandler(classifier classify.Classifier, m *metrics.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Handler{
		classifier: classifier,
		metrics:    m,
		logger:     logger,
	}
}

// Index handles GET /
func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", page.Index())
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"classifier": h.classifier.Name(),
	})
}

// Predict handles POST /predict.
// The body is read as JSON whatever the Content-Type says.
func (h *Handler) Predict(c *gin.Context) {
	log := h.logger.With(zap.String("request_id", c.GetString(requestIDKey)))

	text, err := readReview(http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes))
	if err != nil {
		log.Error("invalid prediction request", zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, model.PredictResponse{Error: ErrPredictionFailed})
		return
	}
	if text == "" {
		c.JSON(http.StatusBadRequest, model.PredictResponse{Error: ErrNoReviewText})
		return
	}

	start := time.Now()
	result, err := h.classifier.Classify(c.Request.Context(), text)
	elapsed := time.Since(start)

	// Whitespace-only text passes the emptiness check above but carries
	// nothing to classify, so it gets the same 400.
	if errors.Is(err, classify.ErrEmptyReview) {
		c.JSON(http.StatusBadRequest, model.PredictResponse{Error: ErrNoReviewText})
		return
	}
	if err != nil {
		h.metrics.ObserveError(elapsed)
		log.Error("prediction failed",
			zap.Error(err),
			zap.String("classifier", h.classifier.Name()),
			zap.Int("review_length", len(text)),
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, model.PredictResponse{Error: ErrPredictionFailed})
		return
	}

	h.metrics.ObservePrediction(result.Label, elapsed)
	log.Debug("prediction served",
		zap.String("label", result.Label.String()),
		zap.Float64("score", result.Score),
		zap.Duration("elapsed", elapsed),
	)

	c.JSON(http.StatusOK, model.PredictResponse{
		Review:     text,
		Prediction: result.Label.String(),
	})
}

// readReview decodes the request body and extracts the "review" field.
// Falsy values (missing, null, "", false, 0, empty array or object) yield "".
func readReview(body io.Reader) (string, error) {
	var payload map[string]any
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode request: %w", err)
	}
	if payload == nil {
		return "", fmt.Errorf("decode request: body is not a JSON object")
	}

	switch v := payload["review"].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		if !v {
			return "", nil
		}
	case float64:
		if v == 0 {
			return "", nil
		}
	case []any:
		if len(v) == 0 {
			return "", nil
		}
	case map[string]any:
		if len(v) == 0 {
			return "", nil
		}
	}
	return "", errReviewNotString
}
