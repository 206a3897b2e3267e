package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ppiankov/reviewlens/internal/limit"
	"github.com/ppiankov/reviewlens/internal/metrics"
	"github.com/ppiankov/reviewlens/internal/page"
)

// NewRouter wires middleware and routes onto a fresh gin engine.
// A nil limiter disables rate limiting.
func NewRouter(h *Handler, limiter *limit.Limiter, m *metrics.Metrics, origins []string, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(RequestID())
	router.Use(Logger(logger))
	router.Use(Recovery(logger))
	router.Use(CORS(origins))

	router.GET("/", h.Index)
	router.StaticFS("/static", http.FS(page.Static()))
	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	predict := router.Group("/predict")
	if limiter != nil {
		predict.Use(RateLimit(limiter))
	}
	predict.POST("", h.Predict)

	return router
}
