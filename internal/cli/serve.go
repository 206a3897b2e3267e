package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/reviewlens/internal/classify"
	"github.com/ppiankov/reviewlens/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the prediction service",
	Long: `Serve the review form at "/" and the prediction API at "/predict".

POST /predict takes {"review": "..."} and answers {"review": "...", "prediction": "Fake"|"Real"}.

Example:
  reviewlens serve
  reviewlens serve --addr :8080 --rps 2 --burst 5
  reviewlens serve --classifier ollama --model llama3.1:8b`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":5000", "listen address")
	serveCmd.Flags().String("mode", "release", "gin mode (debug, release, test)")
	serveCmd.Flags().String("classifier", "heuristic", "classifier provider (heuristic, openai, anthropic, ollama)")
	serveCmd.Flags().String("model", "", "classifier model name (provider-specific)")
	serveCmd.Flags().Float64("rps", 5, "per-client requests per second on /predict (0 disables limiting)")
	serveCmd.Flags().Int("burst", 10, "per-client burst on /predict")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.mode", serveCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("classifier.provider", serveCmd.Flags().Lookup("classifier"))
	_ = viper.BindPFlag("classifier.model", serveCmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("rate_limiting.requests_per_second", serveCmd.Flags().Lookup("rps"))
	_ = viper.BindPFlag("rate_limiting.burst_size", serveCmd.Flags().Lookup("burst"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.RateLimiting.RequestsPerSecond <= 0 {
		cfg.RateLimiting.Enabled = false
	}

	gin.SetMode(cfg.Server.Mode)

	classifier, err := classify.New(classify.ConfigFromModel(cfg.Classifier))
	if err != nil {
		return fmt.Errorf("create classifier: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	available := classifier.IsAvailable(checkCtx)
	cancel()
	if !available {
		log.Warn("Classifier is not reachable, predictions will fail until it is",
			zap.String("classifier", classifier.Name()),
		)
	}

	srv, err := server.New(cfg, classifier, log)
	if err != nil {
		return err
	}

	log.Info("Prediction service configured",
		zap.String("classifier", classifier.Name()),
		zap.String("model", cfg.Classifier.Model),
		zap.Bool("rate_limiting", cfg.RateLimiting.Enabled),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
