package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/reviewlens/internal/logging"
	"github.com/ppiankov/reviewlens/internal/model"
)

// Version is set at build time with -ldflags "-X ...cli.Version=..."
var Version = "v0.1.0"

// ErrSubmissionFailed is returned when a submission ended in an error display.
// The display has already been printed, so main only sets the exit code.
var ErrSubmissionFailed = errors.New("submission failed")

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "reviewlens",
	Short: "ReviewLens - fake review detection service and client",
	Long: `ReviewLens classifies product reviews as Fake or Real.

Run the prediction service with 'reviewlens serve', then submit reviews
from the browser form it serves, or from the terminal with 'check' and
'interactive'.

A prediction is a hint about writing style, not proof of fraud.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number for ReviewLens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "reviewlens %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.reviewlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, config file and ENV variables
func initConfig() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.reviewlens")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	configureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// configureEnv makes v read REVIEWLENS_* variables, e.g. REVIEWLENS_SERVER_ADDR for server.addr
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("REVIEWLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// setDefaults registers every config key so env variables and Unmarshal see them
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.mode", cfg.Server.Mode)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)
	v.SetDefault("server.allow_origins", cfg.Server.AllowOrigins)

	v.SetDefault("client.endpoint", cfg.Client.Endpoint)
	v.SetDefault("client.timeout", cfg.Client.Timeout)
	v.SetDefault("client.user_agent", cfg.Client.UserAgent)
	v.SetDefault("client.max_body_bytes", cfg.Client.MaxBodyBytes)
	v.SetDefault("client.http_proxy", cfg.Client.HTTPProxy)
	v.SetDefault("client.https_proxy", cfg.Client.HTTPSProxy)
	v.SetDefault("client.no_proxy", cfg.Client.NoProxy)

	v.SetDefault("classifier.provider", cfg.Classifier.Provider)
	v.SetDefault("classifier.model", cfg.Classifier.Model)
	v.SetDefault("classifier.api_key", cfg.Classifier.APIKey)
	v.SetDefault("classifier.base_url", cfg.Classifier.BaseURL)
	v.SetDefault("classifier.timeout", cfg.Classifier.Timeout)
	v.SetDefault("classifier.max_tokens", cfg.Classifier.MaxTokens)
	v.SetDefault("classifier.threshold", cfg.Classifier.Threshold)
	v.SetDefault("classifier.http_proxy", cfg.Classifier.HTTPProxy)
	v.SetDefault("classifier.https_proxy", cfg.Classifier.HTTPSProxy)
	v.SetDefault("classifier.no_proxy", cfg.Classifier.NoProxy)

	v.SetDefault("rate_limiting.enabled", cfg.RateLimiting.Enabled)
	v.SetDefault("rate_limiting.requests_per_second", cfg.RateLimiting.RequestsPerSecond)
	v.SetDefault("rate_limiting.burst_size", cfg.RateLimiting.BurstSize)
	v.SetDefault("rate_limiting.idle_ttl", cfg.RateLimiting.IdleTTL)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

// loadConfig merges defaults, config file, env and flags into a Config
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	setDefaults(v, cfg)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if v.GetBool("verbose") {
		cfg.Log.Level = "debug"
	}

	applyProviderEnv(&cfg.Classifier)
	return cfg, nil
}

// applyProviderEnv fills provider credentials from their conventional variables
func applyProviderEnv(c *model.ClassifierConfig) {
	switch strings.ToLower(c.Provider) {
	case "openai":
		if c.APIKey == "" {
			c.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if c.APIKey == "" {
			c.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "ollama":
		if c.BaseURL == "" {
			c.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}
}

// setup loads the config and builds the logger for a command
func setup() (*model.Config, *zap.Logger, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, nil, err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}
	return cfg, log, nil
}
