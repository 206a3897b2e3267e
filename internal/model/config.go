package model

import "time"

// Config is the complete reviewlens configuration
type Config struct {
	Server       ServerConfig     `yaml:"server" mapstructure:"server"`
	Client       ClientConfig     `yaml:"client" mapstructure:"client"`
	Classifier   ClassifierConfig `yaml:"classifier" mapstructure:"classifier"`
	RateLimiting RateLimitConfig  `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Log          LogConfig        `yaml:"log" mapstructure:"log"`
}

// ServerConfig controls the prediction HTTP service
type ServerConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	Mode            string        `yaml:"mode" mapstructure:"mode"` // gin mode: debug, release, test
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	AllowOrigins    []string      `yaml:"allow_origins" mapstructure:"allow_origins"`
}

// ClientConfig controls submissions made from the CLI
type ClientConfig struct {
	Endpoint     string        `yaml:"endpoint" mapstructure:"endpoint"` // Base URL, "/predict" is appended
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`   // 0 leaves the transport without a deadline
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// ClassifierConfig selects and tunes the server-side classifier
type ClassifierConfig struct {
	Provider  string  `yaml:"provider" mapstructure:"provider"` // heuristic, openai, anthropic, ollama
	Model     string  `yaml:"model,omitempty" mapstructure:"model"`
	APIKey    string  `yaml:"-" mapstructure:"api_key"` // Never written to disk
	BaseURL   string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"` // heuristic cut-off for "Fake"

	HTTPProxy  string `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// RateLimitConfig controls per-client throttling of /predict
type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled" mapstructure:"enabled"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
	IdleTTL           time.Duration `yaml:"idle_ttl" mapstructure:"idle_ttl"`
}

// LogConfig controls the structured logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":5000",
			Mode:            "release",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowOrigins:    []string{"*"},
		},
		Client: ClientConfig{
			Endpoint:     "http://localhost:5000",
			Timeout:      0,
			UserAgent:    "reviewlens/0.1 (+https://github.com/ppiankov/reviewlens)",
			MaxBodyBytes: 1 << 20,
		},
		Classifier: ClassifierConfig{
			Provider:  "heuristic",
			Timeout:   30,
			MaxTokens: 5,
			Threshold: 0.5,
		},
		RateLimiting: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 5,
			BurstSize:         10,
			IdleTTL:           10 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
