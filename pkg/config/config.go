package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type ServiceConfig struct {
	Server    ServerConfig    `yaml:"server"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

type ServerConfig struct {
	Listen            string `yaml:"listen"`
	ShutdownTimeoutS  int    `yaml:"shutdown_timeout_s"`
	EvictionIntervalS int    `yaml:"limiter_eviction_interval_s"`
}

type OpenAIConfig struct {
	APIKey          string  `yaml:"api_key"`
	Model           string  `yaml:"model"`
	BaseURL         string  `yaml:"base_url"`
	RequestTimeoutS int     `yaml:"request_timeout_s"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	Temperature     float64 `yaml:"temperature"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `yaml:"max_requests"`
	WindowSeconds int `yaml:"window_seconds"`
}

type LoggingConfig struct {
	Level         string `yaml:"level"`
	JSON          bool   `yaml:"json"`
	HumanReadable bool   `yaml:"human_readable"`
}

type TracingConfig struct {
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
	LogSpans    bool    `yaml:"log_spans"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *ServiceConfig {
	return &ServiceConfig{
		Server: ServerConfig{
			Listen:            ":8080",
			ShutdownTimeoutS:  10,
			EvictionIntervalS: 300,
		},
		OpenAI: OpenAIConfig{
			Model:           "gpt-4o-mini",
			RequestTimeoutS: 30,
			MaxOutputTokens: 180,
			Temperature:     0.7,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		RateLimit: RateLimitConfig{
			MaxRequests:   10,
			WindowSeconds: 60,
		},
		Logging: LoggingConfig{
			Level:         "info",
			JSON:          false,
			HumanReadable: true,
		},
		Tracing: TracingConfig{
			Endpoint:    "",
			Insecure:    false,
			SampleRatio: 1,
			LogSpans:    false,
		},
	}
}

// Load reads config from file with env var overrides
func Load(path string) (*ServiceConfig, error) {
	cfg := DefaultConfig()

	// Load from file if exists
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	// Override with env vars
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		cfg.OpenAI.Model = model
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = splitOrigins(origins)
	}
	if raw := os.Getenv("RATE_LIMIT_MAX_REQUESTS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.RateLimit.MaxRequests = n
		}
	}
	if raw := os.Getenv("RATE_LIMIT_WINDOW_SECONDS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.RateLimit.WindowSeconds = n
		}
	}
	if level := os.Getenv("AFFIRMLY_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (c *ServiceConfig) Validate() error {
	if c.Server.Listen == "" {
		return ErrMissingListenAddr
	}
	if c.OpenAI.Model == "" {
		return ErrMissingModel
	}
	if c.RateLimit.MaxRequests <= 0 {
		c.RateLimit.MaxRequests = 10
	}
	if c.RateLimit.WindowSeconds <= 0 {
		c.RateLimit.WindowSeconds = 60
	}
	if c.Server.ShutdownTimeoutS <= 0 {
		c.Server.ShutdownTimeoutS = 10
	}
	if c.Server.EvictionIntervalS <= 0 {
		c.Server.EvictionIntervalS = 300
	}
	if c.OpenAI.RequestTimeoutS <= 0 {
		c.OpenAI.RequestTimeoutS = 30
	}
	if c.OpenAI.MaxOutputTokens <= 0 {
		c.OpenAI.MaxOutputTokens = 180
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		c.OpenAI.Temperature = 0.7
	}
	if c.Tracing.SampleRatio <= 0 || c.Tracing.SampleRatio > 1 {
		c.Tracing.SampleRatio = 1
	}
	// API key absence is allowed at startup; the affirmation route reports
	// the misconfiguration per request instead.
	return nil
}

var (
	ErrMissingListenAddr = &Error{"listen address is required"}
	ErrMissingModel      = &Error{"openai model is required"}
)

type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
