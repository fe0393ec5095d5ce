package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsSurviveValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.RateLimit.MaxRequests != 10 || cfg.RateLimit.WindowSeconds != 60 {
		t.Errorf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("unexpected default model: %s", cfg.OpenAI.Model)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "affirmly.yaml")
	data := []byte("server:\n  listen: \":9090\"\nrate_limit:\n  max_requests: 5\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "120")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Listen != ":9090" {
		t.Errorf("file override lost: %s", cfg.Server.Listen)
	}
	if cfg.RateLimit.MaxRequests != 5 {
		t.Errorf("file rate limit lost: %d", cfg.RateLimit.MaxRequests)
	}
	if cfg.RateLimit.WindowSeconds != 120 {
		t.Errorf("env window override lost: %d", cfg.RateLimit.WindowSeconds)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("env openai overrides lost: %+v", cfg.OpenAI)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[0] != "https://a.example" {
		t.Errorf("origins not split and trimmed: %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("unexpected listen default: %s", cfg.Server.Listen)
	}
}

func TestValidateNormalizesBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit.MaxRequests = -1
	cfg.RateLimit.WindowSeconds = 0
	cfg.OpenAI.Temperature = 9
	cfg.Tracing.SampleRatio = 2
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if cfg.RateLimit.MaxRequests != 10 || cfg.RateLimit.WindowSeconds != 60 {
		t.Errorf("rate limit not normalized: %+v", cfg.RateLimit)
	}
	if cfg.OpenAI.Temperature != 0.7 {
		t.Errorf("temperature not normalized: %f", cfg.OpenAI.Temperature)
	}
	if cfg.Tracing.SampleRatio != 1 {
		t.Errorf("sample ratio not normalized: %f", cfg.Tracing.SampleRatio)
	}
}

func TestValidateRejectsMissingListen(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Listen = ""
	if err := cfg.Validate(); err != ErrMissingListenAddr {
		t.Fatalf("expected ErrMissingListenAddr, got %v", err)
	}
}
