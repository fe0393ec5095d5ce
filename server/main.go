package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/haasonsaas/affirmly/pkg/affirm"
	"github.com/haasonsaas/affirmly/pkg/config"
	"github.com/haasonsaas/affirmly/pkg/telemetry"
)

var (
	listen     = flag.String("listen", "", "Listen address (overrides config)")
	configPath = flag.String("config", "affirmly.yaml", "Config file path")
	Version    = "dev"
)

type Server struct {
	config    *config.ServiceConfig
	limiter   *RateLimiter
	generator affirm.Generator
	logger    zerolog.Logger
}

func main() {
	flag.Parse()

	// Optional .env for local development; env vars win either way.
	_ = godotenv.Load()

	configureServerLogger()
	log.Info().Str("version", Version).Msg("Affirmly Server starting")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid config")
	}
	applyServerLogging(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := telemetry.SetupTracing(ctx, telemetry.Options{
		ServiceName:    "affirmly-server",
		ServiceVersion: Version,
		Endpoint:       cfg.Tracing.Endpoint,
		Insecure:       cfg.Tracing.Insecure,
		SampleRatio:    cfg.Tracing.SampleRatio,
		LogSpans:       cfg.Tracing.LogSpans,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Tracer shutdown failed")
		}
	}()

	var generator affirm.Generator
	if cfg.OpenAI.APIKey != "" {
		generator = affirm.NewOpenAIGenerator(cfg.OpenAI)
	} else {
		log.Warn().Msg("OPENAI_API_KEY is not set. /api/affirmation will fail until configured.")
	}

	srv := &Server{
		config:    cfg,
		limiter:   NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second),
		generator: generator,
		logger:    log.Logger,
	}

	go srv.evictLoop(ctx, time.Duration(cfg.Server.EvictionIntervalS)*time.Second)

	httpSrv := &http.Server{
		Addr:    cfg.Server.Listen,
		Handler: srv.buildRouter(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	log.Info().Str("listen", cfg.Server.Listen).Int("rate_limit_max", cfg.RateLimit.MaxRequests).Int("rate_limit_window_s", cfg.RateLimit.WindowSeconds).Msg("Listening")

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutS)*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(withRequestContext(s.logger))
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		respondError(c, http.StatusInternalServerError, errKindInternal, "Unexpected server error.", nil, s.logger)
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.CORS.AllowedOrigins,
		AllowMethods:     []string{"POST", "OPTIONS", "GET"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	r.GET("/health", s.handleHealth)
	r.POST("/api/affirmation", s.rateLimit(), s.handleCreateAffirmation)

	return r
}

// evictLoop periodically drops limiter clients whose windows have drained.
func (s *Server) evictLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := s.limiter.EvictIdle(time.Now())
			if evicted > 0 {
				log.Debug().Int("evicted", evicted).Int("keys", s.limiter.Stats().Keys).Msg("Evicted idle rate limit clients")
			}
		}
	}
}

func configureServerLogger() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.DurationFieldUnit = time.Millisecond

	level := zerolog.InfoLevel
	if raw := strings.ToLower(strings.TrimSpace(os.Getenv("AFFIRMLY_LOG_LEVEL"))); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	format := strings.ToLower(strings.TrimSpace(os.Getenv("AFFIRMLY_LOG_FORMAT")))

	logger := newServerLogger(format)
	log.Logger = logger.Level(level)
	zerolog.SetGlobalLevel(level)
}

func applyServerLogging(cfg config.LoggingConfig) {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil {
		level = parsed
	}

	format := "console"
	if cfg.JSON {
		format = "json"
	}

	logger := newServerLogger(format)
	log.Logger = logger.Level(level)
	zerolog.SetGlobalLevel(level)
}

func newServerLogger(format string) zerolog.Logger {
	if format == "json" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(writer).With().Timestamp().Logger()
}
