package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/haasonsaas/affirmly/pkg/affirm"
	"github.com/haasonsaas/affirmly/pkg/validate"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// rateLimit gates the affirmation route only; everything else bypasses the
// limiter entirely.
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(clientIdentifier(c), time.Now()) {
			respondError(c, http.StatusTooManyRequests, errKindRateLimit,
				"Too many requests. Please try again shortly.", nil, s.logger)
			return
		}
		c.Next()
	}
}

func (s *Server) handleCreateAffirmation(c *gin.Context) {
	logger := requestLogger(c, s.logger)

	var req affirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, errKindValidation,
			"Invalid request payload.", []fieldDetail{{Field: "body", Message: "request body must be valid JSON"}}, s.logger)
		return
	}

	if req.Language == "" {
		req.Language = affirm.DefaultLanguage
	}

	// Payload-shape checks run before the rule chain and fail with a
	// generic message plus per-field details.
	var details []fieldDetail
	if _, ok := affirm.SupportedLanguages[req.Language]; !ok {
		details = append(details, fieldDetail{Field: "language", Message: "language must be one of: en, af, la, zh, ru, de, fr, es"})
	}
	for _, bound := range validate.Bounds(req.Name, req.Feeling, req.Details) {
		details = append(details, fieldDetail{Field: bound.Field, Message: bound.Message})
	}
	if len(details) > 0 {
		respondError(c, http.StatusUnprocessableEntity, errKindValidation,
			"Invalid request payload.", details, s.logger)
		return
	}

	name, ruleErr := validate.Name(req.Name)
	if ruleErr == nil {
		var feeling string
		if feeling, ruleErr = validate.Feeling(req.Feeling); ruleErr == nil {
			s.generateAffirmation(c, affirm.Request{
				Name:     name,
				Feeling:  feeling,
				Details:  strings.TrimSpace(req.Details),
				Language: req.Language,
			})
			return
		}
	}

	logger.Info().Str("field", ruleErr.Field).Msg("Validation rule rejected input")
	respondError(c, http.StatusUnprocessableEntity, errKindValidation,
		ruleErr.Message, []fieldDetail{{Field: ruleErr.Field, Message: ruleErr.Message}}, s.logger)
}

// generateAffirmation calls the collaborator with a validated request. The
// limiter lock is never held here; the quota was already consumed on
// admission, and stays consumed even if the caller disconnects mid-call.
func (s *Server) generateAffirmation(c *gin.Context, req affirm.Request) {
	logger := requestLogger(c, s.logger)

	if s.generator == nil {
		respondError(c, http.StatusInternalServerError, errKindHTTP,
			"Server is missing OPENAI_API_KEY.", nil, s.logger)
		return
	}

	text, err := s.generator.Generate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, affirm.ErrEmptyCompletion) {
			respondError(c, http.StatusBadGateway, errKindHTTP,
				"Empty response from language model.", nil, s.logger)
			return
		}
		logger.Error().Err(err).Msg("Affirmation generation failed")
		respondError(c, http.StatusBadGateway, errKindHTTP,
			"Failed to generate affirmation.", nil, s.logger)
		return
	}

	logger.Info().Str("language", req.Language).Msg("Affirmation generated")
	c.JSON(http.StatusOK, affirmationResponse{Affirmation: text})
}
