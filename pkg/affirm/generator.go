package affirm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"

	"github.com/haasonsaas/affirmly/pkg/config"
)

// ErrEmptyCompletion reports that the model returned no usable text.
var ErrEmptyCompletion = errors.New("empty response from language model")

// Request carries the validated, cleaned fields an affirmation is
// generated from.
type Request struct {
	Name     string
	Feeling  string
	Details  string
	Language string
}

// Generator produces one affirmation for a validated request.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// OpenAIGenerator implements Generator against the OpenAI Responses API.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    config.OpenAIConfig
}

func NewOpenAIGenerator(cfg config.OpenAIConfig) *OpenAIGenerator {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutS) * time.Second,
		}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	return &OpenAIGenerator{client: &client, cfg: cfg}
}

// Generate performs a non-streaming completion request and returns the
// sanitized affirmation text.
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(g.cfg.Model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(systemPrompt, responses.EasyInputMessageRoleSystem),
				responses.ResponseInputItemParamOfMessage(UserPrompt(req), responses.EasyInputMessageRoleUser),
			},
		},
		MaxOutputTokens: openai.Int(int64(g.cfg.MaxOutputTokens)),
		Temperature:     openai.Float(g.cfg.Temperature),
	}

	result, err := g.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}

	text := Sanitize(result.OutputText())
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
