package coursegen

import (
	"context"
	"fmt"
	"net/http"

	"syllabus-builder/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// NewModelFactory returns the factory for the configured provider.
func NewModelFactory(cfg config.LLMConfig) (ModelFactory, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("LLM model name cannot be empty")
	}

	// A zero timeout leaves the call bounded only by the request context.
	// googleai is not given the client: a custom client drops its API key option.
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.ProviderGoogleAI:
		return func(ctx context.Context, apiKey string) (llms.Model, error) {
			return googleai.New(ctx,
				googleai.WithAPIKey(apiKey),
				googleai.WithDefaultModel(cfg.Model),
			)
		}, nil
	case config.ProviderOpenAI:
		return func(ctx context.Context, apiKey string) (llms.Model, error) {
			opts := []openai.Option{
				openai.WithToken(apiKey),
				openai.WithModel(cfg.Model),
				openai.WithHTTPClient(httpClient),
			}
			if cfg.ServerURL != "" {
				opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
			}
			return openai.New(opts...)
		}, nil
	case config.ProviderOllama:
		return func(ctx context.Context, _ string) (llms.Model, error) {
			return ollama.New(
				ollama.WithServerURL(cfg.ServerURL),
				ollama.WithModel(cfg.Model),
				ollama.WithHTTPClient(httpClient),
			)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// NewFromConfig wires a LLMCourseGenerator for the configured provider.
func NewFromConfig(cfg config.LLMConfig, logger *zap.Logger) (*LLMCourseGenerator, error) {
	factory, err := NewModelFactory(cfg)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("Initializing course generator",
			zap.String("provider", cfg.Provider),
			zap.String("model", cfg.Model),
			zap.String("api_key_env", cfg.APIKeyEnv),
		)
	}
	return NewLLMCourseGenerator(factory, Settings{
		APIKeyEnv:   cfg.APIKeyEnv,
		RequiresKey: cfg.RequiresAPIKey(),
		Temperature: cfg.Temperature,
	}, logger)
}
