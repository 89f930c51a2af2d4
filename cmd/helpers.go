package cmd

import (
	"fmt"
	"os"

	"github.com/ewhitt/promptlab/internal/config"
	"github.com/ewhitt/promptlab/internal/history"
	"github.com/ewhitt/promptlab/internal/llm"
	"github.com/ewhitt/promptlab/internal/prompt"
)

// llmRequest builds a completion request from the file config and a prompt.
func llmRequest(cfg *config.Config, p prompt.Prompt) llm.Request {
	return llm.Request{
		Model:       cfg.Model,
		Prompt:      p,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `promptlab init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w\nRun `promptlab init` to reconfigure", err)
	}
	return cfg, nil
}

// newEmbedder creates the embedder backing the history index. OpenAI
// embeddings are used regardless of the inference provider.
func newEmbedder(cfg *config.Config) (history.Embedder, error) {
	apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for history embeddings")
	}
	return history.NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel), nil
}
