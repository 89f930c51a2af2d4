package config

// ModelPreset describes the default models for a provider.
type ModelPreset struct {
	Model          string
	EmbeddingModel string
}

// modelPresets maps each provider to its default model choices. OpenAI
// embeddings back the history index for all cloud providers.
var modelPresets = map[ProviderType]ModelPreset{
	ProviderAnthropic: {Model: "claude-sonnet-4-5-20250929", EmbeddingModel: "text-embedding-3-small"},
	ProviderOpenAI:    {Model: "gpt-4o", EmbeddingModel: "text-embedding-3-small"},
	ProviderGoogle:    {Model: "gemini-2.0-flash", EmbeddingModel: "text-embedding-3-small"},
	ProviderOllama:    {Model: "HuggingFaceH4/zephyr-7b-beta", EmbeddingModel: "text-embedding-3-small"},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:                ProviderOpenAI,
		Model:                   "gpt-4o",
		EmbeddingModel:          "text-embedding-3-small",
		OutputDir:               "runs",
		EnableCache:             true,
		EnablePromptHistory:     false,
		LogToFile:               true,
		MaxTokens:               4096,
		Temperature:             1.0,
		Seed:                    42,
		OpenAIFractionRateLimit: 0.5,
		OpenAINumThreads:        50,
		GeminiNumThreads:        100,
		AnthropicNumThreads:     40,
		SpeechRPMCap:            10,
		Server: ServerConfig{
			Port: 8321,
		},
	}
}

// GetPreset returns the model preset for the given provider, falling back
// to the OpenAI preset for unknown providers.
func GetPreset(provider ProviderType) ModelPreset {
	if preset, ok := modelPresets[provider]; ok {
		return preset
	}
	return modelPresets[ProviderOpenAI]
}
