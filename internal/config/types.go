package config

// ProviderType identifies an inference provider.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderGoogle    ProviderType = "google"
	ProviderOllama    ProviderType = "ollama"
)

// Config is the top-level promptlab configuration, corresponding to
// .promptlab.yml.
type Config struct {
	Provider       ProviderType `yaml:"provider" koanf:"provider"`
	Model          string       `yaml:"model" koanf:"model"`
	EmbeddingModel string       `yaml:"embedding_model" koanf:"embedding_model"`
	OutputDir      string       `yaml:"output_dir" koanf:"output_dir"`

	EnableCache         bool `yaml:"enable_cache" koanf:"enable_cache"`
	EnablePromptHistory bool `yaml:"enable_prompt_history" koanf:"enable_prompt_history"`
	LogToFile           bool `yaml:"log_to_file" koanf:"log_to_file"`

	MaxTokens   int     `yaml:"max_tokens" koanf:"max_tokens"`
	Temperature float64 `yaml:"temperature" koanf:"temperature"`
	Seed        int64   `yaml:"seed" koanf:"seed"`

	OpenAIFractionRateLimit float64 `yaml:"openai_fraction_rate_limit" koanf:"openai_fraction_rate_limit"`
	OpenAINumThreads        int     `yaml:"openai_num_threads" koanf:"openai_num_threads"`
	GeminiNumThreads        int     `yaml:"gemini_num_threads" koanf:"gemini_num_threads"`
	AnthropicNumThreads     int     `yaml:"anthropic_num_threads" koanf:"anthropic_num_threads"`
	SpeechRPMCap            int     `yaml:"speech_rpm_cap" koanf:"speech_rpm_cap"`

	Dataset DatasetConfig `yaml:"dataset" koanf:"dataset"`
	Server  ServerConfig  `yaml:"server" koanf:"server"`
}

// DatasetConfig describes where batch inputs come from.
type DatasetConfig struct {
	Glob         string `yaml:"glob" koanf:"glob"`
	UserPrompt   string `yaml:"user_prompt" koanf:"user_prompt"`
	SystemPrompt string `yaml:"system_prompt" koanf:"system_prompt"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}
