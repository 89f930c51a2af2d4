package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".promptlab.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != ProviderOpenAI || cfg.Model != "gpt-4o" {
		t.Errorf("got provider=%s model=%s", cfg.Provider, cfg.Model)
	}
	if !cfg.EnableCache || cfg.EnablePromptHistory {
		t.Error("expected cache on and history off by default")
	}
	if cfg.Seed != 42 {
		t.Errorf("seed = %d, want 42", cfg.Seed)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".promptlab.yml")
	content := `
provider: anthropic
model: claude-sonnet-4-5-20250929
output_dir: experiments
enable_prompt_history: true
temperature: 0.3
dataset:
  glob: "data/**/*.wav"
  user_prompt: transcribe
server:
  port: 9000
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider != ProviderAnthropic {
		t.Errorf("provider = %s", cfg.Provider)
	}
	if cfg.OutputDir != "experiments" {
		t.Errorf("output_dir = %s", cfg.OutputDir)
	}
	if !cfg.EnablePromptHistory {
		t.Error("expected prompt history enabled")
	}
	if cfg.Temperature != 0.3 {
		t.Errorf("temperature = %f", cfg.Temperature)
	}
	if cfg.Dataset.Glob != "data/**/*.wav" || cfg.Dataset.UserPrompt != "transcribe" {
		t.Errorf("dataset = %+v", cfg.Dataset)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".promptlab.yml")
	if err := os.WriteFile(path, []byte("model: gpt-4o\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PROMPTLAB_MODEL", "gpt-4o-mini")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want env override", cfg.Model)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".promptlab.yml")

	cfg := DefaultConfig()
	cfg.Provider = ProviderGoogle
	cfg.Model = "gemini-2.0-flash"
	cfg.Seed = 1234

	if err := cfg.Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Provider != ProviderGoogle || loaded.Model != "gemini-2.0-flash" || loaded.Seed != 1234 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"missing provider", func(c *Config) { c.Provider = "" }, true},
		{"unknown provider", func(c *Config) { c.Provider = "bedrock" }, true},
		{"missing model", func(c *Config) { c.Model = "" }, true},
		{"missing output dir", func(c *Config) { c.OutputDir = "" }, true},
		{"negative max tokens", func(c *Config) { c.MaxTokens = -1 }, true},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, true},
		{"fraction out of range", func(c *Config) { c.OpenAIFractionRateLimit = 1.5 }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExperimentMapping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputDir = "runs/x"
	cfg.EnablePromptHistory = true
	cfg.Seed = 99
	cfg.SpeechRPMCap = 3

	exp := cfg.Experiment()
	if exp.OutputDir != "runs/x" {
		t.Errorf("output dir = %q", exp.OutputDir)
	}
	if !exp.EnablePromptHistory {
		t.Error("expected prompt history enabled")
	}
	if exp.Seed != 99 {
		t.Errorf("seed = %d", exp.Seed)
	}
	if exp.SpeechRPMCap != 3 {
		t.Errorf("speech rpm cap = %d", exp.SpeechRPMCap)
	}
}

func TestGetPreset(t *testing.T) {
	if GetPreset(ProviderOllama).Model != "HuggingFaceH4/zephyr-7b-beta" {
		t.Errorf("ollama preset = %+v", GetPreset(ProviderOllama))
	}
	// Unknown providers fall back to the OpenAI preset.
	if GetPreset(ProviderType("nope")).Model != "gpt-4o" {
		t.Errorf("fallback preset = %+v", GetPreset(ProviderType("nope")))
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := map[ProviderType]string{
		ProviderAnthropic: "ANTHROPIC_API_KEY",
		ProviderOpenAI:    "OPENAI_API_KEY",
		ProviderGoogle:    "GOOGLE_API_KEY",
		ProviderOllama:    "",
	}
	for provider, want := range tests {
		if got := APIKeyEnvVar(provider); got != want {
			t.Errorf("APIKeyEnvVar(%s) = %q, want %q", provider, got, want)
		}
	}
}
