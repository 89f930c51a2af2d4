package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .promptlab.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to promptlab! Let's configure your experiments.")
	fmt.Println()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select inference provider",
		Items: []string{"openai", "anthropic", "google", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	provider := ProviderType(providerStr)
	preset := GetPreset(provider)

	// 2. Model.
	modelPrompt := promptui.Prompt{
		Label:   "Model identifier",
		Default: preset.Model,
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for experiment runs",
		Default: "runs",
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 4. Completion cache.
	cachePrompt := promptui.Select{
		Label: "Cache completions between runs",
		Items: []string{"yes", "no"},
	}
	_, cacheStr, err := cachePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("cache selection: %w", err)
	}

	// 5. Prompt history.
	historyPrompt := promptui.Select{
		Label: "Record prompt history",
		Items: []string{"no", "yes"},
	}
	_, historyStr, err := historyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("history selection: %w", err)
	}

	// 6. Seed.
	seedPrompt := promptui.Prompt{
		Label:   "Random seed",
		Default: "42",
		Validate: func(s string) error {
			_, err := strconv.ParseInt(s, 10, 64)
			return err
		},
	}
	seedStr, err := seedPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	seed, _ := strconv.ParseInt(seedStr, 10, 64)

	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Model = model
	cfg.EmbeddingModel = preset.EmbeddingModel
	cfg.OutputDir = outputDir
	cfg.EnableCache = cacheStr == "yes"
	cfg.EnablePromptHistory = historyStr == "yes"
	cfg.Seed = seed

	// Check for API key.
	envVar := APIKeyEnvVar(provider)
	if envVar != "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running promptlab run.\n", envVar)
		}
	}

	configPath := ".promptlab.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
