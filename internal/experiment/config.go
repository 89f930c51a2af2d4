// Package experiment wires together caching, logging, seeding, and API cost
// accounting for research runs against inference APIs.
package experiment

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ewhitt/promptlab/internal/cache"
	"github.com/ewhitt/promptlab/internal/history"
	"github.com/ewhitt/promptlab/internal/llm"
)

// Config describes one experiment. Experiments sharing an output directory
// share the same cache, log directory, and cost ledger. All fields assume
// single-writer, non-concurrent use within one process.
type Config struct {
	OutputDir string

	// EnableCache controls completion caching; CacheDir defaults to
	// OutputDir/cache when empty.
	EnableCache bool
	CacheDir    string

	// EnablePromptHistory controls prompt-history recording;
	// PromptHistoryDir defaults to OutputDir/prompt-history when empty.
	EnablePromptHistory bool
	PromptHistoryDir    string

	LogToFile bool

	OpenAIFractionRateLimit float64
	OpenAINumThreads        int
	GeminiNumThreads        int
	AnthropicNumThreads     int
	SpeechRPMCap            int

	// OrganizationEnv names the environment variable holding the OpenAI
	// organization ID.
	OrganizationEnv string

	PrintPromptAndResponse bool

	Seed        int64
	DatetimeStr string

	// Rand and NoiseRand are the two independent PRNGs seeded by Setup.
	Rand      *rand.Rand
	NoiseRand *rand.Rand

	client      *llm.Client
	lastAPICost float64
}

// New returns a config with the defaults an experiment run expects.
func New(outputDir string) *Config {
	return &Config{
		OutputDir:               outputDir,
		EnableCache:             true,
		EnablePromptHistory:     false,
		LogToFile:               true,
		OpenAIFractionRateLimit: 0.5,
		OpenAINumThreads:        50,
		GeminiNumThreads:        100,
		AnthropicNumThreads:     40,
		SpeechRPMCap:            10,
		OrganizationEnv:         "OPENAI_ORG",
		Seed:                    42,
		DatetimeStr:             time.Now().Format("2006-01-02T15-04-05"),
	}
}

// BuildClient constructs the inference client for the given provider and
// model: it resolves and creates the cache and prompt-history directories,
// then wraps the base provider with rate limiting, caching, metering, and
// recording. The first successful build is memoized; ResetClient discards it.
func (c *Config) BuildClient(providerType, model string) (*llm.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	opts := llm.ClientOptions{RPM: c.rpmFor(providerType, model)}

	if c.EnableCache {
		dir := c.CacheDir
		if dir == "" {
			dir = filepath.Join(c.OutputDir, "cache")
		}
		store, err := cache.Open(filepath.Join(dir, "completions.db"))
		if err != nil {
			return nil, fmt.Errorf("opening completion cache: %w", err)
		}
		c.CacheDir = dir
		opts.Cache = store
	}

	if c.EnablePromptHistory {
		dir := c.PromptHistoryDir
		if dir == "" {
			dir = filepath.Join(c.OutputDir, "prompt-history")
		}
		store, err := history.NewStore(dir)
		if err != nil {
			return nil, fmt.Errorf("opening prompt history: %w", err)
		}
		c.PromptHistoryDir = dir
		opts.History = store
	}

	base, err := c.buildBaseProvider(providerType, model)
	if err != nil {
		return nil, err
	}

	c.client = llm.NewClient(base, opts)
	return c.client, nil
}

// ResetClient discards the memoized client so the next BuildClient call
// constructs a fresh one.
func (c *Config) ResetClient() { c.client = nil }

func (c *Config) buildBaseProvider(providerType, model string) (llm.Provider, error) {
	if providerType == "openai" && c.OrganizationEnv != "" {
		if org := os.Getenv(c.OrganizationEnv); org != "" {
			apiKey := os.Getenv("OPENAI_API_KEY")
			if apiKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
			}
			return llm.NewOpenAIProviderWithOrg(apiKey, org, model), nil
		}
	}
	return llm.NewProvider(providerType, model)
}

// rpmFor derives the request-per-minute cap for a provider. Speech models
// get their own, much lower cap.
func (c *Config) rpmFor(providerType, model string) int {
	if strings.Contains(model, "audio") && c.SpeechRPMCap > 0 {
		return c.SpeechRPMCap
	}
	switch providerType {
	case "openai":
		return int(float64(c.OpenAINumThreads) * c.OpenAIFractionRateLimit)
	case "google":
		return c.GeminiNumThreads
	case "anthropic":
		return c.AnthropicNumThreads
	default:
		return 0
	}
}
