package experiment

import (
	"bufio"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// Setup is a one-time initializer for an experiment run: it creates the
// output directory, seeds the two PRNGs, attaches a timestamped log file,
// and loads environment defaults. Environment loading happens after logging
// is configured so it is observed by the just-installed handler.
func (c *Config) Setup(logFilePrefix string) error {
	if logFilePrefix == "" {
		logFilePrefix = "run"
	}

	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	c.Rand = rand.New(rand.NewSource(c.Seed))
	c.NoiseRand = rand.New(rand.NewSource(42))

	if c.LogToFile {
		logDir := filepath.Join(c.OutputDir, "logs")
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		logPath := filepath.Join(logDir, fmt.Sprintf("%s-%s.log", logFilePrefix, c.DatetimeStr))
		logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		fmt.Printf("Logging to %s\n", logPath)
		fmt.Printf("You can tail the log file with: tail -f %s\n", logPath)
		slog.SetDefault(slog.New(slog.NewTextHandler(logFile, nil)))
	}

	slog.Info("experiment configuration",
		"output_dir", c.OutputDir,
		"enable_cache", c.EnableCache,
		"enable_prompt_history", c.EnablePromptHistory,
		"seed", c.Seed,
		"datetime", c.DatetimeStr,
	)

	return loadDotEnv(".env")
}

// loadDotEnv loads KEY=VALUE lines from the given file into the process
// environment. Already-set variables win; a missing file is not an error.
func loadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
			slog.Info("loaded environment variable", "key", key)
		}
	}
	return scanner.Err()
}
