package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ewhitt/promptlab/internal/dataset"
	"github.com/ewhitt/promptlab/internal/progress"
)

var (
	batchGlob   string
	batchUser   string
	batchSystem string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a batch of audio prompts against the configured model",
	Long: `Globs WAV files, pairs each with its sidecar transcript or the shared
user prompt, and sends the whole batch through the configured provider.
Flags override the dataset section of the config file.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchGlob, "glob", "g", "", "glob pattern for WAV files (e.g. data/**/*.wav)")
	batchCmd.Flags().StringVarP(&batchUser, "user", "u", "", "user message paired with each file")
	batchCmd.Flags().StringVarP(&batchSystem, "system", "s", "", "system message applied to every entry")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	glob := cfg.Dataset.Glob
	if batchGlob != "" {
		glob = batchGlob
	}
	if glob == "" {
		return fmt.Errorf("no dataset glob: set dataset.glob in config or pass --glob")
	}
	user := cfg.Dataset.UserPrompt
	if batchUser != "" {
		user = batchUser
	}
	system := cfg.Dataset.SystemPrompt
	if batchSystem != "" {
		system = batchSystem
	}

	batch, err := dataset.Load(glob, user, system)
	if err != nil {
		return err
	}

	// Vectorize up front so malformed entries fail before any API spend.
	stacked, _, _, err := batch.BatchFormat()
	if err != nil {
		return fmt.Errorf("validating batch: %w", err)
	}
	fmt.Printf("Batch of %d prompts, audio padded to %d samples at %d Hz\n",
		batch.Len(), stacked.MaxLen(), stacked.SampleRate)

	exp := cfg.Experiment()
	if err := exp.Setup("batch"); err != nil {
		return fmt.Errorf("setting up experiment: %w", err)
	}

	client, err := exp.BuildClient(string(cfg.Provider), cfg.Model)
	if err != nil {
		return fmt.Errorf("building client: %w", err)
	}

	reporter := progress.NewReporter()
	reporter.Start(batch.Len())

	var failures int
	for i := 0; i < batch.Len(); i++ {
		reporter.Update(i, fmt.Sprintf("prompt %d/%d", i+1, batch.Len()))

		resp, err := client.Complete(ctx, llmRequest(cfg, batch.At(i)))
		if err != nil {
			failures++
			fmt.Printf("\nprompt %d failed: %v\n", i, err)
			continue
		}

		if verbose {
			fmt.Printf("\n[%d] %s\n", i, resp.Content)
		}
	}
	reporter.Update(batch.Len(), "done")
	reporter.Finish()

	if err := exp.LogAPICost(client, map[string]string{
		"command": "batch",
		"model":   cfg.Model,
		"glob":    glob,
		"size":    fmt.Sprintf("%d", batch.Len()),
	}); err != nil {
		return err
	}

	fmt.Printf("Completed %d/%d prompts, total spend $%.4f\n",
		batch.Len()-failures, batch.Len(), client.RunningCost())
	if failures > 0 {
		return fmt.Errorf("%d prompt(s) failed", failures)
	}
	return nil
}
