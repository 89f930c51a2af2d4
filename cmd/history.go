package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ewhitt/promptlab/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded prompt/response exchanges",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent exchanges, newest first",
	RunE:  runHistoryList,
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Semantically search past exchanges",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistorySearch,
}

func init() {
	historyCmd.PersistentFlags().IntVarP(&historyLimit, "limit", "n", 10, "maximum results")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historySearchCmd)
	rootCmd.AddCommand(historyCmd)
}

// historyStore opens the history store for the configured output directory.
func historyStore() (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.EnablePromptHistory {
		return nil, fmt.Errorf("prompt history is disabled: set enable_prompt_history in %s", cfgFile)
	}
	return history.NewStore(filepath.Join(cfg.OutputDir, "prompt-history"))
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := historyStore()
	if err != nil {
		return err
	}

	records, err := store.List(historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No exchanges recorded.")
		return nil
	}

	for _, rec := range records {
		printRecord(rec, -1)
	}
	return nil
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := historyStore()
	if err != nil {
		return err
	}

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return err
	}

	index, err := history.NewIndex(embedder)
	if err != nil {
		return err
	}

	// Index all records fresh. Runs are small enough that re-embedding on
	// each search beats keeping the snapshot in sync with the JSONL files.
	records, err := store.List(0)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No exchanges recorded.")
		return nil
	}
	if err := index.Add(ctx, records); err != nil {
		return fmt.Errorf("indexing history: %w", err)
	}

	results, err := index.Search(ctx, args[0], historyLimit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for _, r := range results {
		printRecord(r.Record, float64(r.Similarity))
	}
	return nil
}

// printRecord writes one exchange to stdout. A non-negative similarity is
// shown as a match percentage.
func printRecord(rec history.Record, similarity float64) {
	header := fmt.Sprintf("%s  %s", rec.Time.Format("2006-01-02 15:04:05"), rec.Model)
	if similarity >= 0 {
		header += fmt.Sprintf("  (%.1f%% match)", similarity*100)
	}
	fmt.Println(header)
	fmt.Printf("  prompt:   %s\n", firstLine(rec.PromptText))
	fmt.Printf("  response: %s\n", firstLine(rec.Response))
	fmt.Printf("  cost:     $%.4f\n\n", rec.CostUSD)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
