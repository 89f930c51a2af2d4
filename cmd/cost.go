package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ewhitt/promptlab/internal/experiment"
)

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Summarize API spend from the cost ledger",
	Long:  `Reads the append-only cost ledger under the output directory and prints total spend with a per-entry breakdown.`,
	RunE:  runCost,
}

func init() {
	rootCmd.AddCommand(costCmd)
}

func runCost(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	entries, err := experiment.ReadLedger(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("reading cost ledger: %w", err)
	}

	if len(entries) == 0 {
		fmt.Printf("No costs recorded under %s.\n", cfg.OutputDir)
		return nil
	}

	fmt.Println("API Spend")
	fmt.Println("=========")
	fmt.Printf("  Ledger:  %s/%s\n", cfg.OutputDir, experiment.LedgerFileName)
	fmt.Printf("  Entries: %d\n", len(entries))
	fmt.Printf("  Total:   $%.4f\n", experiment.TotalCost(entries))
	fmt.Println()

	for i, e := range entries {
		fmt.Printf("  %3d. $%.4f", i+1, e.Cost)
		keys := make([]string, 0, len(e.Metadata))
		for k := range e.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s=%s", k, e.Metadata[k])
		}
		fmt.Println()
	}
	return nil
}
