package experiment

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ewhitt/promptlab/internal/llm"
)

// LedgerFileName is the append-only cost ledger inside the output directory.
const LedgerFileName = "api-costs.jsonl"

// CostEntry is one ledger line: the cost delta since the previous entry
// merged with caller-supplied metadata.
type CostEntry struct {
	Cost     float64
	Metadata map[string]string
}

// LogAPICost appends one record to the cost ledger: the client's running
// cost minus the last recorded cumulative value, merged with metadata. The
// ledger file is opened per call and only ever appended to.
func (c *Config) LogAPICost(client *llm.Client, metadata map[string]string) error {
	entry := map[string]any{"cost": client.RunningCost() - c.lastAPICost}
	for k, v := range metadata {
		entry[k] = v
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshalling cost entry: %w", err)
	}

	path := filepath.Join(c.OutputDir, LedgerFileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening cost ledger: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("appending to cost ledger: %w", err)
	}

	c.lastAPICost = client.RunningCost()
	return nil
}

// ReadLedger parses the cost ledger under the given output directory.
// A missing ledger yields an empty list.
func ReadLedger(outputDir string) ([]CostEntry, error) {
	f, err := os.Open(filepath.Join(outputDir, LedgerFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening cost ledger: %w", err)
	}
	defer f.Close()

	var entries []CostEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw map[string]any
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return nil, fmt.Errorf("parsing cost ledger line: %w", err)
		}

		entry := CostEntry{Metadata: make(map[string]string)}
		for k, v := range raw {
			if k == "cost" {
				if cost, ok := v.(float64); ok {
					entry.Cost = cost
				}
				continue
			}
			entry.Metadata[k] = fmt.Sprintf("%v", v)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning cost ledger: %w", err)
	}
	return entries, nil
}

// TotalCost sums the deltas of all ledger entries.
func TotalCost(entries []CostEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Cost
	}
	return total
}
