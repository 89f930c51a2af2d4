// Package history records every prompt/response exchange and offers
// semantic search over past records.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is one prompt/response exchange.
type Record struct {
	ID         string            `json:"id"`
	Time       time.Time         `json:"time"`
	Provider   string            `json:"provider"`
	Model      string            `json:"model"`
	PromptText string            `json:"prompt_text"`
	Response   string            `json:"response"`
	CostUSD    float64           `json:"cost_usd"`
	Cached     bool              `json:"cached,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Store appends records to day-partitioned JSONL files under a directory.
// Single-writer, non-concurrent use within one process is assumed.
type Store struct {
	dir string
}

// NewStore creates the history directory if needed and returns a store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory records are written under.
func (s *Store) Dir() string { return s.dir }

// Append writes one record. A missing ID or timestamp is filled in.
func (s *Store) Append(rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}

	path := filepath.Join(s.dir, rec.Time.Format("2006-01-02")+".jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshalling history record: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing history record: %w", err)
	}
	return nil
}

// List returns up to limit records, newest first. A non-positive limit
// returns everything.
func (s *Store) List(limit int) ([]Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading history directory: %w", err)
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jsonl") {
			continue
		}
		recs, err := readRecords(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func readRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening history file %s: %w", path, err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("parsing history record in %s: %w", path, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning history file %s: %w", path, err)
	}
	return records, nil
}
