package history

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	chromem "github.com/philippgille/chromem-go"
)

const collectionName = "prompt-history"

// indexFileName is the on-disk snapshot of the index inside the history dir.
const indexFileName = "index.gob.gz"

// SearchResult is one semantic search hit over the history index.
type SearchResult struct {
	Record     Record
	Similarity float32
}

// Index is a chromem-backed semantic index over history records.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewIndex creates an in-memory index using the given embedder.
func NewIndex(embedder Embedder) (*Index, error) {
	db := chromem.NewDB()
	ef := toChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Index{db: db, collection: col, embedFunc: ef}, nil
}

// Add indexes the given records. The embedded text is the prompt followed
// by the response so either side of the exchange is searchable.
func (ix *Index) Add(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(records))
	for i, rec := range records {
		docs[i] = chromem.Document{
			ID:       rec.ID,
			Content:  rec.PromptText + "\n\n" + rec.Response,
			Metadata: recordToMetadata(rec),
		}
	}
	return ix.collection.AddDocuments(ctx, docs, 1)
}

// Search returns up to limit records most similar to the query.
func (ix *Index) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	// chromem-go requires nResults <= collection size.
	if count := ix.collection.Count(); limit > count && count > 0 {
		limit = count
	} else if count == 0 {
		return nil, nil
	}

	results, err := ix.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			Record:     metadataToRecord(r.ID, r.Metadata),
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

// Count returns the number of indexed records.
func (ix *Index) Count() int { return ix.collection.Count() }

// Persist snapshots the index under the given directory.
func (ix *Index) Persist(dir string) error {
	return ix.db.ExportToFile(filepath.Join(dir, indexFileName), true, "")
}

// Load restores an index snapshot from the given directory.
func (ix *Index) Load(dir string) error {
	if err := ix.db.ImportFromFile(filepath.Join(dir, indexFileName), ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := ix.db.GetCollection(collectionName, ix.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	ix.collection = col
	return nil
}

func recordToMetadata(rec Record) map[string]string {
	return map[string]string{
		"time":     rec.Time.Format(time.RFC3339),
		"provider": rec.Provider,
		"model":    rec.Model,
		"prompt":   rec.PromptText,
		"response": rec.Response,
		"cost_usd": strconv.FormatFloat(rec.CostUSD, 'f', -1, 64),
	}
}

func metadataToRecord(id string, m map[string]string) Record {
	t, _ := time.Parse(time.RFC3339, m["time"])
	cost, _ := strconv.ParseFloat(m["cost_usd"], 64)
	return Record{
		ID:         id,
		Time:       t,
		Provider:   m["provider"],
		Model:      m["model"],
		PromptText: m["prompt"],
		Response:   m["response"],
		CostUSD:    cost,
	}
}
