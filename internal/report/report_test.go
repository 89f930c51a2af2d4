package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ewhitt/promptlab/internal/experiment"
	"github.com/ewhitt/promptlab/internal/history"
)

func TestGenerateWritesBothFormats(t *testing.T) {
	dir := t.TempDir()
	ledger := `{"cost": 0.5, "command": "run"}` + "\n"
	if err := os.WriteFile(filepath.Join(dir, experiment.LedgerFileName), []byte(ledger), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := history.NewStore(filepath.Join(dir, "prompt-history"))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Append(history.Record{
		Model:      "gpt-4o",
		PromptText: "user: what is promptlab?",
		Response:   "a harness",
		CostUSD:    0.5,
	}); err != nil {
		t.Fatal(err)
	}

	gen := NewGenerator(dir, "nightly run")
	htmlPath, err := gen.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if htmlPath != filepath.Join(dir, "report.html") {
		t.Errorf("html path = %q", htmlPath)
	}

	md, err := os.ReadFile(filepath.Join(dir, "report.md"))
	if err != nil {
		t.Fatalf("report.md not written: %v", err)
	}
	for _, want := range []string{"# Run report: nightly run", "$0.5000", "what is promptlab?", "a harness"} {
		if !strings.Contains(string(md), want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	html, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("report.html not written: %v", err)
	}
	if !strings.Contains(string(html), "<title>nightly run</title>") {
		t.Error("html missing title")
	}
	if !strings.Contains(string(html), "<h2") {
		t.Error("expected rendered markdown headings")
	}
}

func TestGenerateEmptyRun(t *testing.T) {
	dir := t.TempDir()

	gen := NewGenerator(dir, "")
	if _, err := gen.Generate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	md, err := os.ReadFile(filepath.Join(dir, "report.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "No cost entries recorded.") {
		t.Error("expected empty-cost note")
	}
	if !strings.Contains(string(md), "No prompt history recorded.") {
		t.Error("expected empty-history note")
	}
	// Title defaults to the directory name.
	if !strings.Contains(string(md), filepath.Base(dir)) {
		t.Error("expected default title from directory name")
	}
}
