package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ewhitt/promptlab/internal/experiment"
	"github.com/ewhitt/promptlab/internal/history"
)

func writeLedger(t *testing.T, dir string, lines ...string) {
	t.Helper()
	path := filepath.Join(dir, experiment.LedgerFileName)
	var data []byte
	for _, l := range lines {
		data = append(data, l...)
		data = append(data, '\n')
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := New(Config{Port: 0, OutputDir: t.TempDir()}, "")
	rec := get(t, srv, "/healthz")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestCostsEndpoint(t *testing.T) {
	dir := t.TempDir()
	writeLedger(t, dir,
		`{"cost": 0.5, "step": "first"}`,
		`{"cost": 1.25, "step": "second"}`,
	)

	srv := New(Config{Port: 0, OutputDir: dir}, "")
	rec := get(t, srv, "/api/costs")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(out))
	}
	if out[0]["cost"].(float64) != 0.5 || out[1]["step"] != "second" {
		t.Errorf("got %v", out)
	}
}

func TestCostSummaryEndpoint(t *testing.T) {
	dir := t.TempDir()
	writeLedger(t, dir, `{"cost": 0.5}`, `{"cost": 1.5}`)

	srv := New(Config{Port: 0, OutputDir: dir}, "")
	rec := get(t, srv, "/api/costs/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out["total_usd"].(float64) != 2.0 {
		t.Errorf("total = %v", out["total_usd"])
	}
	if out["entries"].(float64) != 2 {
		t.Errorf("entries = %v", out["entries"])
	}
}

func TestHistoryEndpointDisabled(t *testing.T) {
	srv := New(Config{Port: 0, OutputDir: t.TempDir()}, "")
	rec := get(t, srv, "/api/history")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	historyDir := t.TempDir()
	store, err := history.NewStore(historyDir)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := store.Append(history.Record{Model: "gpt-4o", PromptText: "q", Response: "a"}); err != nil {
			t.Fatal(err)
		}
	}

	srv := New(Config{Port: 0, OutputDir: t.TempDir()}, historyDir)

	rec := get(t, srv, "/api/history?limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var records []history.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}

	if rec := get(t, srv, "/api/history?limit=abc"); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a bad limit", rec.Code)
	}
}

func TestHistoryEndpointEmptyStore(t *testing.T) {
	srv := New(Config{Port: 0, OutputDir: t.TempDir()}, t.TempDir())
	rec := get(t, srv, "/api/history")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	// An empty store serializes as [], not null.
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q", body)
	}
}
