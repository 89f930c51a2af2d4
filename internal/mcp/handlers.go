package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ewhitt/promptlab/internal/experiment"
	"github.com/ewhitt/promptlab/internal/history"
)

// handleSearchHistory performs semantic search over the prompt history index.
func (s *Server) handleSearchHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.index == nil {
		return mcp.NewToolResultError("prompt history is not enabled for this run; set enable_prompt_history and re-run"), nil
	}

	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	results, err := s.index.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No matching exchanges found. The run may not have recorded any history yet."), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleListHistory returns recent exchanges from the history store.
func (s *Server) handleListHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return mcp.NewToolResultError("prompt history is not enabled for this run; set enable_prompt_history and re-run"), nil
	}

	limit := request.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}

	records, err := s.store.List(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing history failed: %v", err)), nil
	}

	if len(records) == 0 {
		return mcp.NewToolResultText("No exchanges recorded yet."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d exchange(s), newest first:\n", len(records))
	for i, rec := range records {
		fmt.Fprintf(&sb, "\n--- Exchange %d ---\n", i+1)
		writeRecord(&sb, rec)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleCostSummary reads the cost ledger and returns a spend summary.
func (s *Server) handleCostSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := experiment.ReadLedger(s.outputDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading cost ledger: %v", err)), nil
	}

	if len(entries) == 0 {
		return mcp.NewToolResultText("No costs recorded for this run."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total spend: $%.4f across %d entries.\n", experiment.TotalCost(entries), len(entries))
	for i, e := range entries {
		fmt.Fprintf(&sb, "\n%d. $%.4f", i+1, e.Cost)
		for k, v := range e.Metadata {
			fmt.Fprintf(&sb, "\n   %s: %s", k, v)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatSearchResults converts search results into a rich text format
// optimized for AI agent consumption.
func formatSearchResults(results []history.SearchResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n", len(results))

	for i, r := range results {
		fmt.Fprintf(&sb, "\n--- Result %d ---\n", i+1)
		fmt.Fprintf(&sb, "Similarity: %.1f%%\n", r.Similarity*100)
		writeRecord(&sb, r.Record)
	}

	return sb.String()
}

func writeRecord(sb *strings.Builder, rec history.Record) {
	if !rec.Time.IsZero() {
		fmt.Fprintf(sb, "Time: %s\n", rec.Time.Format("2006-01-02 15:04:05"))
	}
	if rec.Provider != "" {
		fmt.Fprintf(sb, "Provider: %s\n", rec.Provider)
	}
	if rec.Model != "" {
		fmt.Fprintf(sb, "Model: %s\n", rec.Model)
	}
	fmt.Fprintf(sb, "Cost: $%.4f\n", rec.CostUSD)
	fmt.Fprintf(sb, "\nPrompt:\n%s\n", rec.PromptText)
	fmt.Fprintf(sb, "\nResponse:\n%s\n", rec.Response)
}
