package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchHistoryTool defines the search_history MCP tool.
var searchHistoryTool = mcp.NewTool("search_history",
	mcp.WithDescription("Search past prompt/response exchanges semantically. Returns the most similar exchanges with their models and costs."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// listHistoryTool defines the list_history MCP tool.
var listHistoryTool = mcp.NewTool("list_history",
	mcp.WithDescription("List recent prompt/response exchanges, newest first."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of exchanges to return (default 20)"),
	),
)

// costSummaryTool defines the cost_summary MCP tool.
var costSummaryTool = mcp.NewTool("cost_summary",
	mcp.WithDescription("Get the total API spend for this experiment run along with the per-call cost ledger."),
)
