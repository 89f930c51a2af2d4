package llm

import "github.com/ewhitt/promptlab/internal/prompt"

// Request contains the parameters for a completion request.
type Request struct {
	Model       string
	Prompt      prompt.Prompt
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

// Response contains the result of a completion request.
type Response struct {
	Content      string  `json:"content"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	Model        string  `json:"model"`
	FinishReason string  `json:"finish_reason"`
	CostUSD      float64 `json:"cost_usd"`
	Cached       bool    `json:"cached,omitempty"`
}
