package llm

import (
	"context"
	"sync"
)

// MeteredProvider wraps a Provider and accumulates the USD cost of every
// completed request. Cache hits carry no cost and are not counted.
type MeteredProvider struct {
	provider Provider
	mu       sync.Mutex
	running  float64
}

// NewMeteredProvider wraps the given provider with cost accounting.
func NewMeteredProvider(provider Provider) *MeteredProvider {
	return &MeteredProvider{provider: provider}
}

func (m *MeteredProvider) Name() string {
	return m.provider.Name()
}

func (m *MeteredProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	resp, err := m.provider.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	if !resp.Cached {
		model := req.Model
		if resp.Model != "" {
			model = resp.Model
		}
		resp.CostUSD = EstimateCost(model, resp.InputTokens, resp.OutputTokens)

		m.mu.Lock()
		m.running += resp.CostUSD
		m.mu.Unlock()
	}
	return resp, nil
}

// RunningCost returns the cumulative cost of all metered requests so far.
func (m *MeteredProvider) RunningCost() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
