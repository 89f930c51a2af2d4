package llm

import (
	"context"
	"fmt"

	"github.com/ewhitt/promptlab/internal/history"
)

// RecordedProvider wraps a Provider and appends one history record per
// completed request, cached or not.
type RecordedProvider struct {
	provider Provider
	store    *history.Store
}

// NewRecordedProvider wraps the given provider with the history store.
func NewRecordedProvider(provider Provider, store *history.Store) *RecordedProvider {
	return &RecordedProvider{provider: provider, store: store}
}

func (r *RecordedProvider) Name() string {
	return r.provider.Name()
}

func (r *RecordedProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	resp, err := r.provider.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	rec := history.Record{
		Provider:   r.provider.Name(),
		Model:      resp.Model,
		PromptText: req.Prompt.String(),
		Response:   resp.Content,
		CostUSD:    resp.CostUSD,
		Cached:     resp.Cached,
	}
	if rec.Model == "" {
		rec.Model = req.Model
	}
	if err := r.store.Append(rec); err != nil {
		return nil, fmt.Errorf("recording prompt history: %w", err)
	}
	return resp, nil
}
