package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/ewhitt/promptlab/internal/cache"
)

// CachedProvider wraps a Provider with a completion cache. Requests are
// keyed by a hash of the model, the serialized prompt, and the sampling
// parameters; hits skip the wrapped provider entirely and cost nothing.
type CachedProvider struct {
	provider Provider
	store    *cache.Store
}

// NewCachedProvider wraps the given provider with the cache store.
func NewCachedProvider(provider Provider, store *cache.Store) *CachedProvider {
	return &CachedProvider{provider: provider, store: store}
}

func (c *CachedProvider) Name() string {
	return c.provider.Name()
}

func (c *CachedProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	key := RequestHash(req)

	if cached, ok, err := c.store.Get(ctx, key); err == nil && ok {
		var resp Response
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			resp.Cached = true
			resp.CostUSD = 0
			return &resp, nil
		}
		// Unreadable cache entries are treated as misses and overwritten.
	}

	resp, err := c.provider.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := c.store.Put(ctx, key, resp.Model, string(data)); err != nil {
			return nil, fmt.Errorf("writing completion cache: %w", err)
		}
	}
	return resp, nil
}

// RequestHash returns the cache key for a request. Prompt identity uses the
// block serialization, so audio messages hash by path, not buffer contents.
func RequestHash(req Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\n%d\n%g\n%t\n", req.Model, req.MaxTokens, req.Temperature, req.JSONMode)
	h.Write([]byte(req.Prompt.BlockFormat("")))
	return hex.EncodeToString(h.Sum(nil))
}
