package llm

import (
	"context"

	"github.com/ewhitt/promptlab/internal/cache"
	"github.com/ewhitt/promptlab/internal/history"
)

// ClientOptions configures the wrapper chain around a base provider.
type ClientOptions struct {
	// RPM caps requests per minute; zero disables rate limiting.
	RPM int
	// Cache enables completion caching when non-nil.
	Cache *cache.Store
	// History enables prompt-history recording when non-nil.
	History *history.Store
}

// Client is an owned inference handle: a base provider wrapped with rate
// limiting, caching, cost metering, and history recording. RunningCost is
// the readable counter the experiment cost ledger consumes.
type Client struct {
	provider Provider
	meter    *MeteredProvider
}

// NewClient assembles the wrapper chain. Order matters: the rate limiter
// sits directly on the base provider so cache hits skip it, and the meter
// sits above the cache so hits are never charged.
func NewClient(base Provider, opts ClientOptions) *Client {
	p := base
	if opts.RPM > 0 {
		p = NewRateLimitedProvider(p, opts.RPM)
	}
	if opts.Cache != nil {
		p = NewCachedProvider(p, opts.Cache)
	}
	meter := NewMeteredProvider(p)
	p = meter
	if opts.History != nil {
		p = NewRecordedProvider(p, opts.History)
	}
	return &Client{provider: p, meter: meter}
}

// Complete sends a completion request through the wrapper chain.
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	return c.provider.Complete(ctx, req)
}

// Name returns the base provider name.
func (c *Client) Name() string { return c.provider.Name() }

// RunningCost returns the cumulative USD cost of all non-cached requests.
func (c *Client) RunningCost() float64 { return c.meter.RunningCost() }
