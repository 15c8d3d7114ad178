package catalog

import (
	"context"

	"go.uber.org/zap"

	"yarnly/internal/api"
	"yarnly/internal/logging"
)

// Fetcher retrieves the full product collection. One call per dashboard
// activation; no pagination, no caching.
type Fetcher struct {
	client *api.Client
	logger *zap.Logger
}

func NewFetcher(client *api.Client) *Fetcher {
	return &Fetcher{
		client: client,
		logger: logging.Named("catalog"),
	}
}

// FetchAll returns the catalog in server order. The products endpoint
// requires no authentication. Failures are deliberately swallowed: the
// error detail goes to the log and the caller gets an empty (non-nil)
// slice, so the dashboard shows its empty state instead of crashing.
func (f *Fetcher) FetchAll(ctx context.Context) []Product {
	var products []Product
	if err := f.client.Get(ctx, "/products/", &products, api.Options{}); err != nil {
		f.logger.Warn("catalog fetch failed", zap.Error(err))
		return []Product{}
	}
	if products == nil {
		products = []Product{}
	}
	f.logger.Debug("catalog fetched", zap.Int("count", len(products)))
	return products
}
