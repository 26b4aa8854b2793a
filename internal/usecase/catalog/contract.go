package catalog

import (
	"context"

	"github.com/kailas-cloud/voicecart/internal/domain/product"
)

// Repository reads products directly from the catalog store.
type Repository interface {
	FindByID(ctx context.Context, id string) (product.Product, error)
	Sample(ctx context.Context, n int) ([]product.Product, error)
	ListAll(ctx context.Context) ([]product.Product, error)
}

// Ranker ranks products for a free-text query and/or category.
type Ranker interface {
	HybridSearch(ctx context.Context, query, category string) ([]product.Product, error)
}
