package search

import (
	"context"

	"github.com/kailas-cloud/voicecart/internal/domain"
	"github.com/kailas-cloud/voicecart/internal/domain/product"
)

// Catalog is the ranked-retrieval contract of the catalog store. Both methods
// return products best first; fusion only looks at positions.
type Catalog interface {
	VectorTopK(
		ctx context.Context, vec []float32, k, numCandidates int, category string,
	) ([]product.Product, error)
	TextTopK(
		ctx context.Context, text string, fields []string, k int, category string,
	) ([]product.Product, error)
}

// Embedder vectorizes the query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
