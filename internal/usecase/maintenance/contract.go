package maintenance

import (
	"context"

	"github.com/kailas-cloud/voicecart/internal/domain"
	domprod "github.com/kailas-cloud/voicecart/internal/domain/product"
)

// Catalog writes products and manages the catalog index.
type Catalog interface {
	Upsert(ctx context.Context, p *domprod.Product) error
	EnsureIndex(ctx context.Context, recreate bool) (bool, error)
	DropIndex(ctx context.Context) error
	KeyOwner
}

// KeyOwner lists and deletes the keys a repository owns.
type KeyOwner interface {
	Keys(ctx context.Context) ([]string, error)
	DeleteKeys(ctx context.Context, keys []string) error
}

// Embedder vectorizes product text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
