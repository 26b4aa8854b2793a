package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/voicecart/internal/db"
	domprod "github.com/kailas-cloud/voicecart/internal/domain/product"
)

const (
	vectorField      = hashEmbedding
	categoryTagField = "category_tag"
)

// IndexConfig holds FT index parameters for the catalog.
type IndexConfig struct {
	Dimensions  int
	M           int     // HNSW M, 0 = server default
	EFConstruct int     // HNSW EF_CONSTRUCTION, 0 = server default
	TitleWeight float64 // 0 = server default
}

// buildIndex creates the catalog index definition:
// TEXT title/description/category, TAG category alias, NUMERIC price, HNSW COSINE embedding.
func buildIndex(cfg IndexConfig) (*db.IndexDefinition, error) {
	def, err := db.NewIndex(indexName).
		Prefix(productPrefix).
		WeightedText(domprod.FieldTitle, cfg.TitleWeight).
		Text(domprod.FieldDescription).
		Text(domprod.FieldCategory).
		TagAs(domprod.FieldCategory, categoryTagField).
		Numeric(hashPrice).
		VectorHNSW(vectorField, cfg.Dimensions, db.DistanceCosine, cfg.M, cfg.EFConstruct).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build catalog index: %w", err)
	}
	return def, nil
}

// EnsureIndex creates the catalog index. With recreate set an existing index is dropped first;
// indexed hashes survive and are re-indexed. Returns true if an index was created.
func (r *Repo) EnsureIndex(ctx context.Context, recreate bool) (bool, error) {
	def, err := buildIndex(r.index)
	if err != nil {
		return false, err
	}

	if recreate {
		if err := r.store.DropIndex(ctx, def.Name); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
			return false, storeErr("drop index", err)
		}
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, storeErr("create index", err)
	}
	return true, nil
}

// DropIndex removes the catalog index, keeping documents. A missing index is not an error.
func (r *Repo) DropIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, indexName); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return storeErr("drop index", err)
	}
	return nil
}

// IndexExists reports whether the catalog index is present.
func (r *Repo) IndexExists(ctx context.Context) (bool, error) {
	ok, err := r.store.IndexExists(ctx, indexName)
	if err != nil {
		return false, storeErr("index info", err)
	}
	return ok, nil
}
