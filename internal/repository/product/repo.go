package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/voicecart/internal/db"
	"github.com/kailas-cloud/voicecart/internal/domain"
	domprod "github.com/kailas-cloud/voicecart/internal/domain/product"
	"github.com/kailas-cloud/voicecart/internal/domain/search/filter"
)

// listPageSize is the FT.SEARCH page size used to walk the whole catalog.
const listPageSize = 100

// MaxListAll caps a full-catalog listing.
const MaxListAll = 10000

// store is the consumer interface for the catalog (ISP).
//
//nolint:interfacebloat // catalog repo needs hash, set, search and index operations
type store interface {
	HSetTracked(ctx context.Context, key string, fields map[string]string, drop []string, setKey, member string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Unlink(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	SRandMember(ctx context.Context, key string, count int) ([]string, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo stores products as hashes under voicecart:product:<id>, tracks ids in a set
// and queries them through the catalog FT index.
type Repo struct {
	store store
	index IndexConfig
}

// New creates a product repository.
func New(s store, index IndexConfig) *Repo {
	return &Repo{store: s, index: index}
}

// FindByID returns one product or domain.ErrProductNotFound.
func (r *Repo) FindByID(ctx context.Context, id string) (domprod.Product, error) {
	m, err := r.store.HGetAll(ctx, productKey(id))
	if err != nil {
		return domprod.Product{}, storeErr("hgetall "+id, err)
	}
	if len(m) == 0 {
		return domprod.Product{}, domain.ErrProductNotFound
	}
	return parseHashFields(id, m), nil
}

// Sample returns up to n distinct products chosen uniformly at random.
func (r *Repo) Sample(ctx context.Context, n int) ([]domprod.Product, error) {
	ids, err := r.store.SRandMember(ctx, idSetKey, n)
	if err != nil {
		return nil, storeErr("srandmember", err)
	}
	if len(ids) == 0 {
		return []domprod.Product{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, storeErr("hgetall sample", err)
	}

	out := make([]domprod.Product, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 {
			continue // id set entry without a hash
		}
		out = append(out, parseHashFields(ids[i], m))
	}
	return out, nil
}

// VectorTopK returns up to k products nearest to vec, best first.
// numCandidates sizes the HNSW search; a non-empty category pre-filters the neighbourhood.
// A catalog without an index has no neighbours.
func (r *Repo) VectorTopK(
	ctx context.Context, vec []float32, k, numCandidates int, category string,
) ([]domprod.Product, error) {
	filters, err := categoryFilter(category)
	if err != nil {
		return nil, err
	}

	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    indexName,
		Field:        vectorField,
		Filters:      filters,
		Vector:       vec,
		K:            k,
		EFRuntime:    numCandidates,
		ReturnFields: returnFields,
	})
	if errors.Is(err, db.ErrIndexNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("knn", err)
	}
	return entriesToProducts(sr), nil
}

// TextTopK returns up to k products matching any term of text in the given fields, best first.
// A non-empty category pre-filters on the exact category tag.
func (r *Repo) TextTopK(
	ctx context.Context, text string, fields []string, k int, category string,
) ([]domprod.Product, error) {
	filters, err := categoryFilter(category)
	if err != nil {
		return nil, err
	}

	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName:    indexName,
		Query:        text,
		Fields:       fields,
		Filters:      filters,
		TopK:         k,
		ReturnFields: returnFields,
	})
	if errors.Is(err, db.ErrIndexNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("text search", err)
	}
	return entriesToProducts(sr), nil
}

// ListAll returns the whole catalog in index order, up to MaxListAll products.
// Without an index the catalog lists as empty.
func (r *Repo) ListAll(ctx context.Context) ([]domprod.Product, error) {
	out := make([]domprod.Product, 0, listPageSize)
	for offset := 0; offset < MaxListAll; offset += listPageSize {
		sr, err := r.store.SearchList(ctx, indexName, "*", offset, listPageSize, returnFields)
		if errors.Is(err, db.ErrIndexNotFound) {
			break
		}
		if err != nil {
			return nil, storeErr("list", err)
		}
		out = append(out, entriesToProducts(sr)...)
		if sr == nil || len(sr.Entries) < listPageSize || offset+listPageSize >= sr.Total {
			break
		}
	}
	return out, nil
}

// Upsert writes a product hash and registers its id for sampling in one transaction.
// A product without a vector loses any embedding stored by an earlier write.
func (r *Repo) Upsert(ctx context.Context, p *domprod.Product) error {
	var drop []string
	if !p.HasEmbedding() {
		drop = []string{hashEmbedding}
	}
	err := r.store.HSetTracked(ctx, productKey(p.ID()), buildHashFields(p), drop, idSetKey, p.ID())
	if err != nil {
		return storeErr("upsert "+p.ID(), err)
	}
	return nil
}

// Keys returns every key the catalog owns: product hashes plus the id set.
func (r *Repo) Keys(ctx context.Context) ([]string, error) {
	keys, err := r.store.Scan(ctx, productPrefix+"*")
	if err != nil {
		return nil, storeErr("scan products", err)
	}
	return append(keys, idSetKey), nil
}

// DeleteKeys removes the given keys.
func (r *Repo) DeleteKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.store.Unlink(ctx, keys...); err != nil {
		return storeErr("unlink", err)
	}
	return nil
}

func entriesToProducts(sr *db.SearchResult) []domprod.Product {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}
	out := make([]domprod.Product, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		out = append(out, parseHashFields(extractID(e.Key), e.Fields))
	}
	return out
}

func categoryFilter(category string) (filter.Expression, error) {
	if category == "" {
		return filter.Expression{}, nil
	}
	cond, err := filter.NewMatch(categoryTagField, category)
	if err != nil {
		return filter.Expression{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	return filter.NewExpression(cond)
}

// storeErr tags low-level failures as ErrStoreUnavailable, keeping the cause in the chain.
func storeErr(op string, err error) error {
	return fmt.Errorf("catalog %s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
