package product

import (
	"context"
	"testing"

	"github.com/kailas-cloud/voicecart/internal/db"
	domprod "github.com/kailas-cloud/voicecart/internal/domain/product"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn         func(ctx context.Context, key string, fields map[string]string, drop []string, setKey, member string) error
	hgetAllFn      func(ctx context.Context, key string) (map[string]string, error)
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	unlinkFn       func(ctx context.Context, keys ...string) error
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
	srandFn        func(ctx context.Context, key string, count int) ([]string, error)
	knnFn          func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	textFn         func(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	searchListFn   func(
		ctx context.Context, index, query string, offset, limit int, fields []string,
	) (*db.SearchResult, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	dropIndexFn   func(ctx context.Context, name string) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
}

func (m *mockStore) HSetTracked(
	ctx context.Context, key string, fields map[string]string, drop []string, setKey, member string,
) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields, drop, setKey, member)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return make([]map[string]string, len(keys)), nil
}

func (m *mockStore) Unlink(ctx context.Context, keys ...string) error {
	if m.unlinkFn != nil {
		return m.unlinkFn(ctx, keys...)
	}
	return nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) SRandMember(ctx context.Context, key string, count int) ([]string, error) {
	if m.srandFn != nil {
		return m.srandFn(ctx, key, count)
	}
	return nil, nil
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.knnFn != nil {
		return m.knnFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if m.textFn != nil {
		return m.textFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SearchList(
	ctx context.Context, index, query string, offset, limit int, fields []string,
) (*db.SearchResult, error) {
	if m.searchListFn != nil {
		return m.searchListFn(ctx, index, query, offset, limit, fields)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) DropIndex(ctx context.Context, name string) error {
	if m.dropIndexFn != nil {
		return m.dropIndexFn(ctx, name)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, IndexConfig{Dimensions: 4, M: 16, EFConstruct: 200, TitleWeight: 2}), ms
}

func testProduct(t *testing.T) domprod.Product {
	t.Helper()
	return domprod.Reconstruct("milk-1", "Whole Milk", "Fresh whole milk", "Dairy & Eggs",
		3.49, "🥛", "pasteurized", []float32{0.1, 0.2, 0.3, 0.4})
}

func hashOf(title, category string) map[string]string {
	return map[string]string{
		hashTitle:    title,
		hashCategory: category,
		hashPrice:    "1.5",
	}
}
