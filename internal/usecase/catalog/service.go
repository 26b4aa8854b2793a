package catalog

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/voicecart/internal/domain/product"
	"github.com/kailas-cloud/voicecart/internal/domain/search/mode"
	"github.com/kailas-cloud/voicecart/internal/domain/search/request"
	"github.com/kailas-cloud/voicecart/internal/logger"
	"github.com/kailas-cloud/voicecart/internal/metrics"
)

// Result is the outcome of a product lookup. ByID results hold exactly one product.
type Result struct {
	Mode     mode.Mode
	Products []product.Product
}

// Service dispatches product lookups: by id, random sample, hybrid ranking or full listing.
type Service struct {
	repo       Repository
	ranker     Ranker
	sampleSize int
}

// New creates a catalog lookup service.
func New(repo Repository, ranker Ranker) *Service {
	return &Service{repo: repo, ranker: ranker, sampleSize: request.SampleSize}
}

// Lookup resolves req by precedence productId > random > query/category > all.
func (s *Service) Lookup(ctx context.Context, req *request.Request) (Result, error) {
	m := req.Mode()
	start := time.Now()
	defer func() {
		metrics.SearchRequestsTotal.WithLabelValues(string(m)).Inc()
		metrics.SearchDuration.WithLabelValues(string(m)).Observe(time.Since(start).Seconds())
	}()

	var (
		products []product.Product
		err      error
	)
	switch m {
	case mode.ByID:
		var p product.Product
		p, err = s.repo.FindByID(ctx, req.ProductID())
		if err == nil {
			products = []product.Product{p}
		}
	case mode.Random:
		products, err = s.repo.Sample(ctx, s.sampleSize)
	case mode.Hybrid:
		products, err = s.ranker.HybridSearch(ctx, req.Query(), req.Category())
	case mode.All:
		products, err = s.repo.ListAll(ctx)
	default:
		return Result{}, fmt.Errorf("unsupported lookup mode: %s", m)
	}
	if err != nil {
		return Result{}, fmt.Errorf("lookup %s: %w", m, err)
	}
	if products == nil {
		products = []product.Product{}
	}

	logger.FromContext(ctx).Debug("Product lookup",
		zap.String("mode", string(m)),
		zap.Int("results", len(products)),
	)
	return Result{Mode: m, Products: products}, nil
}
