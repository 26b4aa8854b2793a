package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/voicecart/internal/domain"
	"github.com/kailas-cloud/voicecart/internal/domain/product"
	"github.com/kailas-cloud/voicecart/internal/domain/search/request"
	"github.com/kailas-cloud/voicecart/internal/domain/search/weights"
	"github.com/kailas-cloud/voicecart/internal/logger"
	"github.com/kailas-cloud/voicecart/internal/metrics"
)

// Options tunes hybrid search. Zero timeouts disable the corresponding deadline.
type Options struct {
	Weights          weights.Weights
	VectorTopK       int
	NumCandidates    int
	TextTopK         int
	MaxResults       int
	EmbeddingTimeout time.Duration
	BranchTimeout    time.Duration
	// CategoryFiltersVector applies the category pre-filter to the vector branch too.
	CategoryFiltersVector bool
}

// DefaultOptions returns production search parameters.
func DefaultOptions() Options {
	return Options{
		Weights:          weights.Default(),
		VectorTopK:       request.VectorTopK,
		NumCandidates:    request.NumCandidates,
		TextTopK:         request.TextTopK,
		MaxResults:       request.MaxResults,
		EmbeddingTimeout: 2 * time.Second,
		BranchTimeout:    3 * time.Second,
	}
}

// Service ranks catalog products by fusing vector and lexical relevance.
type Service struct {
	catalog Catalog
	embed   Embedder
	opts    Options
}

// New creates a hybrid search service.
func New(catalog Catalog, embed Embedder, opts Options) *Service {
	return &Service{catalog: catalog, embed: embed, opts: opts}
}

// HybridSearch returns at most MaxResults products for a free-text query and/or category.
// Embedding failures and branch deadlines drop the affected branch; any other store
// failure aborts the search with domain.ErrStoreUnavailable.
func (s *Service) HybridSearch(ctx context.Context, query, category string) ([]product.Product, error) {
	query = strings.TrimSpace(query)
	category = strings.TrimSpace(category)
	if query == "" && category == "" {
		return []product.Product{}, nil
	}

	textQuery, textFields, textCategory := query, product.SearchableFields, category
	if query == "" {
		textQuery, textFields, textCategory = category, []string{product.FieldCategory}, ""
	}

	var vectorHits, textHits []product.Product
	g, gctx := errgroup.WithContext(ctx)

	if query != "" {
		g.Go(func() error {
			hits, err := s.vectorBranch(gctx, query, category)
			vectorHits = hits
			return err
		})
	}
	g.Go(func() error {
		hits, err := s.runBranch(gctx, metrics.BranchText, func(bctx context.Context) ([]product.Product, error) {
			return s.catalog.TextTopK(bctx, textQuery, textFields, s.opts.TextTopK, textCategory)
		})
		textHits = hits
		return err
	})

	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("hybrid search: %w", ctx.Err())
		}
		return nil, err
	}

	return fuse(vectorHits, textHits, s.opts.Weights, s.opts.MaxResults), nil
}

func (s *Service) vectorBranch(ctx context.Context, query, category string) ([]product.Product, error) {
	vec, err := s.embedQuery(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.FromContext(ctx).Warn("Vector branch skipped",
			zap.String("reason", metrics.ReasonEmbedding),
			zap.Error(err),
		)
		metrics.SearchDegradedTotal.WithLabelValues(metrics.BranchVector, metrics.ReasonEmbedding).Inc()
		return nil, nil
	}

	if !s.opts.CategoryFiltersVector {
		category = ""
	}
	return s.runBranch(ctx, metrics.BranchVector, func(bctx context.Context) ([]product.Product, error) {
		return s.catalog.VectorTopK(bctx, vec, s.opts.VectorTopK, s.opts.NumCandidates, category)
	})
}

// embedQuery runs the embedding call under its own deadline.
func (s *Service) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if s.embed == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	ectx, cancel := withOptionalTimeout(ctx, s.opts.EmbeddingTimeout)
	defer cancel()

	res, err := s.embed.Embed(ectx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if len(res.Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty vector", domain.ErrEmbeddingUnavailable)
	}
	domain.UsageFromContext(ctx).AddTokens(res.TotalTokens)
	return res.Embedding, nil
}

// runBranch executes one store query under the branch deadline. A deadline hit that is not
// the caller's own yields no results.
func (s *Service) runBranch(
	ctx context.Context, branch string, query func(context.Context) ([]product.Product, error),
) ([]product.Product, error) {
	bctx, cancel := withOptionalTimeout(ctx, s.opts.BranchTimeout)
	defer cancel()

	hits, err := query(bctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(bctx.Err(), context.DeadlineExceeded) {
			logger.FromContext(ctx).Warn("Search branch timed out",
				zap.String("branch", branch),
				zap.Duration("timeout", s.opts.BranchTimeout),
				zap.Error(err),
			)
			metrics.SearchDegradedTotal.WithLabelValues(branch, metrics.ReasonTimeout).Inc()
			return nil, nil
		}
		logger.FromContext(ctx).Error("Search branch failed",
			zap.String("branch", branch),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s branch: %w", branch, err)
	}

	metrics.SearchBranchResults.WithLabelValues(branch).Observe(float64(len(hits)))
	return hits, nil
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
