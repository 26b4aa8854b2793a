package maintenance

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/voicecart/internal/domain"
	dombatch "github.com/kailas-cloud/voicecart/internal/domain/batch"
	domprod "github.com/kailas-cloud/voicecart/internal/domain/product"
	"github.com/kailas-cloud/voicecart/internal/logger"
)

// DefaultEmbedBatchSize is the number of product texts embedded per provider call.
const DefaultEmbedBatchSize = 64

// Service runs offline catalog maintenance: seeding and cleanup.
type Service struct {
	catalog        Catalog
	orders         KeyOwner
	embed          Embedder
	dimensions     int
	embedBatchSize int
	limiter        *rate.Limiter
}

// New creates a maintenance service. embed may be nil: products without a
// precomputed vector are then stored lexically only.
func New(catalog Catalog, orders KeyOwner, embed Embedder, dimensions int) *Service {
	return &Service{
		catalog:        catalog,
		orders:         orders,
		embed:          embed,
		dimensions:     dimensions,
		embedBatchSize: DefaultEmbedBatchSize,
	}
}

// WithEmbedBatchSize configures the embedding batch size.
func (s *Service) WithEmbedBatchSize(n int) *Service {
	if n > 0 {
		s.embedBatchSize = n
	}
	return s
}

// WithEmbedRate paces embedding provider calls to at most rps per second.
// A non-positive rps disables pacing.
func (s *Service) WithEmbedRate(rps float64) *Service {
	if rps > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	} else {
		s.limiter = nil
	}
	return s
}

// SeedReport is the outcome of a seed run.
type SeedReport struct {
	Results      []dombatch.Result
	IndexCreated bool
}

// Seed embeds products that lack a vector, upserts every product and then
// ensures the catalog index. recreateIndex drops an existing index first.
// A product whose embedding fails is still stored and stays reachable lexically.
func (s *Service) Seed(ctx context.Context, products []domprod.Product, recreateIndex bool) (SeedReport, error) {
	log := logger.FromContext(ctx)
	results := make([]dombatch.Result, len(products))
	embedErrs := s.embedMissing(ctx, products)

	total := len(products)
	for i := range products {
		p := &products[i]
		if err := s.catalog.Upsert(ctx, p); err != nil {
			results[i] = dombatch.NewError(p.ID(), err)
			return SeedReport{Results: results[:i+1]}, fmt.Errorf("upsert %s: %w", p.ID(), err)
		}

		if err := embedErrs[i]; err != nil {
			results[i] = dombatch.NewLexicalOnly(p.ID(), err)
		} else {
			results[i] = dombatch.NewOK(p.ID())
		}
		log.Info("Seeded product",
			zap.Int("n", i+1),
			zap.Int("total", total),
			zap.Int("progress_pct", (i+1)*100/total),
			zap.String("id", p.ID()),
			zap.String("title", p.Title()),
			zap.String("status", string(results[i].Status())),
		)
	}

	created, err := s.catalog.EnsureIndex(ctx, recreateIndex)
	if err != nil {
		return SeedReport{Results: results}, fmt.Errorf("ensure index: %w", err)
	}

	sum := dombatch.Summarize(results)
	log.Info("Catalog seeded",
		zap.Int("products", total),
		zap.Int("embedded", sum.OK),
		zap.Int("lexical_only", sum.LexicalOnly),
		zap.Bool("index_created", created),
	)
	return SeedReport{Results: results, IndexCreated: created}, nil
}

// embedMissing attaches vectors in place to products without one.
// The returned slice holds, per product, why it has no usable vector.
func (s *Service) embedMissing(ctx context.Context, products []domprod.Product) []error {
	errs := make([]error, len(products))

	var pending []int
	for i := range products {
		switch {
		case !products[i].HasEmbedding():
			pending = append(pending, i)
		case len(products[i].Embedding()) != s.dimensions:
			errs[i] = s.dimensionErr(len(products[i].Embedding()))
			products[i] = products[i].WithoutEmbedding()
		}
	}
	if len(pending) == 0 {
		return errs
	}
	if s.embed == nil {
		for _, i := range pending {
			errs[i] = domain.ErrEmbeddingUnavailable
		}
		return errs
	}

	log := logger.FromContext(ctx)
	for start := 0; start < len(pending); start += s.embedBatchSize {
		chunk := pending[start:min(start+s.embedBatchSize, len(pending))]
		texts := make([]string, len(chunk))
		for j, i := range chunk {
			texts[j] = products[i].EmbeddingText()
		}

		res, err := s.embedBatch(ctx, texts)
		if err == nil && len(res.Embeddings) != len(chunk) {
			err = fmt.Errorf("expected %d embeddings, got %d", len(chunk), len(res.Embeddings))
		}
		if err != nil {
			log.Warn("Embedding batch failed, storing products lexically",
				zap.Int("batch_size", len(chunk)),
				zap.Error(err),
			)
			for _, i := range chunk {
				errs[i] = fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
			}
			continue
		}

		for j, i := range chunk {
			vec := res.Embeddings[j]
			if len(vec) != s.dimensions {
				errs[i] = s.dimensionErr(len(vec))
				continue
			}
			products[i] = products[i].WithEmbedding(vec)
		}
		log.Debug("Embedded batch", zap.Int("batch_size", len(chunk)), zap.Int("tokens", res.TotalTokens))
	}
	return errs
}

func (s *Service) embedBatch(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return domain.BatchEmbeddingResult{}, fmt.Errorf("embed rate limit: %w", err)
		}
	}
	return domain.BatchEmbed(ctx, s.embed, texts)
}

func (s *Service) dimensionErr(got int) error {
	return fmt.Errorf("%w: embedding has %d dimensions, index expects %d",
		domain.ErrEmbeddingUnavailable, got, s.dimensions)
}
