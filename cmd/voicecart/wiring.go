package main

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/voicecart/internal/config"
	"github.com/kailas-cloud/voicecart/internal/db"
	"github.com/kailas-cloud/voicecart/internal/domain"
	"github.com/kailas-cloud/voicecart/internal/metrics"
	"github.com/kailas-cloud/voicecart/internal/repository/embcache"
	productrepo "github.com/kailas-cloud/voicecart/internal/repository/product"
	openaiTransport "github.com/kailas-cloud/voicecart/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/voicecart/internal/usecase/embedding"
)

// embedders is the assembled embedding chain: OpenAI -> Instrumented -> Cached.
// Both fields are nil when no API key is configured.
type embedders struct {
	// query is the outermost embedder used for search and seeding.
	query domain.Embedder
	// provider answers health probes without touching the cache.
	provider *embeddinguc.InstrumentedEmbedder
}

func buildEmbedders(cfg *config.Config, store db.KVStore, logger *zap.Logger) embedders {
	if cfg.Embedding.APIKey == "" {
		logger.Warn("embedding.api_key is empty: vector search disabled, catalog is searched lexically")
		return embedders{}
	}

	metrics.RegisterEmbeddingMetrics()

	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	instrumented := embeddinguc.NewInstrumentedEmbedder(
		base, cfg.Embedding.Provider, cfg.Embedding.Model, logger,
	)

	var query domain.Embedder = instrumented
	if cfg.Storage.EmbeddingCache {
		query = embcache.New(
			instrumented, store, cfg.Embedding.Model, cfg.Embedding.Dimensions, cfg.EmbeddingCacheTTL(),
			metrics.EmbeddingCacheTotal, logger,
		)
	}

	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cache", cfg.Storage.EmbeddingCache),
	)
	return embedders{query: query, provider: instrumented}
}

func newProductRepo(cfg *config.Config, store db.Store) *productrepo.Repo {
	return productrepo.New(store, productrepo.IndexConfig{
		Dimensions:  cfg.Embedding.Dimensions,
		M:           cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
		TitleWeight: cfg.Index.TitleWeight,
	})
}
