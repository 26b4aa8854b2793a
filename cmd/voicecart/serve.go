package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/voicecart/internal/domain/search/weights"
	"github.com/kailas-cloud/voicecart/internal/metrics"
	orderrepo "github.com/kailas-cloud/voicecart/internal/repository/order"
	chiTransport "github.com/kailas-cloud/voicecart/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/voicecart/internal/transport/openai"
	cataloguc "github.com/kailas-cloud/voicecart/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/voicecart/internal/usecase/health"
	orderuc "github.com/kailas-cloud/voicecart/internal/usecase/order"
	searchuc "github.com/kailas-cloud/voicecart/internal/usecase/search"
	sessionuc "github.com/kailas-cloud/voicecart/internal/usecase/session"
	"github.com/kailas-cloud/voicecart/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return a.serve()
	},
}

func (a *app) serve() error {
	cfg, logger := &a.cfg, a.logger
	logger.Info("Starting voicecart API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", a.env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	metrics.RegisterSearchMetrics()
	emb := buildEmbedders(cfg, a.store, logger)

	products := newProductRepo(cfg, a.store)
	orders := orderrepo.New(a.store)

	opts := searchuc.DefaultOptions()
	opts.Weights = weights.Weights{
		Vector:       cfg.Search.VectorWeight,
		Text:         cfg.Search.TextWeight,
		RankConstant: cfg.Search.RankConstant,
	}
	opts.VectorTopK = cfg.Search.VectorTopK
	opts.NumCandidates = cfg.Search.NumCandidates
	opts.TextTopK = cfg.Search.TextTopK
	opts.MaxResults = cfg.Search.MaxResults
	opts.EmbeddingTimeout = cfg.EmbeddingTimeout()
	opts.BranchTimeout = cfg.BranchTimeout()
	opts.CategoryFiltersVector = cfg.Search.CategoryFiltersVector
	ranker := searchuc.New(products, emb.query, opts)

	// Pass a nil interface, not a typed nil pointer, when embeddings are off.
	var embeddingCheck healthuc.EmbeddingChecker
	if emb.provider != nil {
		embeddingCheck = emb.provider
	}

	server := chiTransport.NewServer(
		cataloguc.New(products, ranker),
		orderuc.New(orders),
		sessionuc.New(openaiTransport.NewRealtimeClient(&openaiTransport.RealtimeConfig{
			APIKey:  cfg.Realtime.APIKey,
			BaseURL: cfg.Realtime.BaseURL,
			Timeout: time.Duration(cfg.Realtime.TimeoutSec) * time.Second,
			Logger:  logger,
		})),
		healthuc.New(a.store, products, embeddingCheck),
		logger,
	)
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CORSMaxAge:     cfg.CORS.MaxAgeSec,
	})

	ctx, stop := a.signalContext()
	defer stop()

	if ok, err := products.IndexExists(ctx); err != nil {
		logger.Warn("Catalog index check failed", zap.Error(err))
	} else if !ok {
		logger.Warn("Catalog index missing: run `voicecart seed` to create it")
	}

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
