package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dombatch "github.com/kailas-cloud/voicecart/internal/domain/batch"
	orderrepo "github.com/kailas-cloud/voicecart/internal/repository/order"
	"github.com/kailas-cloud/voicecart/internal/usecase/maintenance"
)

var (
	seedFile          string
	seedRecreateIndex bool
	seedBatchSize     int
	seedEmbedRPS      float64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the product catalog, embed it and create the search index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		if !cmd.Flags().Changed("embed-rps") {
			seedEmbedRPS = a.cfg.Embedding.SeedRPS
		}
		return a.seed(cmd)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "data/products.json", "catalog JSON file")
	seedCmd.Flags().BoolVar(&seedRecreateIndex, "recreate-index", false, "drop the catalog index before creating it")
	seedCmd.Flags().IntVar(&seedBatchSize, "batch-size", maintenance.DefaultEmbedBatchSize,
		"product texts per embedding request")
	seedCmd.Flags().Float64Var(&seedEmbedRPS, "embed-rps", 0,
		"max embedding requests per second (default from embedding.seed_requests_per_sec, 0 = unpaced)")
}

func (a *app) seed(cmd *cobra.Command) error {
	ctx, stop := a.signalContext()
	defer stop()
	start := time.Now()

	f, err := os.Open(filepath.Clean(seedFile))
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	var fileBytes int64
	if info, statErr := f.Stat(); statErr == nil {
		fileBytes = info.Size()
	}
	products, err := maintenance.LoadProducts(f)
	_ = f.Close()
	if err != nil {
		return err
	}
	a.logger.Info("Loaded products", zap.String("file", seedFile), zap.Int("count", len(products)))

	emb := buildEmbedders(&a.cfg, a.store, a.logger)
	svc := maintenance.New(
		newProductRepo(&a.cfg, a.store), orderrepo.New(a.store), emb.query, a.cfg.Embedding.Dimensions,
	).WithEmbedBatchSize(seedBatchSize).WithEmbedRate(seedEmbedRPS)

	report, err := svc.Seed(ctx, products, seedRecreateIndex)
	for _, r := range report.Results {
		if r.Status() != dombatch.StatusOK {
			a.logger.Warn("Product not fully seeded",
				zap.String("id", r.ID()),
				zap.String("status", string(r.Status())),
				zap.Error(r.Err()),
			)
		}
	}
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), seedSummary(&report, fileBytes, time.Since(start)))
	return nil
}
