package maintenance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/voicecart/internal/logger"
)

// CleanupOptions control a cleanup run. Nothing is removed unless Force is set
// and DryRun is not.
type CleanupOptions struct {
	DryRun bool
	Force  bool
}

// CleanupReport is what a cleanup run found and did.
type CleanupReport struct {
	ProductKeys int
	OrderKeys   int
	Removed     bool
}

// Cleanup removes the catalog index, every product key and every order key.
func (s *Service) Cleanup(ctx context.Context, opts CleanupOptions) (CleanupReport, error) {
	log := logger.FromContext(ctx)

	productKeys, err := s.catalog.Keys(ctx)
	if err != nil {
		return CleanupReport{}, fmt.Errorf("list product keys: %w", err)
	}
	orderKeys, err := s.orders.Keys(ctx)
	if err != nil {
		return CleanupReport{}, fmt.Errorf("list order keys: %w", err)
	}
	report := CleanupReport{ProductKeys: len(productKeys), OrderKeys: len(orderKeys)}

	if !opts.Force {
		log.Warn("Cleanup would remove the catalog index, products and orders; rerun with --force to proceed",
			zap.Int("product_keys", report.ProductKeys),
			zap.Int("order_keys", report.OrderKeys),
		)
		return report, nil
	}
	if opts.DryRun {
		log.Info("Dry run: would drop catalog index and delete keys",
			zap.Int("product_keys", report.ProductKeys),
			zap.Int("order_keys", report.OrderKeys),
		)
		return report, nil
	}

	if err := s.catalog.DropIndex(ctx); err != nil {
		return report, fmt.Errorf("drop index: %w", err)
	}
	if err := s.catalog.DeleteKeys(ctx, productKeys); err != nil {
		return report, fmt.Errorf("delete product keys: %w", err)
	}
	if err := s.orders.DeleteKeys(ctx, orderKeys); err != nil {
		return report, fmt.Errorf("delete order keys: %w", err)
	}
	report.Removed = true

	log.Info("Cleanup complete",
		zap.Int("product_keys", report.ProductKeys),
		zap.Int("order_keys", report.OrderKeys),
	)
	return report, nil
}
