package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/voicecart/internal/domain"
	domorder "github.com/kailas-cloud/voicecart/internal/domain/order"
	"github.com/kailas-cloud/voicecart/internal/logger"
	"github.com/kailas-cloud/voicecart/internal/metrics"
)

// Service places orders.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// New creates an order service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

// Place validates the cart, assigns a fresh id and stores the order in status "created".
func (s *Service) Place(ctx context.Context, items []domorder.Item, address string) (domorder.Order, error) {
	o, err := domorder.New(s.newID(), items, address, s.now())
	if err != nil {
		return domorder.Order{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	if err := s.repo.Save(ctx, &o); err != nil {
		return domorder.Order{}, fmt.Errorf("save order: %w", err)
	}

	metrics.OrdersTotal.Inc()
	logger.FromContext(ctx).Info("Order placed",
		zap.String("order_id", o.ID()),
		zap.Int("items", len(o.Items())),
	)
	return o, nil
}
