package order

import (
	"context"

	domorder "github.com/kailas-cloud/voicecart/internal/domain/order"
)

// Repository persists placed orders.
type Repository interface {
	Save(ctx context.Context, o *domorder.Order) error
}
