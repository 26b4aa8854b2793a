package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/voicecart/internal/domain"
	domorder "github.com/kailas-cloud/voicecart/internal/domain/order"
)

// store is the consumer interface for orders (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	Unlink(ctx context.Context, keys ...string) error
}

// Repo persists placed orders as RedisJSON documents under voicecart:order:<id>.
type Repo struct {
	store store
}

// New creates an order repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save writes the order document at the root path.
func (r *Repo) Save(ctx context.Context, o *domorder.Order) error {
	data, err := json.Marshal(toDoc(o))
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	if err := r.store.JSONSet(ctx, orderKey(o.ID()), "$", data); err != nil {
		return storeErr("json.set "+o.ID(), err)
	}
	return nil
}

// Keys returns every stored order key.
func (r *Repo) Keys(ctx context.Context) ([]string, error) {
	keys, err := r.store.Scan(ctx, orderPrefix+"*")
	if err != nil {
		return nil, storeErr("scan", err)
	}
	return keys, nil
}

// DeleteKeys removes the given keys.
func (r *Repo) DeleteKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.store.Unlink(ctx, keys...); err != nil {
		return storeErr("unlink", err)
	}
	return nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("order %s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
