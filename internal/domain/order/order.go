package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/voicecart/internal/domain/product"
)

// StatusCreated is the status of a freshly placed order.
const StatusCreated = "created"

// Order limits.
const (
	MaxItems         = 100
	MaxQuantity      = 999
	MaxAddressLength = 1024
)

// Item is one cart line: a product snapshot as the client saw it plus a quantity.
type Item struct {
	Product  product.Product
	Quantity int
}

// ProductName is the title denormalized onto the stored line.
func (i *Item) ProductName() string { return i.Product.Title() }

// Order is a placed cart (immutable value object).
type Order struct {
	id        string
	items     []Item
	status    string
	createdAt time.Time
	address   string
}

// New validates and creates an Order in status "created".
func New(id string, items []Item, address string, createdAt time.Time) (Order, error) {
	if id == "" {
		return Order{}, fmt.Errorf("order ID is required")
	}
	if len(items) == 0 {
		return Order{}, fmt.Errorf("at least one item is required")
	}
	if len(items) > MaxItems {
		return Order{}, fmt.Errorf("too many items (max %d)", MaxItems)
	}
	for i := range items {
		if items[i].Product.ID() == "" {
			return Order{}, fmt.Errorf("item %d: product id is required", i)
		}
		if items[i].Quantity <= 0 || items[i].Quantity > MaxQuantity {
			return Order{}, fmt.Errorf("item %d: quantity must be between 1 and %d", i, MaxQuantity)
		}
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return Order{}, fmt.Errorf("address is required")
	}
	if len(address) > MaxAddressLength {
		return Order{}, fmt.Errorf("address too long (max %d)", MaxAddressLength)
	}

	return Order{
		id:        id,
		items:     append([]Item(nil), items...),
		status:    StatusCreated,
		createdAt: createdAt.UTC(),
		address:   address,
	}, nil
}

// ID returns the order identifier.
func (o *Order) ID() string { return o.id }

// Items returns the cart lines.
func (o *Order) Items() []Item { return o.items }

// Status returns the lifecycle status.
func (o *Order) Status() string { return o.status }

// CreatedAt returns the placement time in UTC.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Address returns the delivery address.
func (o *Order) Address() string { return o.address }
