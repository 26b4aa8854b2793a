package chi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/voicecart/internal/domain"
	domorder "github.com/kailas-cloud/voicecart/internal/domain/order"
	domprod "github.com/kailas-cloud/voicecart/internal/domain/product"
)

// productJSON is the public product shape. Scores and embeddings never leave the server.
type productJSON struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Emoji       string  `json:"emoji"`
	Process     string  `json:"process,omitempty"`
}

func productToJSON(p *domprod.Product) productJSON {
	return productJSON{
		ID:          p.ID(),
		Title:       p.Title(),
		Price:       p.Price(),
		Description: p.Description(),
		Category:    p.Category(),
		Emoji:       p.Emoji(),
		Process:     p.Process(),
	}
}

func productsToJSON(ps []domprod.Product) []productJSON {
	out := make([]productJSON, len(ps))
	for i := range ps {
		out[i] = productToJSON(&ps[i])
	}
	return out
}

// cartProductJSON is the product snapshot a client puts in its cart.
// Older clients send the id as "_id".
type cartProductJSON struct {
	productJSON
	LegacyID string `json:"_id"`
}

func (c *cartProductJSON) id() string {
	if c.ID != "" {
		return c.ID
	}
	return c.LegacyID
}

type orderItemJSON struct {
	Product  json.RawMessage `json:"product"`
	Quantity int             `json:"quantity"`
}

type orderRequest struct {
	Items   []orderItemJSON `json:"items"`
	Address string          `json:"address"`
}

// orderResponse echoes the items exactly as the client sent them.
type orderResponse struct {
	ID        string          `json:"id"`
	Items     []orderItemJSON `json:"items"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	Address   string          `json:"address"`
}

func (r *orderRequest) toItems() ([]domorder.Item, error) {
	items := make([]domorder.Item, len(r.Items))
	for i, it := range r.Items {
		if len(it.Product) == 0 {
			return nil, fmt.Errorf("%w: item %d: product is required", domain.ErrInvalidRequest, i)
		}
		var cp cartProductJSON
		if err := json.Unmarshal(it.Product, &cp); err != nil {
			return nil, fmt.Errorf("%w: item %d: decode product: %w", domain.ErrInvalidRequest, i, err)
		}
		items[i] = domorder.Item{
			Product: domprod.Reconstruct(
				cp.id(), cp.Title, cp.Description, cp.Category, cp.Price, cp.Emoji, cp.Process, nil,
			),
			Quantity: it.Quantity,
		}
	}
	return items, nil
}

func orderToResponse(o *domorder.Order, sent []orderItemJSON) orderResponse {
	return orderResponse{
		ID:        o.ID(),
		Items:     sent,
		Status:    o.Status(),
		CreatedAt: o.CreatedAt(),
		Address:   o.Address(),
	}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
