package order

import (
	"time"

	"github.com/kailas-cloud/voicecart/internal/domain"
	domorder "github.com/kailas-cloud/voicecart/internal/domain/order"
	"github.com/kailas-cloud/voicecart/internal/domain/product"
)

var orderPrefix = domain.KeyPrefix + "order:"

func orderKey(id string) string { return orderPrefix + id }

type productDoc struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Emoji       string  `json:"emoji"`
	Process     string  `json:"process,omitempty"`
}

type itemDoc struct {
	Product     productDoc `json:"product"`
	ProductName string     `json:"productName"`
	Quantity    int        `json:"quantity"`
}

type orderDoc struct {
	Items     []itemDoc `json:"items"`
	Status    string    `json:"status"`
	CreatedAt string    `json:"createdAt"`
	Address   string    `json:"address"`
}

func toDoc(o *domorder.Order) orderDoc {
	items := o.Items()
	docs := make([]itemDoc, len(items))
	for i := range items {
		docs[i] = itemDoc{
			Product:     toProductDoc(&items[i].Product),
			ProductName: items[i].ProductName(),
			Quantity:    items[i].Quantity,
		}
	}
	return orderDoc{
		Items:     docs,
		Status:    o.Status(),
		CreatedAt: o.CreatedAt().Format(time.RFC3339Nano),
		Address:   o.Address(),
	}
}

func toProductDoc(p *product.Product) productDoc {
	return productDoc{
		ID:          p.ID(),
		Title:       p.Title(),
		Price:       p.Price(),
		Description: p.Description(),
		Category:    p.Category(),
		Emoji:       p.Emoji(),
		Process:     p.Process(),
	}
}
