package maintenance

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	domprod "github.com/kailas-cloud/voicecart/internal/domain/product"
)

// productNamespace seeds UUIDv5 ids for catalog entries that ship without one,
// so re-seeding the same file upserts instead of duplicating.
var productNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://voicecart/products"))

type seedProduct struct {
	ID          string    `json:"id"`
	LegacyID    string    `json:"_id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Emoji       string    `json:"emoji"`
	Process     string    `json:"process"`
	Embeddings  []float32 `json:"embeddings"`
}

// ProductID derives the deterministic id for a title.
func ProductID(title string) string {
	return uuid.NewSHA1(productNamespace, []byte(title)).String()
}

// LoadProducts decodes a JSON array of catalog entries. Precomputed
// "embeddings" are kept; entries without an id get ProductID(title).
func LoadProducts(r io.Reader) ([]domprod.Product, error) {
	var raw []seedProduct
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	out := make([]domprod.Product, 0, len(raw))
	for i, sp := range raw {
		id := sp.ID
		if id == "" {
			id = sp.LegacyID
		}
		if id == "" {
			id = ProductID(sp.Title)
		}
		p, err := domprod.New(id, sp.Title, sp.Description, sp.Category, sp.Price, sp.Emoji, sp.Process)
		if err != nil {
			return nil, fmt.Errorf("product %d (%q): %w", i, sp.Title, err)
		}
		if len(sp.Embeddings) > 0 {
			p = p.WithEmbedding(sp.Embeddings)
		}
		out = append(out, p)
	}
	return out, nil
}
