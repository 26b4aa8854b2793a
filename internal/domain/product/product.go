package product

import (
	"fmt"
	"regexp"
	"strings"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Field limits.
const (
	MaxIDLength    = 128
	MaxTitleLength = 256
)

// Product is a catalog item (immutable value object).
type Product struct {
	id          string
	title       string
	description string
	category    string
	price       float64
	emoji       string
	process     string
	embedding   []float32
}

// New validates and creates a Product without an embedding.
// ID: ^[a-zA-Z0-9_-]+$, 1-128 chars. Title is required, price must be non-negative.
func New(id, title, description, category string, price float64, emoji, process string) (Product, error) {
	if id == "" {
		return Product{}, fmt.Errorf("product ID is required")
	}
	if len(id) > MaxIDLength {
		return Product{}, fmt.Errorf("product ID too long (max %d)", MaxIDLength)
	}
	if !idRegex.MatchString(id) {
		return Product{}, fmt.Errorf("product ID must be alphanumeric with underscores and hyphens")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Product{}, fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLength {
		return Product{}, fmt.Errorf("title too long (max %d)", MaxTitleLength)
	}
	if price < 0 {
		return Product{}, fmt.Errorf("price must be non-negative")
	}

	return Product{
		id:          id,
		title:       title,
		description: strings.TrimSpace(description),
		category:    strings.TrimSpace(category),
		price:       price,
		emoji:       emoji,
		process:     process,
	}, nil
}

// Reconstruct creates a Product without validation (storage hydration).
func Reconstruct(
	id, title, description, category string, price float64, emoji, process string, embedding []float32,
) Product {
	return Product{
		id:          id,
		title:       title,
		description: description,
		category:    category,
		price:       price,
		emoji:       emoji,
		process:     process,
		embedding:   embedding,
	}
}

// ID returns the product identifier.
func (p *Product) ID() string { return p.id }

// Title returns the display title.
func (p *Product) Title() string { return p.title }

// Description returns the free-text description.
func (p *Product) Description() string { return p.description }

// Category returns the category label.
func (p *Product) Category() string { return p.category }

// Price returns the unit price.
func (p *Product) Price() float64 { return p.price }

// Emoji returns the display glyph.
func (p *Product) Emoji() string { return p.emoji }

// Process returns the optional preparation note.
func (p *Product) Process() string { return p.process }

// Embedding returns the semantic vector, nil when the product was never embedded.
func (p *Product) Embedding() []float32 { return p.embedding }

// HasEmbedding reports whether the product is reachable by vector search.
func (p *Product) HasEmbedding() bool { return len(p.embedding) > 0 }

// EmbeddingText is the text the catalog embeds for a product.
func (p *Product) EmbeddingText() string {
	if p.description == "" {
		return p.title
	}
	return p.title + " " + p.description
}

// WithEmbedding returns a copy with the given vector attached.
func (p Product) WithEmbedding(v []float32) Product {
	p.embedding = v
	return p
}

// WithoutEmbedding returns a copy stripped of its vector.
func (p Product) WithoutEmbedding() Product {
	p.embedding = nil
	return p
}

// Lexical field names a text search can target.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
)

// SearchableFields are the lexical fields a free-text query matches against.
var SearchableFields = []string{FieldTitle, FieldDescription, FieldCategory}
