package search

import (
	"sort"

	"github.com/kailas-cloud/voicecart/internal/domain/product"
	"github.com/kailas-cloud/voicecart/internal/domain/search/weights"
)

// Candidate is one product during fusion with its per-branch contributions.
type Candidate struct {
	Product     product.Product
	VectorScore float64
	TextScore   float64
}

// Combined is the fused relevance score.
func (c *Candidate) Combined() float64 { return c.VectorScore + c.TextScore }

// merge builds one Candidate per product id in first-seen order over vector then text hits.
// A product repeated inside one branch keeps its best contribution.
func merge(vector, text []product.Product, w weights.Weights) []*Candidate {
	byID := make(map[string]*Candidate, len(vector)+len(text))
	out := make([]*Candidate, 0, len(vector)+len(text))

	get := func(p *product.Product) *Candidate {
		if c, ok := byID[p.ID()]; ok {
			return c
		}
		c := &Candidate{Product: *p}
		byID[p.ID()] = c
		out = append(out, c)
		return c
	}

	for rank := range vector {
		c := get(&vector[rank])
		c.VectorScore = max(c.VectorScore, w.VectorScore(rank))
	}
	for rank := range text {
		c := get(&text[rank])
		c.TextScore = max(c.TextScore, w.TextScore(rank))
	}
	return out
}

// rank orders candidates by combined score, highest first. Equal scores keep merge order.
func rank(cands []*Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Combined() > cands[j].Combined()
	})
}

// fuse merges both branch rankings into at most limit products.
func fuse(vector, text []product.Product, w weights.Weights, limit int) []product.Product {
	cands := merge(vector, text, w)
	rank(cands)

	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	out := make([]product.Product, len(cands))
	for i, c := range cands {
		out[i] = c.Product
	}
	return out
}
