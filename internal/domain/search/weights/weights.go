package weights

import "fmt"

// Fusion defaults.
const (
	Vector       = 0.1
	Text         = 0.9
	RankConstant = 60
)

// Weights parameterizes weighted reciprocal-rank fusion:
// a hit at zero-based rank r in a branch contributes weight / (r + RankConstant).
type Weights struct {
	Vector       float64
	Text         float64
	RankConstant int
}

// Default returns the production fusion weights.
func Default() Weights {
	return Weights{Vector: Vector, Text: Text, RankConstant: RankConstant}
}

// Validate rejects weights that would make fusion meaningless.
func (w Weights) Validate() error {
	if w.Vector < 0 || w.Text < 0 {
		return fmt.Errorf("weights must be non-negative")
	}
	if w.Vector == 0 && w.Text == 0 {
		return fmt.Errorf("at least one weight must be positive")
	}
	if w.RankConstant <= 0 {
		return fmt.Errorf("rank constant must be positive")
	}
	return nil
}

// VectorScore is the contribution of a vector hit at zero-based rank.
func (w Weights) VectorScore(rank int) float64 {
	return w.Vector * reciprocal(rank, w.RankConstant)
}

// TextScore is the contribution of a text hit at zero-based rank.
func (w Weights) TextScore(rank int) float64 {
	return w.Text * reciprocal(rank, w.RankConstant)
}

func reciprocal(rank, k int) float64 {
	return 1 / float64(rank+k)
}
