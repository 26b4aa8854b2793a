package weights

import (
	"math"
	"testing"
)

func TestDefault(t *testing.T) {
	w := Default()
	if err := w.Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}
	if w.Vector != 0.1 || w.Text != 0.9 || w.RankConstant != 60 {
		t.Errorf("Default() = %+v", w)
	}
}

func TestScores(t *testing.T) {
	w := Default()
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"vector rank 0", w.VectorScore(0), 0.1 / 60},
		{"vector rank 2", w.VectorScore(2), 0.1 / 62},
		{"text rank 0", w.TextScore(0), 0.9 / 60},
		{"text rank 1", w.TextScore(1), 0.9 / 61},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-15 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestScores_StrictlyDecreasingWithRank(t *testing.T) {
	w := Default()
	for r := range 50 {
		if w.VectorScore(r) <= w.VectorScore(r+1) {
			t.Fatalf("vector score not decreasing at rank %d", r)
		}
		if w.TextScore(r) <= w.TextScore(r+1) {
			t.Fatalf("text score not decreasing at rank %d", r)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		w    Weights
		ok   bool
	}{
		{"text only", Weights{Text: 1, RankConstant: 60}, true},
		{"both zero", Weights{RankConstant: 60}, false},
		{"negative", Weights{Vector: -0.1, Text: 1, RankConstant: 60}, false},
		{"zero constant", Weights{Vector: 0.1, Text: 0.9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
