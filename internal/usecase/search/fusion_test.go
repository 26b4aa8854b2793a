package search

import (
	"fmt"
	"math"
	"testing"

	"github.com/kailas-cloud/voicecart/internal/domain/product"
	"github.com/kailas-cloud/voicecart/internal/domain/search/weights"
)

func products(ids ...string) []product.Product {
	out := make([]product.Product, len(ids))
	for i, id := range ids {
		out[i] = product.Reconstruct(id, "title-"+id, "", "", 1, "", "", nil)
	}
	return out
}

func ids(ps []product.Product) []string {
	out := make([]string, len(ps))
	for i := range ps {
		out[i] = ps[i].ID()
	}
	return out
}

func candidateByID(cands []*Candidate, id string) *Candidate {
	for _, c := range cands {
		if c.Product.ID() == id {
			return c
		}
	}
	return nil
}

func TestFuse_MilkScenario(t *testing.T) {
	got := fuse(products("A", "B", "C"), products("B", "D"), weights.Default(), 10)

	if fmt.Sprint(ids(got)) != "[B D A C]" {
		t.Errorf("order = %v, want [B D A C]", ids(got))
	}
}

func TestMerge_ScoreFormula(t *testing.T) {
	cands := merge(products("A", "B", "C"), products("B", "D"), weights.Default())

	want := map[string]float64{
		"A": 0.1 / 60,
		"B": 0.1/61 + 0.9/60,
		"C": 0.1 / 62,
		"D": 0.9 / 61,
	}
	if len(cands) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(cands))
	}
	for id, score := range want {
		c := candidateByID(cands, id)
		if c == nil {
			t.Fatalf("missing candidate %s", id)
		}
		if math.Abs(c.Combined()-score) > 1e-12 {
			t.Errorf("%s: combined = %v, want %v", id, c.Combined(), score)
		}
	}

	b := candidateByID(cands, "B")
	if b.Combined() != b.VectorScore+b.TextScore {
		t.Error("combined must be the exact sum of branch scores")
	}
}

func TestMerge_FirstSeenOrder(t *testing.T) {
	cands := merge(products("A", "B"), products("C", "A", "D"), weights.Default())

	got := make([]string, len(cands))
	for i, c := range cands {
		got[i] = c.Product.ID()
	}
	if fmt.Sprint(got) != "[A B C D]" {
		t.Errorf("merge order = %v", got)
	}
}

func TestMerge_DuplicateInBranchKeepsBest(t *testing.T) {
	cands := merge(products("A", "B", "A"), nil, weights.Default())

	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	a := candidateByID(cands, "A")
	if math.Abs(a.VectorScore-0.1/60) > 1e-12 {
		t.Errorf("A vector score = %v, want %v", a.VectorScore, 0.1/60)
	}
	if a.TextScore != 0 {
		t.Errorf("A text score = %v, want 0", a.TextScore)
	}
}

func TestMerge_EarlierRankScoresHigher(t *testing.T) {
	list := products("a", "b", "c", "d", "e")
	cands := merge(list, list, weights.Default())

	for i := 1; i < len(cands); i++ {
		if cands[i].VectorScore >= cands[i-1].VectorScore {
			t.Errorf("vector rank %d not strictly lower than rank %d", i, i-1)
		}
		if cands[i].TextScore >= cands[i-1].TextScore {
			t.Errorf("text rank %d not strictly lower than rank %d", i, i-1)
		}
	}
}

func TestFuse_TiesKeepFirstSeenOrder(t *testing.T) {
	w := weights.Weights{Vector: 0.5, Text: 0.5, RankConstant: 60}

	got := fuse(products("V"), products("T"), w, 10)
	if fmt.Sprint(ids(got)) != "[V T]" {
		t.Errorf("tie order = %v, want [V T]", ids(got))
	}
}

func TestFuse_Truncates(t *testing.T) {
	vector := make([]string, 20)
	text := make([]string, 20)
	for i := range vector {
		vector[i] = fmt.Sprintf("v%d", i)
		text[i] = fmt.Sprintf("t%d", i)
	}

	got := fuse(products(vector...), products(text...), weights.Default(), 10)
	if len(got) != 10 {
		t.Fatalf("expected 10 results, got %d", len(got))
	}
	// Text weight dominates: the first ten text hits outrank every vector-only hit.
	for i, id := range ids(got) {
		if id != fmt.Sprintf("t%d", i) {
			t.Errorf("position %d = %s, want t%d", i, id, i)
		}
	}
}

func TestFuse_Empty(t *testing.T) {
	got := fuse(nil, nil, weights.Default(), 10)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestFuse_OneBranch(t *testing.T) {
	t.Run("vector only", func(t *testing.T) {
		got := fuse(products("a", "b"), nil, weights.Default(), 10)
		if fmt.Sprint(ids(got)) != "[a b]" {
			t.Errorf("got %v", ids(got))
		}
	})
	t.Run("text only", func(t *testing.T) {
		got := fuse(nil, products("x", "y"), weights.Default(), 10)
		if fmt.Sprint(ids(got)) != "[x y]" {
			t.Errorf("got %v", ids(got))
		}
	})
}

func TestFuse_Deterministic(t *testing.T) {
	vector := products("a", "b", "c", "d")
	text := products("d", "c", "e", "a")

	first := fmt.Sprint(ids(fuse(vector, text, weights.Default(), 10)))
	for range 20 {
		if got := fmt.Sprint(ids(fuse(vector, text, weights.Default(), 10))); got != first {
			t.Fatalf("non-deterministic order: %s vs %s", got, first)
		}
	}
}
