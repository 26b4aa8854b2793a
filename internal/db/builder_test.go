package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_CatalogSchema(t *testing.T) {
	idx := NewIndex("voicecart:products:idx").
		Prefix("voicecart:product:").
		WeightedText("title", 2).
		Text("description").
		Text("category").
		TagAs("category", "category_tag").
		Numeric("price").
		VectorHNSW("embedding", 1536, DistanceCosine, 0, 0).
		MustBuild()

	if len(idx.Fields) != 6 {
		t.Fatalf("fields count = %d, want 6", len(idx.Fields))
	}
	if idx.Fields[0].TextWeight != 2 {
		t.Errorf("title weight = %v, want 2", idx.Fields[0].TextWeight)
	}
	tag := idx.Fields[3]
	if tag.Name != "category" || tag.Alias != "category_tag" || tag.Type != IndexFieldTag {
		t.Errorf("field[3] = %+v, want category AS category_tag TAG", tag)
	}
	vec := idx.Fields[5]
	if vec.VectorAlgo != VectorHNSW || vec.VectorDim != 1536 || vec.VectorDistance != DistanceCosine {
		t.Errorf("vector field = %+v", vec)
	}
}

func TestIndexBuilder_SameFieldTwiceNeedsAlias(t *testing.T) {
	_, err := NewIndex("idx").Text("category").Tag("category").Build()
	if err == nil {
		t.Fatal("expected duplicate field error")
	}
	if !strings.Contains(err.Error(), "duplicate field name: category") {
		t.Errorf("error = %q", err)
	}
}

func TestIndexBuilder_VectorFlat(t *testing.T) {
	idx := NewIndex("vec-idx").
		Prefix("emb:").
		VectorFlat("embedding", 8, DistanceL2).
		MustBuild()

	f := idx.Fields[0]
	if f.VectorAlgo != VectorFlat {
		t.Errorf("algo = %q, want FLAT", f.VectorAlgo)
	}
	if f.VectorDistance != DistanceL2 {
		t.Errorf("distance = %q, want L2", f.VectorDistance)
	}
}

func TestIndexBuilder_BuildReturnsCopy(t *testing.T) {
	b := NewIndex("idx").Tag("a")
	first := b.MustBuild()
	b.Tag("b")
	if len(first.Fields) != 1 {
		t.Errorf("built definition mutated by builder: %d fields", len(first.Fields))
	}
}

func TestIndexBuilder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder func() (*IndexDefinition, error)
		wantErr string
	}{
		{
			name: "empty name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("").Tag("x").Build()
			},
			wantErr: "index name is required",
		},
		{
			name: "no fields",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Build()
			},
			wantErr: "at least one field",
		},
		{
			name: "vector without dim",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").VectorFlat("v", 0, DistanceCosine).Build()
			},
			wantErr: "positive DIM",
		},
		{
			name: "invalid characters",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx with spaces").Tag("x").Build()
			},
			wantErr: "invalid characters",
		},
		{
			name: "negative weight",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").WeightedText("title", -1).Build()
			},
			wantErr: "non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexDefinition_String(t *testing.T) {
	idx := NewIndex("my-idx").
		Prefix("doc:").
		WeightedText("title", 1.5).
		TagAs("category", "cat").
		VectorFlat("vec", 4, DistanceCosine).
		MustBuild()

	want := "FT.CREATE my-idx ON HASH PREFIX 1 doc: SCHEMA title TEXT WEIGHT 1.5 category AS cat TAG vec VECTOR FLAT"
	if got := idx.String(); got != want {
		t.Errorf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestIsValidIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"voicecart:products:idx", true},
		{"a_b-c", true},
		{"", false},
		{"has space", false},
		{"curly{", false},
	}
	for _, tt := range tests {
		if got := IsValidIdentifier(tt.in); got != tt.want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
