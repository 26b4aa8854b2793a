package db

import "github.com/kailas-cloud/voicecart/internal/domain/search/filter"

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName string
	Field     string // vector field name
	Filters   filter.Expression
	Vector    []float32
	K         int
	// EFRuntime is the HNSW candidate list size explored per query; 0 keeps the index default.
	EFRuntime    int
	ReturnFields []string
}

// TextQuery is the input for full-text search.
type TextQuery struct {
	IndexName string
	Query     string
	// Fields restricts matching to these TEXT fields; empty searches all of them.
	Fields       []string
	Filters      filter.Expression
	TopK         int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit. Entries are ordered best-first.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
