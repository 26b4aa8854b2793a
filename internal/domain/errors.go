package domain

import "errors"

var (
	// ErrProductNotFound signals a product id with no catalog record.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidRequest signals malformed or out-of-range client input.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrStoreUnavailable signals that the catalog store could not serve a query.
	ErrStoreUnavailable = errors.New("catalog store unavailable")
	// ErrEmbeddingUnavailable signals that no query vector could be produced.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrRealtimeUnavailable signals a failed realtime session request upstream.
	ErrRealtimeUnavailable = errors.New("realtime session unavailable")
)
