package mode

// Mode is the product lookup strategy chosen from the request shape.
type Mode string

// Lookup mode constants, in dispatch precedence order.
const (
	// ByID fetches a single product.
	ByID Mode = "by_id"
	// Random samples a handful of products.
	Random Mode = "random"
	// Hybrid ranks products by fused vector and lexical relevance.
	Hybrid Mode = "hybrid"
	All    Mode = "all"
)
