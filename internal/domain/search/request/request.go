package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/voicecart/internal/domain"
	"github.com/kailas-cloud/voicecart/internal/domain/search/mode"
)

// Search parameter limits and branch sizes.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength    = 4096
	MaxCategoryLength = 256
	MaxProductIDLen   = 128

	// VectorTopK is the number of nearest neighbours the vector branch keeps.
	VectorTopK = 20
	// NumCandidates is the ANN candidate pool explored to find VectorTopK.
	NumCandidates = 100
	// TextTopK is the number of lexical hits the text branch keeps.
	TextTopK = 20
	// MaxResults caps the fused result list.
	MaxResults = 10
	// SampleSize is the number of products a random request returns.
	SampleSize = 9
)

// Request is a validated product lookup. Absent and blank parameters differ:
// nil means not supplied, a supplied blank string is rejected.
type Request struct {
	productID string
	query     string
	category  string
	random    bool
}

// New validates and normalizes lookup parameters. All errors wrap domain.ErrInvalidRequest.
func New(productID, query, category *string, random bool) (Request, error) {
	var r Request
	r.random = random

	if productID != nil {
		id := strings.TrimSpace(*productID)
		if id == "" {
			return Request{}, invalid("productId must not be blank")
		}
		if len(id) > MaxProductIDLen {
			return Request{}, invalid("productId too long (max %d chars)", MaxProductIDLen)
		}
		r.productID = id
	}

	if category != nil {
		r.category = strings.TrimSpace(*category)
		if len(r.category) > MaxCategoryLength {
			return Request{}, invalid("category too long (max %d chars)", MaxCategoryLength)
		}
	}

	if query != nil {
		if len(*query) > MaxQueryLength {
			return Request{}, invalid("query too long (max %d chars)", MaxQueryLength)
		}
		r.query = strings.TrimSpace(*query)
		if r.query == "" && r.category == "" && r.productID == "" && !random {
			return Request{}, invalid("query must not be blank")
		}
	}

	if category != nil && r.category == "" && r.query == "" && r.productID == "" && !random {
		return Request{}, invalid("category must not be blank")
	}

	return r, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Mode resolves the lookup strategy: productId > random > query/category > all.
func (r *Request) Mode() mode.Mode {
	switch {
	case r.productID != "":
		return mode.ByID
	case r.random:
		return mode.Random
	case r.query != "" || r.category != "":
		return mode.Hybrid
	default:
		return mode.All
	}
}

// ProductID returns the requested product id.
func (r *Request) ProductID() string { return r.productID }

// Query returns the trimmed search text.
func (r *Request) Query() string { return r.query }

// Category returns the trimmed category scope.
func (r *Request) Category() string { return r.category }

// Random reports whether a random sample was requested.
func (r *Request) Random() bool { return r.random }
